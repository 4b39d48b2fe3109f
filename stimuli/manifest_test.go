package stimuli

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize_FieldMapping(t *testing.T) {
	t.Parallel()

	tab := Table{
		Columns: []string{"image_path", "top_race_4", "top_gender", "top_age"},
		Rows: []Row{
			{"image_path": "/data/faces/w_001.jpg", "top_race_4": "White", "top_gender": "Male", "top_age": "20-29"},
			{"image_path": `C:\faces\w_002.jpg`, "top_race_4": "", "top_gender": "", "top_age": ""},
			{"image_path": "bare_003.jpg"},
		},
	}

	got, err := Normalize(tab, GroupWestern, "images/", 1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	want := []StimulusRecord{
		{
			Image:        "images/western/w_001.jpg",
			Source:       GroupWestern,
			ImageID:      "w_001.jpg",
			IsPractice:   true,
			OriginalPath: "/data/faces/w_001.jpg",
			Race:         "White",
			Gender:       "Male",
			Age:          "20-29",
		},
		{
			Image:        "images/western/w_002.jpg",
			Source:       GroupWestern,
			ImageID:      "w_002.jpg",
			IsPractice:   false,
			OriginalPath: `C:\faces\w_002.jpg`,
		},
		{
			Image:        "images/western/bare_003.jpg",
			Source:       GroupWestern,
			ImageID:      "bare_003.jpg",
			IsPractice:   false,
			OriginalPath: "bare_003.jpg",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_MissingMetadataColumns(t *testing.T) {
	t.Parallel()

	tab := Table{
		Columns: []string{"image_path"},
		Rows:    []Row{{"image_path": "/d/x.jpg"}},
	}
	got, err := Normalize(tab, GroupChinese, "images/", 0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got[0].Race != "" || got[0].Gender != "" || got[0].Age != "" {
		t.Fatalf("metadata should be empty strings, got %+v", got[0])
	}
}

func TestNormalize_BaseURLConcatenation(t *testing.T) {
	t.Parallel()

	tab := Table{Columns: []string{"image_path"}, Rows: []Row{{"image_path": "x.jpg"}}}

	got, err := Normalize(tab, GroupChinese, "https://cdn.example.org/faces/", 0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got[0].Image != "https://cdn.example.org/faces/chinese/x.jpg" {
		t.Fatalf("Image=%q", got[0].Image)
	}

	// The base is concatenated verbatim; no slash is inserted for you.
	got, err = Normalize(tab, GroupChinese, "img", 0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got[0].Image != "imgchinese/x.jpg" {
		t.Fatalf("Image=%q", got[0].Image)
	}
}

func TestNormalize_Errors(t *testing.T) {
	t.Parallel()

	noPath := Table{Columns: []string{"other"}, Rows: []Row{{"other": "v"}}}
	if _, err := Normalize(noPath, GroupWestern, "images/", 3); !errors.Is(err, ErrInput) {
		t.Fatalf("missing image_path column: err=%v, want ErrInput", err)
	}

	ok := Table{Columns: []string{"image_path"}, Rows: []Row{{"image_path": "x.jpg"}}}
	if _, err := Normalize(ok, GroupWestern, "images/", -1); !errors.Is(err, ErrConfig) {
		t.Fatalf("negative practice: err=%v, want ErrConfig", err)
	}

	// An empty table needs no image_path column.
	empty := Table{Columns: []string{"other"}}
	recs, err := Normalize(empty, GroupWestern, "images/", 3)
	if err != nil {
		t.Fatalf("empty table: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("records=%d, want 0", len(recs))
	}
}

func TestBuild_OrderAndCounts(t *testing.T) {
	t.Parallel()

	western := Table{Columns: []string{"image_path"}, Rows: []Row{
		{"image_path": "w1.jpg"}, {"image_path": "w2.jpg"}, {"image_path": "w3.jpg"},
	}}
	chinese := Table{Columns: []string{"image_path"}, Rows: []Row{
		{"image_path": "c1.jpg"}, {"image_path": "c2.jpg"},
	}}

	m, err := Build(western, chinese, BuildOptions{ImageBaseURL: "images/", PracticePerGroup: 1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	info := m.ExperimentInfo
	if info.TotalStimuli != 5 {
		t.Fatalf("TotalStimuli=%d, want 5", info.TotalStimuli)
	}
	if info.PracticeTrials != 2 {
		t.Fatalf("PracticeTrials=%d, want 2", info.PracticeTrials)
	}
	if info.MainTrials != 3 {
		t.Fatalf("MainTrials=%d, want 3", info.MainTrials)
	}
	if info.WesternCount != 3 || info.ChineseCount != 2 {
		t.Fatalf("counts=%d/%d, want 3/2", info.WesternCount, info.ChineseCount)
	}

	var ids []string
	var flags []bool
	for _, s := range m.Stimuli {
		ids = append(ids, s.ImageID)
		flags = append(flags, s.IsPractice)
	}
	if diff := cmp.Diff([]string{"w1.jpg", "w2.jpg", "w3.jpg", "c1.jpg", "c2.jpg"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, false, false, true, false}, flags); diff != "" {
		t.Fatalf("practice flags (-want +got):\n%s", diff)
	}
}

func TestBuild_PracticeOvercount(t *testing.T) {
	t.Parallel()

	// One row per group but three practice trials requested: the summary
	// keeps the literal 2*n formula and overcounts what is actually flagged.
	western := Table{Columns: []string{"image_path"}, Rows: []Row{{"image_path": "w1.jpg"}}}
	chinese := Table{Columns: []string{"image_path"}, Rows: []Row{{"image_path": "c1.jpg"}}}

	m, err := Build(western, chinese, BuildOptions{ImageBaseURL: "images/", PracticePerGroup: 3})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	info := m.ExperimentInfo
	if info.PracticeTrials != 6 {
		t.Fatalf("PracticeTrials=%d, want the literal 6", info.PracticeTrials)
	}
	if info.MainTrials != -4 {
		t.Fatalf("MainTrials=%d, want -4", info.MainTrials)
	}
	w, c := m.PracticeFlagged()
	if w != 1 || c != 1 {
		t.Fatalf("flagged=%d/%d, want 1/1", w, c)
	}
	if problems := m.Verify(); len(problems) != 0 {
		t.Fatalf("overcount reported as a violation: %v", problems)
	}
}

func TestBuild_ZeroPractice(t *testing.T) {
	t.Parallel()

	western := Table{Columns: []string{"image_path"}, Rows: []Row{{"image_path": "w1.jpg"}}}
	chinese := Table{Columns: []string{"image_path"}, Rows: []Row{{"image_path": "c1.jpg"}}}

	m, err := Build(western, chinese, BuildOptions{ImageBaseURL: "images/"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.ExperimentInfo.PracticeTrials != 0 {
		t.Fatalf("PracticeTrials=%d, want 0", m.ExperimentInfo.PracticeTrials)
	}
	for i, s := range m.Stimuli {
		if s.IsPractice {
			t.Fatalf("stimuli[%d] flagged as practice with zero practice trials", i)
		}
	}
}
