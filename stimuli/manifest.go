package stimuli

import (
	"fmt"
	"strings"
)

// StimulusRecord is one stimulus entry in the manifest. Field names and
// order are the wire contract consumed by the experiment runner; string
// fields are always present and default to "" when the table lacks them.
type StimulusRecord struct {
	Image        string `json:"image"`
	Source       Group  `json:"source"`
	ImageID      string `json:"image_id"`
	IsPractice   bool   `json:"is_practice"`
	OriginalPath string `json:"original_path"`
	Race         string `json:"race"`
	Gender       string `json:"gender"`
	Age          string `json:"age"`
}

// ExperimentInfo summarizes the manifest for the runner.
//
// PracticeTrials is always twice the configured per-group practice count,
// even when a group has fewer rows than that. It can therefore overcount the
// records actually flagged, and MainTrials can go negative. The runner
// depends on the literal formula, so this package preserves it; Verify and
// the manifest-inspect tool surface the mismatch instead.
type ExperimentInfo struct {
	TotalStimuli   int `json:"total_stimuli"`
	PracticeTrials int `json:"practice_trials"`
	MainTrials     int `json:"main_trials"`
	WesternCount   int `json:"western_count"`
	ChineseCount   int `json:"chinese_count"`
}

// Manifest is the complete stimuli document.
type Manifest struct {
	ExperimentInfo ExperimentInfo   `json:"experiment_info"`
	Stimuli        []StimulusRecord `json:"stimuli"`
}

// BuildOptions controls Build.
type BuildOptions struct {
	// ImageBaseURL is prefixed verbatim to "<group>/<filename>" to form each
	// record's image URL; include the trailing slash (as in "images/").
	ImageBaseURL string

	// PracticePerGroup is the number of leading records per group flagged as
	// practice trials. Zero is valid and flags none.
	PracticePerGroup int
}

// Normalize maps every row of t to a StimulusRecord for group. Records keep
// table order, and the first practicePerGroup of them are flagged as
// practice. A non-empty table must have an image_path column; every other
// column is optional and absent values become "".
func Normalize(t Table, group Group, imageBaseURL string, practicePerGroup int) ([]StimulusRecord, error) {
	if practicePerGroup < 0 {
		return nil, fmt.Errorf("Normalize: %w: practicePerGroup is negative (%d)", ErrConfig, practicePerGroup)
	}
	if len(t.Rows) > 0 && !t.HasColumn("image_path") {
		return nil, fmt.Errorf("Normalize %s: %w: table has no image_path column", group, ErrInput)
	}

	recs := make([]StimulusRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		filename := baseName(row["image_path"])
		recs = append(recs, StimulusRecord{
			Image:        imageBaseURL + string(group) + "/" + filename,
			Source:       group,
			ImageID:      filename,
			IsPractice:   i < practicePerGroup,
			OriginalPath: row["image_path"],
			Race:         row["top_race_4"],
			Gender:       row["top_gender"],
			Age:          row["top_age"],
		})
	}
	return recs, nil
}

// Build assembles the manifest from the two (already sampled) group tables:
// western records first, then chinese, each in table order, with summary
// counts per the wire contract. Build is pure; sampling happens before it.
func Build(western, chinese Table, opts BuildOptions) (Manifest, error) {
	w, err := Normalize(western, GroupWestern, opts.ImageBaseURL, opts.PracticePerGroup)
	if err != nil {
		return Manifest{}, fmt.Errorf("Build: %w", err)
	}
	c, err := Normalize(chinese, GroupChinese, opts.ImageBaseURL, opts.PracticePerGroup)
	if err != nil {
		return Manifest{}, fmt.Errorf("Build: %w", err)
	}

	stimuli := make([]StimulusRecord, 0, len(w)+len(c))
	stimuli = append(stimuli, w...)
	stimuli = append(stimuli, c...)

	practice := 2 * opts.PracticePerGroup
	return Manifest{
		ExperimentInfo: ExperimentInfo{
			TotalStimuli:   len(stimuli),
			PracticeTrials: practice,
			MainTrials:     len(stimuli) - practice,
			WesternCount:   len(w),
			ChineseCount:   len(c),
		},
		Stimuli: stimuli,
	}, nil
}

// baseName returns the substring after the last path separator. Both
// separator styles count, so tables written on any platform produce the same
// manifest.
func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
