package stimuli

import "fmt"

// Verify checks the structural invariants of a manifest: summary counts that
// agree with the records, western records before chinese records, and
// practice flags forming a prefix of each group sized min(per-group count,
// group length). It returns one message per violation; an empty slice means
// the manifest is internally consistent.
//
// The practice_trials overcount described on ExperimentInfo is not a
// violation and is left to callers (see PracticeFlagged).
func (m Manifest) Verify() []string {
	var problems []string

	counts := map[Group]int{}
	flagged := map[Group]int{}
	inMain := map[Group]bool{}
	seenChinese := false

	for i, s := range m.Stimuli {
		switch s.Source {
		case GroupWestern:
			if seenChinese {
				problems = append(problems, fmt.Sprintf("stimuli[%d]: western record after the chinese block", i))
			}
		case GroupChinese:
			seenChinese = true
		default:
			problems = append(problems, fmt.Sprintf("stimuli[%d]: unknown source %q", i, s.Source))
			continue
		}

		counts[s.Source]++
		if s.IsPractice {
			flagged[s.Source]++
			if inMain[s.Source] {
				problems = append(problems, fmt.Sprintf("stimuli[%d]: practice record after main records in group %s", i, s.Source))
			}
		} else {
			inMain[s.Source] = true
		}
	}

	info := m.ExperimentInfo
	if info.TotalStimuli != len(m.Stimuli) {
		problems = append(problems, fmt.Sprintf("total_stimuli=%d, but the manifest has %d records", info.TotalStimuli, len(m.Stimuli)))
	}
	if info.WesternCount != counts[GroupWestern] {
		problems = append(problems, fmt.Sprintf("western_count=%d, but the manifest has %d western records", info.WesternCount, counts[GroupWestern]))
	}
	if info.ChineseCount != counts[GroupChinese] {
		problems = append(problems, fmt.Sprintf("chinese_count=%d, but the manifest has %d chinese records", info.ChineseCount, counts[GroupChinese]))
	}
	if info.MainTrials != info.TotalStimuli-info.PracticeTrials {
		problems = append(problems, fmt.Sprintf("main_trials=%d, want total_stimuli-practice_trials=%d", info.MainTrials, info.TotalStimuli-info.PracticeTrials))
	}
	if info.PracticeTrials%2 != 0 {
		problems = append(problems, fmt.Sprintf("practice_trials=%d is not an even per-group total", info.PracticeTrials))
	} else {
		perGroup := info.PracticeTrials / 2
		for _, g := range []Group{GroupWestern, GroupChinese} {
			want := min(perGroup, counts[g])
			if flagged[g] != want {
				problems = append(problems, fmt.Sprintf("group %s flags %d practice records, want %d", g, flagged[g], want))
			}
		}
	}
	return problems
}

// PracticeFlagged returns how many records in each group actually carry the
// practice flag. When a group is smaller than the configured practice count
// these fall short of ExperimentInfo.PracticeTrials/2.
func (m Manifest) PracticeFlagged() (western, chinese int) {
	for _, s := range m.Stimuli {
		if !s.IsPractice {
			continue
		}
		switch s.Source {
		case GroupWestern:
			western++
		case GroupChinese:
			chinese++
		}
	}
	return western, chinese
}
