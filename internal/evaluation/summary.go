package evaluation

import "sort"

// Summary aggregates a run.
type Summary struct {
	Total      int            `json:"total"`
	Documented int            `json:"documented"`
	MeanScore  float64        `json:"mean_score"`
	ByKind     map[string]int `json:"by_kind"`
	ByGrade    map[Grade]int  `json:"by_grade"`
}

// Summarize computes grade and kind counts over records.
func Summarize(records []Record) Summary {
	s := Summary{
		ByKind:  make(map[string]int),
		ByGrade: make(map[Grade]int),
	}
	for _, g := range Grades {
		s.ByGrade[g] = 0
	}

	var total float64
	for _, r := range records {
		s.Total++
		s.ByKind[r.Object.Kind().String()]++
		s.ByGrade[r.Grade]++
		if r.Object.HasDoc() {
			s.Documented++
		}
		total += r.Score
	}
	if s.Total > 0 {
		s.MeanScore = total / float64(s.Total)
	}
	return s
}

// Coverage is the share of documented objects, between 0 and 1.
func (s Summary) Coverage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Documented) / float64(s.Total)
}

// Suggest returns the records most worth documenting: anything below grade
// A, highest priority first, then lowest score, then path. A limit of 0 or
// less returns them all.
func Suggest(records []Record, limit int) []Record {
	var out []Record
	for _, r := range records {
		if r.Grade != GradeA {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return a.Path() < b.Path()
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
