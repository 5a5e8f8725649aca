package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"scoai/resume-screener/internal/models"
)

type SortKey string

const (
	SortByName       SortKey = "name"
	SortByScore      SortKey = "score"
	SortBySelectedAt SortKey = "selected_at"
	SortByNote       SortKey = "note"
)

// PriorityMarker is the token that promotes a note to the top of the note
// sort. Notes containing it always sort before notes without it; only within
// each of those two groups does note length decide the order.
const PriorityMarker = "SCO"

// ParseSortKey maps a query-string value onto a known sort key. An
// unrecognized value is rejected rather than silently ignored.
func ParseSortKey(s string) (SortKey, bool) {
	switch key := SortKey(s); key {
	case SortByName, SortByScore, SortBySelectedAt, SortByNote:
		return key, true
	default:
		return "", false
	}
}

// SortResumes orders a browsing view of resumes in place. Name comparison is
// locale-aware, score treats unanalyzed resumes as 0, selection timestamps
// sort most recent first. The sort is stable, so equal keys keep their
// incoming relative order.
func SortResumes(resumes []models.Resume, key SortKey) {
	switch key {
	case SortByName:
		c := collate.New(language.TraditionalChinese)
		sort.SliceStable(resumes, func(i, j int) bool {
			return c.CompareString(sortName(&resumes[i]), sortName(&resumes[j])) < 0
		})
	case SortByScore:
		sort.SliceStable(resumes, func(i, j int) bool {
			return scoreOrZero(&resumes[i]) > scoreOrZero(&resumes[j])
		})
	case SortBySelectedAt:
		sort.SliceStable(resumes, func(i, j int) bool {
			var ti, tj int64
			if resumes[i].SelectedAt != nil {
				ti = resumes[i].SelectedAt.UnixNano()
			}
			if resumes[j].SelectedAt != nil {
				tj = resumes[j].SelectedAt.UnixNano()
			}
			return ti > tj
		})
	case SortByNote:
		sort.SliceStable(resumes, func(i, j int) bool {
			return noteLess(&resumes[i], &resumes[j])
		})
	}
}

func sortName(r *models.Resume) string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.ResumeName
}

func scoreOrZero(r *models.Resume) float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

func noteLess(a, b *models.Resume) bool {
	noteA, noteB := noteText(a), noteText(b)
	markedA := strings.Contains(noteA, PriorityMarker)
	markedB := strings.Contains(noteB, PriorityMarker)

	if markedA != markedB {
		return markedA
	}

	return utf8.RuneCountInString(noteA) > utf8.RuneCountInString(noteB)
}

func noteText(r *models.Resume) string {
	if r.SelectedNote == nil {
		return ""
	}
	return *r.SelectedNote
}
