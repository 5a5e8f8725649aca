package services

import (
	"strings"
	"unicode"

	"scoai/resume-screener/internal/models"
)

// The AI identifies candidates by name string rather than by id, and those
// names come back noisy: prompt labels, file extensions, whitespace variation.
// The reconciler maps such a free-text name back onto exactly one stored
// resume, or reports a miss.

var nameExtensions = []string{".pdf", ".docx", ".doc", ".txt"}

var nameLabels = []string{"候選人", "candidate"}

// NormalizeCandidateName reduces a candidate name to a comparable key:
// trailing document extension removed, leading label token removed, all
// whitespace dropped, case folded.
func NormalizeCandidateName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	for _, ext := range nameExtensions {
		if strings.HasSuffix(s, ext) {
			s = strings.TrimSuffix(s, ext)
			break
		}
	}

	s = strings.TrimSpace(s)
	for _, label := range nameLabels {
		if strings.HasPrefix(s, label) {
			s = strings.TrimPrefix(s, label)
			break
		}
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Reconcile matches a free-text candidate name against the given resumes:
// exact normalized equality first (stored name, then display name), then
// containment in either direction. The first resume in list order that
// matches wins; there is no similarity ranking. Returns ErrCandidateNotFound
// when nothing matches so the caller can surface the miss instead of
// silently dropping the item.
//
// Two resumes whose names normalize identically are told apart only by list
// order. Normalized names are not unique within a project.
func Reconcile(freeText string, resumes []models.Resume) (*models.Resume, error) {
	target := NormalizeCandidateName(freeText)
	if target == "" {
		return nil, ErrCandidateNotFound
	}

	for i := range resumes {
		if NormalizeCandidateName(resumes[i].ResumeName) == target {
			return &resumes[i], nil
		}
		if NormalizeCandidateName(resumes[i].DisplayName) == target {
			return &resumes[i], nil
		}
	}

	for i := range resumes {
		for _, name := range []string{resumes[i].ResumeName, resumes[i].DisplayName} {
			normalized := NormalizeCandidateName(name)
			if normalized == "" {
				continue
			}
			if strings.Contains(normalized, target) || strings.Contains(target, normalized) {
				return &resumes[i], nil
			}
		}
	}

	return nil, ErrCandidateNotFound
}
