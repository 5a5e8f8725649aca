package services

import (
	"testing"
	"time"

	"scoai/resume-screener/internal/models"
)

func namedResume(name string) models.Resume {
	return models.Resume{ResumeName: name + ".pdf", DisplayName: name}
}

func resumeNames(resumes []models.Resume) []string {
	names := make([]string, len(resumes))
	for i, r := range resumes {
		names[i] = r.DisplayName
	}
	return names
}

func TestParseSortKey(t *testing.T) {
	for _, valid := range []string{"name", "score", "selected_at", "note"} {
		key, ok := ParseSortKey(valid)
		if !ok || string(key) != valid {
			t.Fatalf("ParseSortKey(%q) = %q, %v", valid, key, ok)
		}
	}

	for _, invalid := range []string{"", "created_at", "Name", "score "} {
		if _, ok := ParseSortKey(invalid); ok {
			t.Fatalf("ParseSortKey(%q) must be rejected", invalid)
		}
	}
}

func TestSortResumesByScoreTreatsNilAsZero(t *testing.T) {
	a := namedResume("a")
	a.Score = floatPtr(72)
	b := namedResume("b") // never analyzed
	c := namedResume("c")
	c.Score = floatPtr(90)
	d := namedResume("d")
	d.Score = floatPtr(0)

	resumes := []models.Resume{a, b, c, d}
	SortResumes(resumes, SortByScore)

	got := resumeNames(resumes)
	want := []string{"c", "a", "b", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("score order = %v, want %v", got, want)
		}
	}
}

func TestSortResumesByScoreIsStable(t *testing.T) {
	a := namedResume("first")
	a.Score = floatPtr(80)
	b := namedResume("second")
	b.Score = floatPtr(80)

	resumes := []models.Resume{a, b}
	SortResumes(resumes, SortByScore)

	if resumes[0].DisplayName != "first" || resumes[1].DisplayName != "second" {
		t.Fatalf("equal scores must keep incoming order, got %v", resumeNames(resumes))
	}
}

func TestSortResumesByName(t *testing.T) {
	resumes := []models.Resume{
		namedResume("charlie"),
		namedResume("alice"),
		namedResume("bob"),
	}
	SortResumes(resumes, SortByName)

	got := resumeNames(resumes)
	want := []string{"alice", "bob", "charlie"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("name order = %v, want %v", got, want)
		}
	}
}

func TestSortResumesBySelectedAt(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	a := namedResume("a")
	a.SelectedAt = &earlier
	b := namedResume("b")
	b.SelectedAt = &now
	c := namedResume("c") // never shortlisted

	resumes := []models.Resume{a, b, c}
	SortResumes(resumes, SortBySelectedAt)

	got := resumeNames(resumes)
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("selected_at order = %v, want %v", got, want)
		}
	}
}

func TestSortResumesByNotePriorityMarker(t *testing.T) {
	a := namedResume("a")
	a.SelectedNote = strPtr("priority-SCO")
	b := namedResume("b")
	b.SelectedNote = strPtr("zzzz")
	c := namedResume("c")
	c.SelectedNote = strPtr("SCO-short")

	resumes := []models.Resume{a, b, c}
	SortResumes(resumes, SortByNote)

	// Both marked notes come before the unmarked one, regardless of length.
	got := resumeNames(resumes)
	if got[2] != "b" {
		t.Fatalf("unmarked note must sort last, got %v", got)
	}
	// Within the marked tier, the longer note wins.
	if got[0] != "a" || got[1] != "c" {
		t.Fatalf("marked tier order = %v, want [a c b]", got)
	}
}

func TestSortResumesByNoteEmptyNotes(t *testing.T) {
	a := namedResume("a") // no note at all
	b := namedResume("b")
	b.SelectedNote = strPtr("needs follow-up call")

	resumes := []models.Resume{a, b}
	SortResumes(resumes, SortByNote)

	if resumes[0].DisplayName != "b" {
		t.Fatalf("note-less resumes must sort after noted ones, got %v", resumeNames(resumes))
	}
}
