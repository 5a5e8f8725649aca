package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCandidateNotFound is returned when a free-text name cannot be
	// reconciled against any stored resume.
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrMissingText marks a resume whose extracted text is empty.
	ErrMissingText = errors.New("missing text")

	// ErrNotShortlisted is returned when a note update targets a resume that
	// is not currently on the shortlist.
	ErrNotShortlisted = errors.New("resume is not shortlisted")

	// ErrEmptyShortlist is returned when a recommendation run is requested
	// for a project with no selected candidates.
	ErrEmptyShortlist = errors.New("no shortlisted candidates")
)

// ShortlistConflictError rejects a shortlist add when some of the requested
// resumes are already selected. The whole operation fails; Names carries the
// display names of the conflicting records for the caller to show.
type ShortlistConflictError struct {
	Names []string
}

func (e *ShortlistConflictError) Error() string {
	return fmt.Sprintf("already shortlisted: %s", strings.Join(e.Names, ", "))
}
