package models

import (
	"fmt"
	"time"
)

// Submission is one user response to an assignment. It groups the batch of
// assets uploaded together and carries the descriptive fields used to caption
// media on the remote host.
//
// A submission is immutable after creation; only its assets change state.
type Submission struct {
	id           string
	sequence     int
	assignmentID string
	author       string
	notifyEmail  string
	title        string
	description  string
	location     string
	articleURL   string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewSubmission creates a Submission for the given assignment.
func NewSubmission(assignmentID, author, notifyEmail, title, description, location, articleURL string) *Submission {
	now := time.Now().UTC()
	return &Submission{
		assignmentID: assignmentID,
		author:       author,
		notifyEmail:  notifyEmail,
		title:        title,
		description:  description,
		location:     location,
		articleURL:   articleURL,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (s *Submission) ID() string           { return s.id }
func (s *Submission) Sequence() int        { return s.sequence }
func (s *Submission) AssignmentID() string { return s.assignmentID }
func (s *Submission) Author() string       { return s.author }
func (s *Submission) NotifyEmail() string  { return s.notifyEmail }
func (s *Submission) Title() string        { return s.title }
func (s *Submission) Description() string  { return s.description }
func (s *Submission) Location() string     { return s.location }
func (s *Submission) ArticleURL() string   { return s.articleURL }
func (s *Submission) CreatedAt() time.Time { return s.createdAt }
func (s *Submission) UpdatedAt() time.Time { return s.updatedAt }
func (s *Submission) SetID(id string)      { s.id = id }
func (s *Submission) SetSequence(seq int)  { s.sequence = seq }
func (s *Submission) SetTimestamps(c, u time.Time) {
	s.createdAt = c
	s.updatedAt = u
}

// Caption builds the descriptive text attached to every uploaded asset:
// the submission description followed by an attribution line.
func (s *Submission) Caption() string {
	return fmt.Sprintf("%s\n\nSubmitted by %s in response to %s", s.description, s.author, s.articleURL)
}

// Validate checks that the submission references an assignment.
func (s *Submission) Validate() error {
	if s.assignmentID == "" {
		return fmt.Errorf("submission requires an assignment id")
	}
	return nil
}
