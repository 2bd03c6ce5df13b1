package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/shared"
)

// SubmissionRepository handles submission persistence.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new SubmissionRepository with the given database connection
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a new submission with generated ID and sequence
func (r *SubmissionRepository) Create(submission *models.Submission) error {
	sequence, err := NextSequence(r.db, "submissions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	submission.SetID(shared.GenerateID())
	submission.SetSequence(sequence)

	if err := submission.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO submissions (id, sequence, assignment_id, author, notify_email, title, description, location, article_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		submission.ID(),
		submission.Sequence(),
		submission.AssignmentID(),
		submission.Author(),
		submission.NotifyEmail(),
		submission.Title(),
		submission.Description(),
		submission.Location(),
		submission.ArticleURL(),
		submission.CreatedAt(),
		submission.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

// Get retrieves a submission by ID
func (r *SubmissionRepository) Get(id string) (*models.Submission, error) {
	query := `
		SELECT id, sequence, assignment_id, author, notify_email, title, description, location, article_url, created_at, updated_at
		FROM submissions
		WHERE id = ?
	`

	var (
		rowID        string
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
	)

	err := r.db.QueryRow(query, id).Scan(&rowID, &sequence, &assignmentID, &author, &notifyEmail, &title, &description, &location, &articleURL, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: submission '%s'", shared.ErrSubmissionMissing, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}

	submission := models.NewSubmission(assignmentID, author, notifyEmail, title, description, location, articleURL)
	submission.SetID(rowID)
	submission.SetSequence(sequence)
	submission.SetTimestamps(createdAt, updatedAt)

	return submission, nil
}

// Update modifies an existing submission in the database
func (r *SubmissionRepository) Update(submission *models.Submission) error {
	if err := submission.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE submissions
		SET author = ?, notify_email = ?, title = ?, description = ?, location = ?, article_url = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		submission.Author(),
		submission.NotifyEmail(),
		submission.Title(),
		submission.Description(),
		submission.Location(),
		submission.ArticleURL(),
		time.Now().UTC(),
		submission.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: submission '%s'", shared.ErrSubmissionMissing, submission.ID())
	}

	return nil
}

// Delete removes a submission from the database by its ID
func (r *SubmissionRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM submissions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: submission '%s'", shared.ErrSubmissionMissing, id)
	}

	return nil
}
