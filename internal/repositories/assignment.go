package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/shared"
)

// AssignmentRepository handles assignment persistence. Assignments are
// read-mostly: the synchronization engine only ever loads them.
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new AssignmentRepository with the given database connection
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts a new assignment with generated ID and sequence
func (r *AssignmentRepository) Create(assignment *models.Assignment) error {
	sequence, err := NextSequence(r.db, "assignments")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	assignment.SetID(shared.GenerateID())
	assignment.SetSequence(sequence)

	if err := assignment.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO assignments (id, sequence, description, staging_collection_id, unreviewed_collection_id, approved_collection_id, rejected_collection_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		assignment.ID(),
		assignment.Sequence(),
		assignment.Description(),
		assignment.StagingCollection(),
		assignment.UnreviewedCollection(),
		assignment.ApprovedCollection(),
		assignment.RejectedCollection(),
		assignment.CreatedAt(),
		assignment.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	return nil
}

// Get retrieves an assignment by ID
func (r *AssignmentRepository) Get(id string) (*models.Assignment, error) {
	query := `
		SELECT id, sequence, description, staging_collection_id, unreviewed_collection_id, approved_collection_id, rejected_collection_id, created_at, updated_at
		FROM assignments
		WHERE id = ?
	`

	var (
		rowID      string
		sequence   int
		desc       string
		staging    string
		unreviewed string
		approved   string
		rejected   string
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := r.db.QueryRow(query, id).Scan(&rowID, &sequence, &desc, &staging, &unreviewed, &approved, &rejected, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: assignment '%s'", shared.ErrAssignmentMissing, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}

	assignment := models.NewAssignment(desc, staging, unreviewed, approved, rejected)
	assignment.SetID(rowID)
	assignment.SetSequence(sequence)
	assignment.SetTimestamps(createdAt, updatedAt)

	return assignment, nil
}

// Update modifies an existing assignment in the database
func (r *AssignmentRepository) Update(assignment *models.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE assignments
		SET description = ?, staging_collection_id = ?, unreviewed_collection_id = ?, approved_collection_id = ?, rejected_collection_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		assignment.Description(),
		assignment.StagingCollection(),
		assignment.UnreviewedCollection(),
		assignment.ApprovedCollection(),
		assignment.RejectedCollection(),
		time.Now().UTC(),
		assignment.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: assignment '%s'", shared.ErrAssignmentMissing, assignment.ID())
	}

	return nil
}

// Delete removes an assignment from the database by its ID
func (r *AssignmentRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM assignments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: assignment '%s'", shared.ErrAssignmentMissing, id)
	}

	return nil
}
