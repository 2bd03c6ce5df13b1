package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestAssignment(t *testing.T, db *sql.DB) *models.Assignment {
	t.Helper()

	repo := NewAssignmentRepository(db)
	assignment := models.NewAssignment("Test call", "col-staging", "col-new", "col-ok", "col-bad")
	if err := repo.Create(assignment); err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}
	return assignment
}

func createTestSubmission(t *testing.T, db *sql.DB, assignmentID string) *models.Submission {
	t.Helper()

	repo := NewSubmissionRepository(db)
	submission := models.NewSubmission(assignmentID, "jo", "jo@example.com", "Sunset", "desc", "Pier 39", "https://news.test")
	if err := repo.Create(submission); err != nil {
		t.Fatalf("failed to create submission: %v", err)
	}
	return submission
}

func TestAssignmentRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewAssignmentRepository(db)

	t.Run("Create assigns id and sequence", func(t *testing.T) {
		assignment := models.NewAssignment("desc", "s", "u", "a", "r")
		if err := repo.Create(assignment); err != nil {
			t.Fatalf("failed to create assignment: %v", err)
		}
		if assignment.ID() == "" {
			t.Error("assignment ID should be set after creation")
		}
		if assignment.Sequence() == 0 {
			t.Error("assignment sequence should be set after creation")
		}
	})

	t.Run("Get round-trips collections", func(t *testing.T) {
		created := createTestAssignment(t, db)

		got, err := repo.Get(created.ID())
		if err != nil {
			t.Fatalf("failed to get assignment: %v", err)
		}

		if got.StagingCollection() != "col-staging" {
			t.Errorf("expected staging collection col-staging, got %s", got.StagingCollection())
		}
		col, err := got.CollectionFor(models.StatusApproved)
		if err != nil || col != "col-ok" {
			t.Errorf("expected approved collection col-ok, got %s (%v)", col, err)
		}
	})

	t.Run("Get missing returns sentinel", func(t *testing.T) {
		_, err := repo.Get("nope")
		if !errors.Is(err, shared.ErrAssignmentMissing) {
			t.Errorf("expected ErrAssignmentMissing, got %v", err)
		}
	})
}

func TestSubmissionRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewSubmissionRepository(db)
	assignment := createTestAssignment(t, db)

	t.Run("Create and Get", func(t *testing.T) {
		submission := createTestSubmission(t, db, assignment.ID())

		got, err := repo.Get(submission.ID())
		if err != nil {
			t.Fatalf("failed to get submission: %v", err)
		}
		if got.Title() != "Sunset" {
			t.Errorf("expected title Sunset, got %s", got.Title())
		}
		if got.AssignmentID() != assignment.ID() {
			t.Errorf("expected assignment id %s, got %s", assignment.ID(), got.AssignmentID())
		}
		if got.Caption() == "" {
			t.Error("expected caption to be derivable from stored fields")
		}
	})

	t.Run("Get missing returns sentinel", func(t *testing.T) {
		_, err := repo.Get("nope")
		if !errors.Is(err, shared.ErrSubmissionMissing) {
			t.Errorf("expected ErrSubmissionMissing, got %v", err)
		}
	})
}

func TestAssetRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewAssetRepository(db)
	assignment := createTestAssignment(t, db)
	submission := createTestSubmission(t, db, assignment.ID())

	t.Run("Create and Get pending asset", func(t *testing.T) {
		asset := models.NewAsset(submission.ID(), "blob-1")
		if err := repo.Create(asset); err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}

		got, err := repo.Get(asset.ID())
		if err != nil {
			t.Fatalf("failed to get asset: %v", err)
		}
		if got.BlobKey() != "blob-1" {
			t.Errorf("expected blob key blob-1, got %s", got.BlobKey())
		}
		if got.Migrated() {
			t.Error("pending asset should not report migrated")
		}
		if got.Status() != models.StatusUnreviewed {
			t.Errorf("expected status UNREVIEWED, got %s", got.Status())
		}
	})

	t.Run("Update persists migration state", func(t *testing.T) {
		asset := models.NewAsset(submission.ID(), "blob-2")
		if err := repo.Create(asset); err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}

		asset.SetHostURL("http://host.test/e1")
		asset.SetThumbnailURL("http://host.test/t1")
		asset.SetImageURL("http://host.test/f1")
		asset.ClearBlobKey()

		if err := repo.Update(asset); err != nil {
			t.Fatalf("failed to update asset: %v", err)
		}

		got, err := repo.Get(asset.ID())
		if err != nil {
			t.Fatalf("failed to get asset: %v", err)
		}
		if !got.Migrated() {
			t.Error("asset should report migrated after update")
		}
		if got.BlobKey() != "" {
			t.Errorf("expected empty blob key, got %s", got.BlobKey())
		}
		if got.ThumbnailURL() != "http://host.test/t1" {
			t.Errorf("expected thumbnail URL to persist, got %s", got.ThumbnailURL())
		}
	})

	t.Run("Update rejects invariant violation", func(t *testing.T) {
		asset := models.NewAsset(submission.ID(), "blob-3")
		if err := repo.Create(asset); err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}

		asset.SetHostURL("http://host.test/e2")
		// Blob key deliberately not cleared.

		if err := repo.Update(asset); err == nil {
			t.Error("expected update with both handles set to fail validation")
		}
	})

	t.Run("ListBySubmission preserves creation order", func(t *testing.T) {
		other := createTestSubmission(t, db, assignment.ID())

		first := models.NewAsset(other.ID(), "blob-a")
		second := models.NewAsset(other.ID(), "blob-b")
		for _, a := range []*models.Asset{first, second} {
			if err := repo.Create(a); err != nil {
				t.Fatalf("failed to create asset: %v", err)
			}
		}

		assets, err := repo.ListBySubmission(other.ID())
		if err != nil {
			t.Fatalf("failed to list assets: %v", err)
		}
		if len(assets) != 2 {
			t.Fatalf("expected 2 assets, got %d", len(assets))
		}
		if assets[0].BlobKey() != "blob-a" || assets[1].BlobKey() != "blob-b" {
			t.Errorf("unexpected order: %s, %s", assets[0].BlobKey(), assets[1].BlobKey())
		}
	})

	t.Run("Get missing returns sentinel", func(t *testing.T) {
		_, err := repo.Get("nope")
		if !errors.Is(err, shared.ErrAssetMissing) {
			t.Errorf("expected ErrAssetMissing, got %v", err)
		}
	})
}
