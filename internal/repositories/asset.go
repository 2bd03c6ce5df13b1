package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/shared"
)

// AssetRepository handles asset persistence.
//
// Updates rewrite the full mutable column set in one statement, so the
// migration engine's "record host URLs, clear blob key, save" step is a
// single atomic row write.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the given database connection
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create inserts a new asset with generated ID and sequence
func (r *AssetRepository) Create(asset *models.Asset) error {
	sequence, err := NextSequence(r.db, "assets")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	asset.SetID(shared.GenerateID())
	asset.SetSequence(sequence)

	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO assets (id, sequence, submission_id, blob_key, host_url, thumbnail_url, image_url, status, claimed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		asset.ID(),
		asset.Sequence(),
		asset.SubmissionID(),
		asset.BlobKey(),
		asset.HostURL(),
		asset.ThumbnailURL(),
		asset.ImageURL(),
		asset.Status().String(),
		asset.Claimed(),
		asset.CreatedAt(),
		asset.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// Get retrieves an asset by ID
func (r *AssetRepository) Get(id string) (*models.Asset, error) {
	query := `
		SELECT id, sequence, submission_id, blob_key, host_url, thumbnail_url, image_url, status, claimed, created_at, updated_at
		FROM assets
		WHERE id = ?
	`

	asset, err := scanAsset(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: asset '%s'", shared.ErrAssetMissing, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}

	return asset, nil
}

// ListBySubmission retrieves all assets of one submission in creation order.
func (r *AssetRepository) ListBySubmission(submissionID string) ([]*models.Asset, error) {
	query := `
		SELECT id, sequence, submission_id, blob_key, host_url, thumbnail_url, image_url, status, claimed, created_at, updated_at
		FROM assets
		WHERE submission_id = ?
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return assets, nil
}

// Update modifies an existing asset in the database
func (r *AssetRepository) Update(asset *models.Asset) error {
	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE assets
		SET blob_key = ?, host_url = ?, thumbnail_url = ?, image_url = ?, status = ?, claimed = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		asset.BlobKey(),
		asset.HostURL(),
		asset.ThumbnailURL(),
		asset.ImageURL(),
		asset.Status().String(),
		asset.Claimed(),
		time.Now().UTC(),
		asset.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: asset '%s'", shared.ErrAssetMissing, asset.ID())
	}

	return nil
}

// Delete removes an asset from the database by its ID
func (r *AssetRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM assets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: asset '%s'", shared.ErrAssetMissing, id)
	}

	return nil
}

// scanAsset hydrates an Asset from a row-like scanner.
func scanAsset(row interface{ Scan(dest ...any) error }) (*models.Asset, error) {
	var (
		id           string
		sequence     int
		submissionID string
		blobKey      string
		hostURL      string
		thumbnailURL string
		imageURL     string
		status       string
		claimed      bool
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(&id, &sequence, &submissionID, &blobKey, &hostURL, &thumbnailURL, &imageURL, &status, &claimed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	asset := models.NewAsset(submissionID, blobKey)
	asset.SetHostURL(hostURL)
	asset.SetThumbnailURL(thumbnailURL)
	asset.SetImageURL(imageURL)
	asset.SetStatus(models.ModerationStatus(status))
	asset.SetClaimed(claimed)
	asset.SetID(id)
	asset.SetSequence(sequence)
	asset.SetTimestamps(createdAt, updatedAt)

	return asset, nil
}
