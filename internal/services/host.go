// Media host [HostService] implementation over the collection-hosting REST API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/mediadirect/mediadirect/internal/shared"
	"golang.org/x/time/rate"
)

const defaultRateLimit = 5.0

// MediaHostService implements the HostService interface over HTTP.
type MediaHostService struct {
	baseURL      string
	sessionToken string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

// NewMediaHostService creates a media host client for the given endpoint.
//
// The session token authorizes requests against the collection-owning
// account; passing an empty token produces a client that reports
// Authenticated() == false. A non-positive rateLimit falls back to the
// default requests-per-second.
func NewMediaHostService(baseURL, sessionToken string, rateLimit float64) *MediaHostService {
	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}

	return &MediaHostService{
		baseURL:      baseURL,
		sessionToken: sessionToken,
		httpClient:   http.DefaultClient,
		limiter:      rate.NewLimiter(rate.Limit(rateLimit), 1),
	}
}

// Name returns the service name.
func (h *MediaHostService) Name() string {
	return "Media Host"
}

// Authenticated reports whether a session token was configured.
func (h *MediaHostService) Authenticated() bool {
	return h.sessionToken != ""
}

func (h *MediaHostService) doRequest(ctx context.Context, method, rawURL string, body io.Reader, contentType string, result any) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrHostRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if h.sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.sessionToken)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrHostRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		// The host answers 403 when a collection is at its capacity ceiling.
		return fmt.Errorf("%w: collection at capacity (status %d)", shared.ErrCollectionFull, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrHostRequest, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrHostRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

type hostEntry struct {
	ID      string `json:"id"`
	AssetID string `json:"assetId"`
	URL     string `json:"url"`
	Claimed bool   `json:"claimed"`
}

// CollectionPage fetches one page of a collection feed.
//
// Calls GET /collections/{id}/entries, forwarding the cursor when present.
func (h *MediaHostService) CollectionPage(ctx context.Context, collectionID, cursor string) (*CollectionPage, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/entries", h.baseURL, url.PathEscape(collectionID))
	if cursor != "" {
		endpoint = fmt.Sprintf("%s?cursor=%s", endpoint, url.QueryEscape(cursor))
	}

	var page struct {
		Entries    []hostEntry `json:"entries"`
		NextCursor string      `json:"nextCursor"`
	}

	if err := h.doRequest(ctx, http.MethodGet, endpoint, nil, "", &page); err != nil {
		return nil, err
	}

	entries := make([]CollectionEntry, len(page.Entries))
	for i, e := range page.Entries {
		entries[i] = CollectionEntry{
			CollectionID: collectionID,
			AssetID:      e.AssetID,
			EntryURL:     e.URL,
			Claimed:      e.Claimed,
		}
	}

	return &CollectionPage{Entries: entries, NextCursor: page.NextCursor}, nil
}

// InsertEntry adds an asset reference to a collection.
//
// Calls POST /collections/{id}/entries. The position is advisory only.
func (h *MediaHostService) InsertEntry(ctx context.Context, collectionID, assetID string, position int) (*CollectionEntry, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/entries", h.baseURL, url.PathEscape(collectionID))

	reqBody, err := json.Marshal(struct {
		AssetID  string `json:"assetId"`
		Position int    `json:"position"`
	}{AssetID: assetID, Position: position})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal insert request: %w", err)
	}

	var created hostEntry
	if err := h.doRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody), "application/json", &created); err != nil {
		return nil, err
	}

	return &CollectionEntry{
		CollectionID: collectionID,
		AssetID:      created.AssetID,
		EntryURL:     created.URL,
		Claimed:      created.Claimed,
	}, nil
}

// DeleteEntry removes an entry via its canonical URL.
func (h *MediaHostService) DeleteEntry(ctx context.Context, entry *CollectionEntry) error {
	if entry == nil || entry.EntryURL == "" {
		return fmt.Errorf("%w: entry URL required for delete", shared.ErrInvalidArgument)
	}

	return h.doRequest(ctx, http.MethodDelete, entry.EntryURL, nil, "", nil)
}

// Upload streams asset bytes into a collection as a multipart request.
//
// Calls POST /collections/{id}/media with file, title, and description parts.
func (h *MediaHostService) Upload(ctx context.Context, req UploadRequest) (*UploadedMedia, error) {
	if req.Body == nil {
		return nil, fmt.Errorf("%w: upload body required", shared.ErrInvalidArgument)
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(writer, req)
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
		pw.CloseWithError(err)
	}()

	endpoint := fmt.Sprintf("%s/collections/%s/media", h.baseURL, url.PathEscape(req.CollectionID))

	var media UploadedMedia
	if err := h.doRequest(ctx, http.MethodPost, endpoint, pr, writer.FormDataContentType(), &media); err != nil {
		// Unblock the form writer if the request died before the body
		// was consumed, otherwise its goroutine waits on the pipe forever.
		pr.CloseWithError(err)
		return nil, err
	}

	return &media, nil
}

func writeUploadForm(writer *multipart.Writer, req UploadRequest) error {
	if err := writer.WriteField("title", req.Title); err != nil {
		return err
	}
	if err := writer.WriteField("description", req.Description); err != nil {
		return err
	}

	part, err := writer.CreateFormFile("file", req.AssetID)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, req.Body); err != nil {
		return err
	}

	return nil
}
