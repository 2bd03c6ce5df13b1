package models

import (
	"errors"
	"testing"

	"github.com/mediadirect/mediadirect/internal/shared"
)

func TestParseModerationStatus(t *testing.T) {
	tc := []struct {
		name    string
		input   string
		want    ModerationStatus
		wantErr bool
	}{
		{name: "approved upper", input: "APPROVED", want: StatusApproved},
		{name: "rejected lower", input: "rejected", want: StatusRejected},
		{name: "unreviewed mixed", input: "Unreviewed", want: StatusUnreviewed},
		{name: "padded", input: "  approved ", want: StatusApproved},
		{name: "unknown", input: "DELETED", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModerationStatus(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for input %q", tt.input)
				}
				if !errors.Is(err, shared.ErrInvalidStatus) {
					t.Errorf("expected ErrInvalidStatus, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseModerationStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAssetInvariant(t *testing.T) {
	t.Run("pending asset is valid", func(t *testing.T) {
		asset := NewAsset("sub-1", "blob-1")
		if err := asset.Validate(); err != nil {
			t.Errorf("pending asset should validate: %v", err)
		}
		if asset.Migrated() {
			t.Error("pending asset should not report migrated")
		}
	})

	t.Run("migrated asset is valid", func(t *testing.T) {
		asset := NewAsset("sub-1", "blob-1")
		asset.SetHostURL("https://host.test/entry/1")
		asset.ClearBlobKey()

		if err := asset.Validate(); err != nil {
			t.Errorf("migrated asset should validate: %v", err)
		}
		if !asset.Migrated() {
			t.Error("asset with host URL and no blob key should report migrated")
		}
	})

	t.Run("both handles set is invalid", func(t *testing.T) {
		asset := NewAsset("sub-1", "blob-1")
		asset.SetHostURL("https://host.test/entry/1")

		if err := asset.Validate(); err == nil {
			t.Error("asset with blob key and host URL should fail validation")
		}
	})

	t.Run("unknown status is invalid", func(t *testing.T) {
		asset := NewAsset("sub-1", "blob-1")
		asset.SetStatus(ModerationStatus("BANANA"))

		if err := asset.Validate(); err == nil {
			t.Error("asset with unknown status should fail validation")
		}
	})
}

func TestAssignmentCollections(t *testing.T) {
	assignment := NewAssignment("desc", "col-staging", "col-new", "col-ok", "col-bad")
	assignment.SetID("a-1")

	if err := assignment.Validate(); err != nil {
		t.Fatalf("assignment should validate: %v", err)
	}

	cases := map[ModerationStatus]string{
		StatusUnreviewed: "col-new",
		StatusApproved:   "col-ok",
		StatusRejected:   "col-bad",
	}
	for status, want := range cases {
		got, err := assignment.CollectionFor(status)
		if err != nil {
			t.Fatalf("CollectionFor(%s): %v", status, err)
		}
		if got != want {
			t.Errorf("CollectionFor(%s) = %s, want %s", status, got, want)
		}
	}

	if _, err := assignment.CollectionFor(ModerationStatus("BANANA")); err == nil {
		t.Error("expected error for unknown status")
	}

	incomplete := NewAssignment("desc", "col-staging", "col-new", "", "col-bad")
	if err := incomplete.Validate(); err == nil {
		t.Error("assignment missing a status collection should fail validation")
	}
}

func TestSubmissionCaption(t *testing.T) {
	submission := NewSubmission("a-1", "jo", "jo@example.com", "Sunset", "Golden hour shots", "Pier 39", "https://news.test/call")

	want := "Golden hour shots\n\nSubmitted by jo in response to https://news.test/call"
	if got := submission.Caption(); got != want {
		t.Errorf("Caption() = %q, want %q", got, want)
	}
}
