package models

import (
	"testing"
	"time"
)

func TestGalleryStatusTimestampsAreExclusive(t *testing.T) {
	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	item := GalleryItem{Status: GalleryDraft}

	if err := item.ApplyStatus(GalleryPublished, now); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if item.PublishedAt == nil || item.ArchivedAt != nil {
		t.Errorf("published item: publishedAt=%v archivedAt=%v", item.PublishedAt, item.ArchivedAt)
	}

	later := now.Add(24 * time.Hour)
	if err := item.ApplyStatus(GalleryArchived, later); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if item.ArchivedAt == nil || item.PublishedAt != nil {
		t.Errorf("archived item: publishedAt=%v archivedAt=%v", item.PublishedAt, item.ArchivedAt)
	}

	if err := item.ApplyStatus(GalleryDraft, later); err != nil {
		t.Fatalf("back to draft: %v", err)
	}
	if item.PublishedAt != nil || item.ArchivedAt != nil {
		t.Error("draft items must carry no lifecycle timestamps")
	}

	if err := item.ApplyStatus("deleted", later); err == nil {
		t.Error("unknown statuses must be rejected")
	}
	if item.Status != GalleryDraft {
		t.Errorf("rejected transition mutated status to %q", item.Status)
	}
}

func TestGalleryRepublishKeepsOriginalTimestamp(t *testing.T) {
	first := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	item := GalleryItem{Status: GalleryDraft}

	if err := item.ApplyStatus(GalleryPublished, first); err != nil {
		t.Fatalf("publish: %v", err)
	}

	again := first.Add(48 * time.Hour)
	if err := item.ApplyStatus(GalleryPublished, again); err != nil {
		t.Fatalf("re-publish: %v", err)
	}
	if item.PublishedAt == nil || !item.PublishedAt.Equal(first) {
		t.Errorf("re-publish moved publishedAt to %v, want %v", item.PublishedAt, first)
	}

	// A publish after archiving is a fresh publication.
	if err := item.ApplyStatus(GalleryArchived, again); err != nil {
		t.Fatalf("archive: %v", err)
	}
	relaunch := again.Add(24 * time.Hour)
	if err := item.ApplyStatus(GalleryPublished, relaunch); err != nil {
		t.Fatalf("publish after archive: %v", err)
	}
	if item.PublishedAt == nil || !item.PublishedAt.Equal(relaunch) {
		t.Errorf("publish after archive set publishedAt to %v, want %v", item.PublishedAt, relaunch)
	}
}
