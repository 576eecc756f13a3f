package models

import (
	"fmt"
	"time"
)

// Gallery item lifecycle statuses.
const (
	GalleryDraft     = "draft"
	GalleryPublished = "published"
	GalleryArchived  = "archived"
)

// GalleryItem is a media asset shown on the public gallery. The asset itself
// lives in the external media service; PublicID identifies it there for
// deletion.
type GalleryItem struct {
	ID uint `json:"id" gorm:"primaryKey"`

	URL          string `json:"url" gorm:"not null"`
	ThumbnailURL string `json:"thumbnailURL"`
	PublicID     string `json:"publicID" gorm:"size:128"`

	MediaType string `json:"mediaType" gorm:"size:8;default:'image'"`

	CaptionFr string `json:"captionFr"`
	CaptionAr string `json:"captionAr"`

	Status      string     `json:"status" gorm:"size:16;default:'draft';index"`
	PublishedAt *time.Time `json:"publishedAt"`
	ArchivedAt  *time.Time `json:"archivedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Caption returns the bilingual caption.
func (g *GalleryItem) Caption() Bilingual {
	return Bilingual{Ar: g.CaptionAr, Fr: g.CaptionFr}
}

// ApplyStatus transitions the item to the given lifecycle status and keeps
// the publishedAt/archivedAt timestamps mutually exclusive.
func (g *GalleryItem) ApplyStatus(status string, now time.Time) error {
	switch status {
	case GalleryDraft:
		g.PublishedAt = nil
		g.ArchivedAt = nil
	case GalleryPublished:
		// Re-publishing an already-published item keeps its original
		// publication instant.
		if g.Status != GalleryPublished || g.PublishedAt == nil {
			t := now
			g.PublishedAt = &t
		}
		g.ArchivedAt = nil
	case GalleryArchived:
		t := now
		g.ArchivedAt = &t
		g.PublishedAt = nil
	default:
		return fmt.Errorf("unknown gallery status %q", status)
	}
	g.Status = status
	return nil
}
