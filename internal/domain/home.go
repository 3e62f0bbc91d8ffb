package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MediaFile is a pointer to an object held by the external store. It has no
// identity of its own; the owning Home's media list is the only record of it.
// The wire field is named googleDriveId for compatibility with the original
// board API.
type MediaFile struct {
	FileName string `json:"fileName"`
	DriveID  string `json:"googleDriveId"`
	MimeType string `json:"mimeType"`
}

// Home is a listing on the board. The media list is stored as a single JSON
// column: entries are owned, ordered values with no separate table.
type Home struct {
	HomeID        uuid.UUID                      `gorm:"column:home_id;type:uuid;primaryKey" json:"_id"`
	Title         string                         `gorm:"column:title;not null" json:"title"`
	Address       string                         `gorm:"column:address;not null" json:"address"`
	Price         float64                        `gorm:"column:price;type:decimal(14,2);not null" json:"price"`
	Deposit       *float64                       `gorm:"column:deposit;type:decimal(14,2)" json:"deposit,omitempty"`
	Size          string                         `gorm:"column:size;not null" json:"size"`
	ListingURL    *string                        `gorm:"column:listing_url" json:"listingUrl,omitempty"`
	GoogleMapsURL *string                        `gorm:"column:google_maps_url" json:"googleMapsUrl,omitempty"`
	Notes         *string                        `gorm:"column:notes" json:"notes,omitempty"`
	MediaFiles    datatypes.JSONSlice[MediaFile] `gorm:"column:media_files" json:"mediaFiles"`
	CreatedAt     time.Time                      `gorm:"column:created_at" json:"createdAt"`
}

func (Home) TableName() string {
	return "homes"
}

// BeforeCreate sets home_id if not already set (DBs without default uuid).
func (h *Home) BeforeCreate(tx *gorm.DB) error {
	if h.HomeID == uuid.Nil {
		h.HomeID = uuid.New()
	}
	return nil
}

// Image returns the proxy URL of the first media entry, or nil when the home
// has no media. Computed, never stored, so it can't go stale.
func (h *Home) Image() *string {
	if len(h.MediaFiles) == 0 {
		return nil
	}
	url := "/api/files/" + h.MediaFiles[0].DriveID
	return &url
}

// MarshalJSON adds the derived image field at serialization time, matching
// the mongoose virtual of the original API.
func (h Home) MarshalJSON() ([]byte, error) {
	type alias Home
	return json.Marshal(struct {
		alias
		Image *string `json:"image"`
	}{
		alias: alias(h),
		Image: h.Image(),
	})
}
