package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section is the mid-level container, owned by exactly one notebook.
// ColorHex is an optional display tag (#RRGGBB); the store validates the
// format but otherwise treats it as opaque.
type Section struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	NotebookID uuid.UUID      `gorm:"type:uuid;not null;index" json:"notebook_id"`
	Title      string         `gorm:"not null" json:"title"`
	ColorHex   *string        `json:"color_hex,omitempty"`
	Pages      []Page         `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"pages,omitempty"`
	OrderIndex int            `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	ModifiedAt time.Time      `gorm:"not null;autoUpdateTime" json:"modified_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (s *Section) FromJSON(data []byte) error {
	return json.Unmarshal(data, s)
}

func (s *Section) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}
