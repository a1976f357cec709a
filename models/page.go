package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page is the content-bearing leaf of the tree. Pages belong to exactly one
// section and may nest under another page of the same section through
// ParentPageID. Sibling order is scoped to the (SectionID, ParentPageID)
// group. ContentHTML is produced and rendered by the editor; the store never
// interprets it.
type Page struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"section_id"`
	ParentPageID *uuid.UUID     `gorm:"type:uuid;index" json:"parent_page_id,omitempty"`
	Title        string         `gorm:"not null" json:"title"`
	ContentHTML  string         `gorm:"column:content_html" json:"content_html"`
	Children     []Page         `gorm:"foreignKey:ParentPageID;constraint:OnDelete:CASCADE" json:"children,omitempty"`
	OrderIndex   int            `gorm:"not null;default:0" json:"order_index"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	ModifiedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"modified_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (p *Page) FromJSON(data []byte) error {
	return json.Unmarshal(data, p)
}

func (p *Page) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}
