package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notebook is the top-level container (a "binder" in the UI). Notebooks are
// ordered among each other by OrderIndex.
type Notebook struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	Sections   []Section      `gorm:"foreignKey:NotebookID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	OrderIndex int            `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	ModifiedAt time.Time      `gorm:"not null;autoUpdateTime" json:"modified_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (nb *Notebook) FromJSON(data []byte) error {
	return json.Unmarshal(data, nb)
}

func (nb *Notebook) ToJSON() ([]byte, error) {
	return json.Marshal(nb)
}
