package services

import (
	"errors"

	"pagebinder-notes/pagebinder/broker"
	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionServiceInterface interface {
	CreateSection(db *database.Database, sectionData map[string]interface{}) (models.Section, error)
	GetSectionById(db *database.Database, id string) (models.Section, error)
	GetSections(db *database.Database, notebookID string, includeDeleted bool) ([]models.Section, error)
	UpdateSection(db *database.Database, id string, updatedData map[string]interface{}) (models.Section, error)
	MoveSection(db *database.Database, id string, notebookID string, newOrderIndex int) error
	DeleteSection(db *database.Database, id string) error
}

type SectionService struct{}

func (s *SectionService) CreateSection(db *database.Database, sectionData map[string]interface{}) (models.Section, error) {
	title, ok := sectionData["title"].(string)
	if !ok || validateTitle(title) != nil {
		return models.Section{}, ErrInvalidInput
	}

	notebookIDStr, ok := sectionData["notebook_id"].(string)
	if !ok {
		return models.Section{}, ErrInvalidInput
	}
	notebookID, err := uuid.Parse(notebookIDStr)
	if err != nil {
		return models.Section{}, ErrInvalidInput
	}

	var colorHex *string
	if color, ok := sectionData["color_hex"].(string); ok && color != "" {
		if validateColorHex(color) != nil {
			return models.Section{}, ErrInvalidInput
		}
		colorHex = &color
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Section{}, tx.Error
	}

	// The owning notebook must exist and be active; creating under a
	// trashed notebook would orphan an active child.
	var notebookCount int64
	if err := tx.Model(&models.Notebook{}).Where("id = ?", notebookID).Count(&notebookCount).Error; err != nil {
		tx.Rollback()
		return models.Section{}, err
	}
	if notebookCount == 0 {
		tx.Rollback()
		return models.Section{}, ErrInvalidParent
	}

	orderIndex, err := nextOrderIndex(tx, "sections", "notebook_id = ?", notebookID)
	if err != nil {
		tx.Rollback()
		return models.Section{}, err
	}

	section := models.Section{
		ID:         uuid.New(),
		NotebookID: notebookID,
		Title:      title,
		ColorHex:   colorHex,
		OrderIndex: orderIndex,
	}

	if err := tx.Create(&section).Error; err != nil {
		tx.Rollback()
		return models.Section{}, err
	}

	event, err := models.NewEvent(
		string(broker.SectionCreated),
		"section",
		map[string]interface{}{
			"section_id":  section.ID.String(),
			"notebook_id": section.NotebookID.String(),
			"title":       section.Title,
			"order_index": section.OrderIndex,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Section{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Section{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Section{}, err
	}

	return section, nil
}

func (s *SectionService) GetSectionById(db *database.Database, id string) (models.Section, error) {
	var section models.Section
	if err := db.DB.Unscoped().First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Section{}, ErrSectionNotFound
		}
		return models.Section{}, err
	}
	return section, nil
}

func (s *SectionService) GetSections(db *database.Database, notebookID string, includeDeleted bool) ([]models.Section, error) {
	query := db.DB
	if includeDeleted {
		query = query.Unscoped()
	}

	var sections []models.Section
	if err := query.Where("notebook_id = ?", notebookID).Order("order_index, id").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// UpdateSection renames a section and/or sets or clears its color tag. An
// explicit empty color_hex clears the color, matching the desktop UI.
func (s *SectionService) UpdateSection(db *database.Database, id string, updatedData map[string]interface{}) (models.Section, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Section{}, tx.Error
	}

	var section models.Section
	if err := tx.Unscoped().First(&section, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Section{}, ErrSectionNotFound
		}
		return models.Section{}, err
	}

	updates := map[string]interface{}{}

	if title, ok := updatedData["title"]; ok {
		titleStr, isStr := title.(string)
		if !isStr || validateTitle(titleStr) != nil {
			tx.Rollback()
			return models.Section{}, ErrInvalidInput
		}
		updates["title"] = titleStr
	}

	if color, ok := updatedData["color_hex"]; ok {
		colorStr, isStr := color.(string)
		if !isStr {
			tx.Rollback()
			return models.Section{}, ErrInvalidInput
		}
		if colorStr == "" {
			updates["color_hex"] = nil
		} else {
			if validateColorHex(colorStr) != nil {
				tx.Rollback()
				return models.Section{}, ErrInvalidInput
			}
			updates["color_hex"] = colorStr
		}
	}

	if len(updates) == 0 {
		tx.Rollback()
		return models.Section{}, ErrInvalidInput
	}

	if err := tx.Unscoped().Model(&section).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Section{}, err
	}

	event, err := models.NewEvent(
		string(broker.SectionUpdated),
		"section",
		map[string]interface{}{
			"section_id": section.ID.String(),
			"title":      section.Title,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Section{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Section{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Section{}, err
	}

	return section, nil
}

// MoveSection reorders a section within its own notebook. Sections never
// change notebooks; a different notebookID is a cross-container move.
func (s *SectionService) MoveSection(db *database.Database, id string, notebookID string, newOrderIndex int) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var section models.Section
	if err := tx.First(&section, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	if notebookID != "" && notebookID != section.NotebookID.String() {
		tx.Rollback()
		return ErrCrossContainerMove
	}

	if err := tx.Model(&section).Update("order_index", newOrderIndex).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.SectionMoved),
		"section",
		map[string]interface{}{
			"section_id":  section.ID.String(),
			"order_index": newOrderIndex,
		},
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// DeleteSection soft-deletes the section and every page in it, including
// nested page chains. Idempotent on already-trashed sections.
func (s *SectionService) DeleteSection(db *database.Database, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var section models.Section
	if err := tx.Unscoped().First(&section, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	if section.DeletedAt.Valid {
		tx.Rollback()
		return nil
	}

	now := nowTimestamp()
	if err := tx.Exec("UPDATE sections SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, section.ID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Exec("UPDATE pages SET deleted_at = ? WHERE section_id = ? AND deleted_at IS NULL", now, section.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.SectionDeleted),
		"section",
		map[string]interface{}{
			"section_id": section.ID.String(),
			"deleted_at": now,
		},
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

var SectionServiceInstance SectionServiceInterface = &SectionService{}
