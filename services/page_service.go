package services

import (
	"errors"

	"pagebinder-notes/pagebinder/broker"
	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PageServiceInterface interface {
	CreatePage(db *database.Database, pageData map[string]interface{}) (models.Page, error)
	GetPageById(db *database.Database, id string) (models.Page, error)
	GetPages(db *database.Database, sectionID string, parentPageID *string, includeDeleted bool) ([]models.Page, error)
	GetPagesBySection(db *database.Database, sectionID string, includeDeleted bool) ([]models.Page, error)
	UpdatePage(db *database.Database, id string, updatedData map[string]interface{}) (models.Page, error)
	UpdatePageContent(db *database.Database, id string, contentHTML string) (models.Page, error)
	MovePage(db *database.Database, id string, sectionID string, parentPageID *string, newOrderIndex int) error
	DeletePage(db *database.Database, id string) error
}

type PageService struct{}

func (s *PageService) CreatePage(db *database.Database, pageData map[string]interface{}) (models.Page, error) {
	title, ok := pageData["title"].(string)
	if !ok || validateTitle(title) != nil {
		return models.Page{}, ErrInvalidInput
	}

	sectionIDStr, ok := pageData["section_id"].(string)
	if !ok {
		return models.Page{}, ErrInvalidInput
	}
	sectionID, err := uuid.Parse(sectionIDStr)
	if err != nil {
		return models.Page{}, ErrInvalidInput
	}

	var parentPageID *uuid.UUID
	if parentStr, ok := pageData["parent_page_id"].(string); ok && parentStr != "" {
		parsed, err := uuid.Parse(parentStr)
		if err != nil {
			return models.Page{}, ErrInvalidInput
		}
		parentPageID = &parsed
	}

	contentHTML, _ := pageData["content_html"].(string)

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Page{}, tx.Error
	}

	var sectionCount int64
	if err := tx.Model(&models.Section{}).Where("id = ?", sectionID).Count(&sectionCount).Error; err != nil {
		tx.Rollback()
		return models.Page{}, err
	}
	if sectionCount == 0 {
		tx.Rollback()
		return models.Page{}, ErrInvalidParent
	}

	// A nested page's parent must be an active page of the same section.
	if parentPageID != nil {
		var parent models.Page
		if err := tx.First(&parent, "id = ?", *parentPageID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Page{}, ErrInvalidParent
			}
			return models.Page{}, err
		}
		if parent.SectionID != sectionID {
			tx.Rollback()
			return models.Page{}, ErrInvalidParent
		}
	}

	var orderIndex int
	if parentPageID == nil {
		orderIndex, err = nextOrderIndex(tx, "pages", "section_id = ? AND parent_page_id IS NULL", sectionID)
	} else {
		orderIndex, err = nextOrderIndex(tx, "pages", "section_id = ? AND parent_page_id = ?", sectionID, *parentPageID)
	}
	if err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	page := models.Page{
		ID:           uuid.New(),
		SectionID:    sectionID,
		ParentPageID: parentPageID,
		Title:        title,
		ContentHTML:  contentHTML,
		OrderIndex:   orderIndex,
	}

	if err := tx.Create(&page).Error; err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	event, err := models.NewEvent(
		string(broker.PageCreated),
		"page",
		map[string]interface{}{
			"page_id":     page.ID.String(),
			"section_id":  page.SectionID.String(),
			"title":       page.Title,
			"order_index": page.OrderIndex,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Page{}, err
	}

	return page, nil
}

func (s *PageService) GetPageById(db *database.Database, id string) (models.Page, error) {
	var page models.Page
	if err := db.DB.Unscoped().First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Page{}, ErrPageNotFound
		}
		return models.Page{}, err
	}
	return page, nil
}

// GetPages lists one sibling group: the pages of a section sharing the same
// parent (nil parent selects the section's top-level pages).
func (s *PageService) GetPages(db *database.Database, sectionID string, parentPageID *string, includeDeleted bool) ([]models.Page, error) {
	query := db.DB
	if includeDeleted {
		query = query.Unscoped()
	}

	query = query.Where("section_id = ?", sectionID)
	if parentPageID == nil {
		query = query.Where("parent_page_id IS NULL")
	} else {
		query = query.Where("parent_page_id = ?", *parentPageID)
	}

	var pages []models.Page
	if err := query.Order("order_index, id").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// GetPagesBySection lists every page of a section across all nesting levels,
// which is what the tree view fetches in one go.
func (s *PageService) GetPagesBySection(db *database.Database, sectionID string, includeDeleted bool) ([]models.Page, error) {
	query := db.DB
	if includeDeleted {
		query = query.Unscoped()
	}

	var pages []models.Page
	if err := query.Where("section_id = ?", sectionID).Order("order_index, id").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (s *PageService) UpdatePage(db *database.Database, id string, updatedData map[string]interface{}) (models.Page, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Page{}, tx.Error
	}

	var page models.Page
	if err := tx.Unscoped().First(&page, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Page{}, ErrPageNotFound
		}
		return models.Page{}, err
	}

	title, ok := updatedData["title"].(string)
	if !ok || validateTitle(title) != nil {
		tx.Rollback()
		return models.Page{}, ErrInvalidInput
	}

	if err := tx.Unscoped().Model(&page).Update("title", title).Error; err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	event, err := models.NewEvent(
		string(broker.PageUpdated),
		"page",
		map[string]interface{}{
			"page_id": page.ID.String(),
			"title":   page.Title,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Page{}, err
	}

	return page, nil
}

// UpdatePageContent replaces the editor markup. Trashed pages are read-only
// for content so a restore always brings back what was deleted.
func (s *PageService) UpdatePageContent(db *database.Database, id string, contentHTML string) (models.Page, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Page{}, tx.Error
	}

	var page models.Page
	if err := tx.Unscoped().First(&page, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Page{}, ErrPageNotFound
		}
		return models.Page{}, err
	}

	if page.DeletedAt.Valid {
		tx.Rollback()
		return models.Page{}, ErrPageReadOnly
	}

	if err := tx.Model(&page).Update("content_html", contentHTML).Error; err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	event, err := models.NewEvent(
		string(broker.PageUpdated),
		"page",
		map[string]interface{}{
			"page_id": page.ID.String(),
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Page{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Page{}, err
	}

	return page, nil
}

// MovePage reparents a page under another page of the same section (or back
// to the section root) and/or changes its sibling position. Pages never
// change sections. A failed move leaves the store untouched.
func (s *PageService) MovePage(db *database.Database, id string, sectionID string, parentPageID *string, newOrderIndex int) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var page models.Page
	if err := tx.First(&page, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}

	if sectionID != "" && sectionID != page.SectionID.String() {
		tx.Rollback()
		return ErrCrossContainerMove
	}

	var newParent *uuid.UUID
	if parentPageID != nil && *parentPageID != "" {
		parsed, err := uuid.Parse(*parentPageID)
		if err != nil {
			tx.Rollback()
			return ErrInvalidInput
		}

		if parsed == page.ID {
			tx.Rollback()
			return ErrCycleDetected
		}

		var parent models.Page
		if err := tx.First(&parent, "id = ?", parsed).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidParent
			}
			return err
		}
		if parent.SectionID != page.SectionID {
			tx.Rollback()
			return ErrCrossContainerMove
		}

		// Hanging the page below one of its own descendants would detach
		// the subtree into a cycle.
		ancestors, err := pageAncestorChain(tx, parsed)
		if err != nil {
			tx.Rollback()
			return err
		}
		for _, ancestorID := range ancestors {
			if ancestorID == page.ID {
				tx.Rollback()
				return ErrCycleDetected
			}
		}

		newParent = &parsed
	}

	updates := map[string]interface{}{
		"parent_page_id": newParent,
		"order_index":    newOrderIndex,
	}
	if err := tx.Model(&page).Updates(updates).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.PageMoved),
		"page",
		map[string]interface{}{
			"page_id":     page.ID.String(),
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

// DeletePage soft-deletes the page and its descendant pages with one shared
// timestamp. Idempotent on already-trashed pages.
func (s *PageService) DeletePage(db *database.Database, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var page models.Page
	if err := tx.Unscoped().First(&page, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}

	if page.DeletedAt.Valid {
		tx.Rollback()
		return nil
	}

	subtree, err := collectPageSubtree(tx, page.ID)
	if err != nil {
		tx.Rollback()
		return err
	}

	now := nowTimestamp()
	if err := tx.Exec("UPDATE pages SET deleted_at = ? WHERE id IN ? AND deleted_at IS NULL", now, subtree).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.PageDeleted),
		"page",
		map[string]interface{}{
			"page_id":    page.ID.String(),
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

var PageServiceInstance PageServiceInterface = &PageService{}
