package services

import (
	"errors"

	"pagebinder-notes/pagebinder/broker"
	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/models"

	"gorm.io/gorm"
)

type TrashServiceInterface interface {
	GetTrashedItems(db *database.Database) (map[string]interface{}, error)
	RestoreItem(db *database.Database, itemType string, itemID string) error
	PermanentlyDeleteItem(db *database.Database, itemType string, itemID string) error
	EmptyTrash(db *database.Database) error
}

type TrashService struct{}

func (s *TrashService) GetTrashedItems(db *database.Database) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	var trashedNotebooks []models.Notebook
	if err := db.DB.Unscoped().Where("deleted_at IS NOT NULL").Order("order_index, id").Find(&trashedNotebooks).Error; err != nil {
		return nil, err
	}

	var trashedSections []models.Section
	if err := db.DB.Unscoped().Where("deleted_at IS NOT NULL").Order("order_index, id").Find(&trashedSections).Error; err != nil {
		return nil, err
	}

	var trashedPages []models.Page
	if err := db.DB.Unscoped().Where("deleted_at IS NOT NULL").Order("order_index, id").Find(&trashedPages).Error; err != nil {
		return nil, err
	}

	result["notebooks"] = trashedNotebooks
	result["sections"] = trashedSections
	result["pages"] = trashedPages

	return result, nil
}

// RestoreItem brings a trashed item back together with its whole subtree.
// Ancestors are reactivated automatically (the chain only, not their other
// children), so restoring a page whose section sits in the trash also
// restores that section and its notebook.
func (s *TrashService) RestoreItem(db *database.Database, itemType, itemID string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var eventType broker.EventType
	var entityType string
	data := map[string]interface{}{}

	switch itemType {
	case "notebook":
		var notebook models.Notebook
		if err := tx.Unscoped().First(&notebook, "id = ?", itemID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotebookNotFound
			}
			return err
		}

		if err := tx.Exec("UPDATE notebooks SET deleted_at = NULL WHERE id = ?", notebook.ID).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("UPDATE sections SET deleted_at = NULL WHERE notebook_id = ?", notebook.ID).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("UPDATE pages SET deleted_at = NULL WHERE section_id IN (SELECT id FROM sections WHERE notebook_id = ?)", notebook.ID).Error; err != nil {
			tx.Rollback()
			return err
		}

		eventType = broker.NotebookRestored
		entityType = "notebook"
		data["notebook_id"] = notebook.ID.String()

	case "section":
		var section models.Section
		if err := tx.Unscoped().First(&section, "id = ?", itemID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		if err := tx.Exec("UPDATE notebooks SET deleted_at = NULL WHERE id = ?", section.NotebookID).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("UPDATE sections SET deleted_at = NULL WHERE id = ?", section.ID).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("UPDATE pages SET deleted_at = NULL WHERE section_id = ?", section.ID).Error; err != nil {
			tx.Rollback()
			return err
		}

		eventType = broker.SectionRestored
		entityType = "section"
		data["section_id"] = section.ID.String()

	case "page":
		var page models.Page
		if err := tx.Unscoped().First(&page, "id = ?", itemID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}

		var section models.Section
		if err := tx.Unscoped().First(&section, "id = ?", page.SectionID).Error; err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Exec("UPDATE notebooks SET deleted_at = NULL WHERE id = ?", section.NotebookID).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("UPDATE sections SET deleted_at = NULL WHERE id = ?", section.ID).Error; err != nil {
			tx.Rollback()
			return err
		}

		// Reactivate the parent page chain, then the page's own subtree.
		ancestors, err := pageAncestorChain(tx, page.ID)
		if err != nil {
			tx.Rollback()
			return err
		}
		if len(ancestors) > 0 {
			if err := tx.Exec("UPDATE pages SET deleted_at = NULL WHERE id IN ?", ancestors).Error; err != nil {
				tx.Rollback()
				return err
			}
		}

		subtree, err := collectPageSubtree(tx, page.ID)
		if err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("UPDATE pages SET deleted_at = NULL WHERE id IN ?", subtree).Error; err != nil {
			tx.Rollback()
			return err
		}

		eventType = broker.PageRestored
		entityType = "page"
		data["page_id"] = page.ID.String()

	default:
		tx.Rollback()
		return ErrInvalidInput
	}

	event, err := models.NewEvent(string(eventType), entityType, data)
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

// PermanentlyDeleteItem removes an item and every descendant from storage.
// Deletes run bottom-up (pages, then sections, then the notebook) so no
// orphan rows can survive a partial failure and rollback.
func (s *TrashService) PermanentlyDeleteItem(db *database.Database, itemType, itemID string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var eventType broker.EventType
	var entityType string
	data := map[string]interface{}{}

	switch itemType {
	case "notebook":
		if err := tx.Exec("DELETE FROM pages WHERE section_id IN (SELECT id FROM sections WHERE notebook_id = ?)", itemID).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("DELETE FROM sections WHERE notebook_id = ?", itemID).Error; err != nil {
			tx.Rollback()
			return err
		}
		result := tx.Exec("DELETE FROM notebooks WHERE id = ?", itemID)
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrNotebookNotFound
		}

		eventType = broker.NotebookPurged
		entityType = "notebook"
		data["notebook_id"] = itemID

	case "section":
		if err := tx.Exec("DELETE FROM pages WHERE section_id = ?", itemID).Error; err != nil {
			tx.Rollback()
			return err
		}
		result := tx.Exec("DELETE FROM sections WHERE id = ?", itemID)
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrSectionNotFound
		}

		eventType = broker.SectionPurged
		entityType = "section"
		data["section_id"] = itemID

	case "page":
		var page models.Page
		if err := tx.Unscoped().First(&page, "id = ?", itemID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}

		subtree, err := collectPageSubtree(tx, page.ID)
		if err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("DELETE FROM pages WHERE id IN ?", subtree).Error; err != nil {
			tx.Rollback()
			return err
		}

		eventType = broker.PagePurged
		entityType = "page"
		data["page_id"] = page.ID.String()

	default:
		tx.Rollback()
		return ErrInvalidInput
	}

	event, err := models.NewEvent(string(eventType), entityType, data)
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

// EmptyTrash permanently removes every soft-deleted row. Processing runs
// top-down (notebooks, sections, pages): once a trashed notebook's subtree
// is gone, the later sweeps simply find nothing left of it.
func (s *TrashService) EmptyTrash(db *database.Database) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Exec("DELETE FROM pages WHERE section_id IN (SELECT id FROM sections WHERE notebook_id IN (SELECT id FROM notebooks WHERE deleted_at IS NOT NULL))").Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Exec("DELETE FROM sections WHERE notebook_id IN (SELECT id FROM notebooks WHERE deleted_at IS NOT NULL)").Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Exec("DELETE FROM notebooks WHERE deleted_at IS NOT NULL").Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Exec("DELETE FROM pages WHERE section_id IN (SELECT id FROM sections WHERE deleted_at IS NOT NULL)").Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Exec("DELETE FROM sections WHERE deleted_at IS NOT NULL").Error; err != nil {
		tx.Rollback()
		return err
	}

	// Any trashed page's descendants are trashed too, so this sweep takes
	// whole subtrees with it.
	if err := tx.Exec("DELETE FROM pages WHERE deleted_at IS NOT NULL").Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(string(broker.TrashEmptied), "trash", map[string]interface{}{})
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

var TrashServiceInstance TrashServiceInterface = &TrashService{}
