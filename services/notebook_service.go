package services

import (
	"errors"

	"pagebinder-notes/pagebinder/broker"
	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotebookServiceInterface interface {
	CreateNotebook(db *database.Database, notebookData map[string]interface{}) (models.Notebook, error)
	GetNotebookById(db *database.Database, id string) (models.Notebook, error)
	GetNotebooks(db *database.Database, includeDeleted bool) ([]models.Notebook, error)
	UpdateNotebook(db *database.Database, id string, updatedData map[string]interface{}) (models.Notebook, error)
	MoveNotebook(db *database.Database, id string, newOrderIndex int) error
	DeleteNotebook(db *database.Database, id string) error
}

type NotebookService struct{}

func (s *NotebookService) CreateNotebook(db *database.Database, notebookData map[string]interface{}) (models.Notebook, error) {
	title, ok := notebookData["title"].(string)
	if !ok || validateTitle(title) != nil {
		return models.Notebook{}, ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Notebook{}, tx.Error
	}

	orderIndex, err := nextOrderIndex(tx, "notebooks", "")
	if err != nil {
		tx.Rollback()
		return models.Notebook{}, err
	}

	notebook := models.Notebook{
		ID:         uuid.New(),
		Title:      title,
		OrderIndex: orderIndex,
	}

	if err := tx.Create(&notebook).Error; err != nil {
		tx.Rollback()
		return models.Notebook{}, err
	}

	event, err := models.NewEvent(
		string(broker.NotebookCreated),
		"notebook",
		map[string]interface{}{
			"notebook_id": notebook.ID.String(),
			"title":       notebook.Title,
			"order_index": notebook.OrderIndex,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Notebook{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Notebook{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Notebook{}, err
	}

	return notebook, nil
}

func (s *NotebookService) GetNotebookById(db *database.Database, id string) (models.Notebook, error) {
	var notebook models.Notebook
	if err := db.DB.Unscoped().First(&notebook, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notebook{}, ErrNotebookNotFound
		}
		return models.Notebook{}, err
	}
	return notebook, nil
}

func (s *NotebookService) GetNotebooks(db *database.Database, includeDeleted bool) ([]models.Notebook, error) {
	query := db.DB
	if includeDeleted {
		query = query.Unscoped()
	}

	var notebooks []models.Notebook
	if err := query.Order("order_index, id").Find(&notebooks).Error; err != nil {
		return nil, err
	}
	return notebooks, nil
}

func (s *NotebookService) UpdateNotebook(db *database.Database, id string, updatedData map[string]interface{}) (models.Notebook, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Notebook{}, tx.Error
	}

	var notebook models.Notebook
	if err := tx.Unscoped().First(&notebook, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notebook{}, ErrNotebookNotFound
		}
		return models.Notebook{}, err
	}

	title, ok := updatedData["title"].(string)
	if !ok || validateTitle(title) != nil {
		tx.Rollback()
		return models.Notebook{}, ErrInvalidInput
	}

	if err := tx.Unscoped().Model(&notebook).Update("title", title).Error; err != nil {
		tx.Rollback()
		return models.Notebook{}, err
	}

	event, err := models.NewEvent(
		string(broker.NotebookUpdated),
		"notebook",
		map[string]interface{}{
			"notebook_id": notebook.ID.String(),
			"title":       notebook.Title,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Notebook{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Notebook{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Notebook{}, err
	}

	return notebook, nil
}

// MoveNotebook changes display order only; notebooks have no parent to move
// between.
func (s *NotebookService) MoveNotebook(db *database.Database, id string, newOrderIndex int) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var notebook models.Notebook
	if err := tx.First(&notebook, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotebookNotFound
		}
		return err
	}

	if err := tx.Model(&notebook).Update("order_index", newOrderIndex).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.NotebookMoved),
		"notebook",
		map[string]interface{}{
			"notebook_id": notebook.ID.String(),
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

// DeleteNotebook soft-deletes the notebook and cascades the same deletion
// timestamp over every active section and page under it. Deleting an
// already-trashed notebook is a no-op success.
func (s *NotebookService) DeleteNotebook(db *database.Database, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var notebook models.Notebook
	if err := tx.Unscoped().First(&notebook, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotebookNotFound
		}
		return err
	}

	if notebook.DeletedAt.Valid {
		tx.Rollback()
		return nil
	}

	now := nowTimestamp()
	if err := tx.Exec("UPDATE notebooks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, notebook.ID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Exec("UPDATE sections SET deleted_at = ? WHERE notebook_id = ? AND deleted_at IS NULL", now, notebook.ID).Error; err != nil {
		tx.Rollback()
		return err
	}
	// Nested pages never leave their section, so cascading by section_id
	// covers every parent_page_id chain as well.
	if err := tx.Exec("UPDATE pages SET deleted_at = ? WHERE section_id IN (SELECT id FROM sections WHERE notebook_id = ?) AND deleted_at IS NULL", now, notebook.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.NotebookDeleted),
		"notebook",
		map[string]interface{}{
			"notebook_id": notebook.ID.String(),
			"deleted_at":  now,
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

var NotebookServiceInstance NotebookServiceInterface = &NotebookService{}
