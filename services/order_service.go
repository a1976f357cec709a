package services

import (
	"pagebinder-notes/pagebinder/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderServiceInterface interface {
	NormalizeOrderIndexes(db *database.Database) (OrderChanges, error)
}

// OrderChanges reports how many rows of each kind were resequenced.
type OrderChanges struct {
	Notebooks int `json:"notebooks"`
	Sections  int `json:"sections"`
	Pages     int `json:"pages"`
}

func (c OrderChanges) Total() int {
	return c.Notebooks + c.Sections + c.Pages
}

type OrderService struct{}

type orderRow struct {
	ID         uuid.UUID
	OrderIndex int
}

type orderChange struct {
	ID         uuid.UUID
	OrderIndex int
}

// normalizeSequence maps rows already sorted by (order_index, id) onto the
// compact sequence 1..N and returns only the rows whose index moves.
func normalizeSequence(rows []orderRow) []orderChange {
	var changes []orderChange
	for i, row := range rows {
		if row.OrderIndex != i+1 {
			changes = append(changes, orderChange{ID: row.ID, OrderIndex: i + 1})
		}
	}
	return changes
}

// NormalizeOrderIndexes compresses order_index values into gap-free 1..N
// sequences per sibling group without changing relative order. Soft-deleted
// rows keep their slot so a later restore reinserts them where they were.
// Writes bypass model hooks, leaving modified_at untouched; running it twice
// in a row writes nothing the second time.
func (s *OrderService) NormalizeOrderIndexes(db *database.Database) (OrderChanges, error) {
	var counts OrderChanges

	tx := db.DB.Begin()
	if tx.Error != nil {
		return counts, tx.Error
	}

	notebookChanges, err := s.collectTableChanges(tx, "notebooks", "", nil)
	if err != nil {
		tx.Rollback()
		return counts, err
	}

	var notebookIDs []uuid.UUID
	if err := tx.Raw("SELECT id FROM notebooks ORDER BY id").Scan(&notebookIDs).Error; err != nil {
		tx.Rollback()
		return counts, err
	}

	var sectionChanges []orderChange
	for _, notebookID := range notebookIDs {
		changes, err := s.collectTableChanges(tx, "sections", "notebook_id = ?", []interface{}{notebookID})
		if err != nil {
			tx.Rollback()
			return counts, err
		}
		sectionChanges = append(sectionChanges, changes...)
	}

	var pageGroups []struct {
		SectionID    uuid.UUID
		ParentPageID *uuid.UUID
	}
	if err := tx.Raw("SELECT DISTINCT section_id, parent_page_id FROM pages ORDER BY section_id, parent_page_id").Scan(&pageGroups).Error; err != nil {
		tx.Rollback()
		return counts, err
	}

	var pageChanges []orderChange
	for _, group := range pageGroups {
		var changes []orderChange
		var err error
		if group.ParentPageID == nil {
			changes, err = s.collectTableChanges(tx, "pages", "section_id = ? AND parent_page_id IS NULL", []interface{}{group.SectionID})
		} else {
			changes, err = s.collectTableChanges(tx, "pages", "section_id = ? AND parent_page_id = ?", []interface{}{group.SectionID, *group.ParentPageID})
		}
		if err != nil {
			tx.Rollback()
			return counts, err
		}
		pageChanges = append(pageChanges, changes...)
	}

	for _, change := range notebookChanges {
		if err := tx.Exec("UPDATE notebooks SET order_index = ? WHERE id = ?", change.OrderIndex, change.ID).Error; err != nil {
			tx.Rollback()
			return counts, err
		}
	}
	for _, change := range sectionChanges {
		if err := tx.Exec("UPDATE sections SET order_index = ? WHERE id = ?", change.OrderIndex, change.ID).Error; err != nil {
			tx.Rollback()
			return counts, err
		}
	}
	for _, change := range pageChanges {
		if err := tx.Exec("UPDATE pages SET order_index = ? WHERE id = ?", change.OrderIndex, change.ID).Error; err != nil {
			tx.Rollback()
			return counts, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return counts, err
	}

	counts.Notebooks = len(notebookChanges)
	counts.Sections = len(sectionChanges)
	counts.Pages = len(pageChanges)
	return counts, nil
}

func (s *OrderService) collectTableChanges(tx *gorm.DB, table, where string, args []interface{}) ([]orderChange, error) {
	query := "SELECT id, order_index FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY order_index, id"

	var rows []orderRow
	if err := tx.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return normalizeSequence(rows), nil
}

var OrderServiceInstance OrderServiceInterface = &OrderService{}
