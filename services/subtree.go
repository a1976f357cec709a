package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// collectPageSubtree returns rootID plus every descendant page id, walking
// the parent_page_id index breadth-first. Soft-deleted pages are included so
// cascades cover the whole subtree. The result is collected first and written
// in bulk by the caller, keeping multi-row cascades inside one transaction.
func collectPageSubtree(tx *gorm.DB, rootID uuid.UUID) ([]uuid.UUID, error) {
	all := []uuid.UUID{rootID}
	frontier := []uuid.UUID{rootID}

	for len(frontier) > 0 {
		var children []uuid.UUID
		err := tx.Unscoped().
			Table("pages").
			Where("parent_page_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}

	return all, nil
}

// pageAncestorChain returns the chain of parent page ids from the given page
// up to its section root, nearest parent first. Used both for cycle checks on
// reparenting and for ancestor restores.
func pageAncestorChain(tx *gorm.DB, pageID uuid.UUID) ([]uuid.UUID, error) {
	var chain []uuid.UUID
	seen := map[uuid.UUID]bool{pageID: true}
	current := pageID

	for {
		var row struct {
			ParentPageID *uuid.UUID
		}
		err := tx.Unscoped().
			Table("pages").
			Select("parent_page_id").
			Where("id = ?", current).
			Take(&row).Error
		if err != nil {
			return nil, err
		}
		if row.ParentPageID == nil || seen[*row.ParentPageID] {
			return chain, nil
		}
		chain = append(chain, *row.ParentPageID)
		seen[*row.ParentPageID] = true
		current = *row.ParentPageID
	}
}
