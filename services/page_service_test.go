package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pagebinder-notes/pagebinder/models"
	"pagebinder-notes/pagebinder/testutils"
)

func TestCreatePage_OrderScopedToSiblingGroup(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	section := createSection(t, db, notebook.ID, "Projects")

	rootA := createPage(t, db, section.ID, "Root A")
	rootB := createPage(t, db, section.ID, "Root B")
	childA := createChildPage(t, db, section.ID, rootA.ID, "Child A1")
	childB := createChildPage(t, db, section.ID, rootA.ID, "Child A2")

	assert.Equal(t, 1, rootA.OrderIndex)
	assert.Equal(t, 2, rootB.OrderIndex)
	assert.Equal(t, 1, childA.OrderIndex)
	assert.Equal(t, 2, childB.OrderIndex)
}

func TestCreatePage_ParentMustBeActiveAndInSameSection(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	sectionA := createSection(t, db, notebook.ID, "A")
	sectionB := createSection(t, db, notebook.ID, "B")
	parent := createPage(t, db, sectionA.ID, "Parent")

	_, err := PageServiceInstance.CreatePage(db, map[string]interface{}{
		"section_id":     sectionB.ID.String(),
		"parent_page_id": parent.ID.String(),
		"title":          "Elsewhere",
	})
	assert.ErrorIs(t, err, ErrInvalidParent)

	assert.NoError(t, PageServiceInstance.DeletePage(db, parent.ID.String()))

	_, err = PageServiceInstance.CreatePage(db, map[string]interface{}{
		"section_id":     sectionA.ID.String(),
		"parent_page_id": parent.ID.String(),
		"title":          "Under Trash",
	})
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestGetPages_RootGroupVersusWholeSection(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	section := createSection(t, db, notebook.ID, "Projects")
	root := createPage(t, db, section.ID, "Root")
	createChildPage(t, db, section.ID, root.ID, "Child")

	rootID := root.ID.String()

	roots, err := PageServiceInstance.GetPages(db, section.ID.String(), nil, false)
	assert.NoError(t, err)
	assert.Len(t, roots, 1)
	assert.Equal(t, root.ID, roots[0].ID)

	children, err := PageServiceInstance.GetPages(db, section.ID.String(), &rootID, false)
	assert.NoError(t, err)
	assert.Len(t, children, 1)

	all, err := PageServiceInstance.GetPagesBySection(db, section.ID.String(), false)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdatePageContent_TrashedPageIsReadOnly(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	section := createSection(t, db, notebook.ID, "Projects")
	page := createPage(t, db, section.ID, "Draft")

	updated, err := PageServiceInstance.UpdatePageContent(db, page.ID.String(), "<p>hello</p>")
	assert.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", updated.ContentHTML)

	assert.NoError(t, PageServiceInstance.DeletePage(db, page.ID.String()))

	_, err = PageServiceInstance.UpdatePageContent(db, page.ID.String(), "<p>changed</p>")
	assert.ErrorIs(t, err, ErrPageReadOnly)

	// Rename stays allowed while trashed.
	renamed, err := PageServiceInstance.UpdatePage(db, page.ID.String(), map[string]interface{}{"title": "Draft v2"})
	assert.NoError(t, err)
	assert.Equal(t, "Draft v2", renamed.Title)
}

func TestMovePage_ReparentWithinSection(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	section := createSection(t, db, notebook.ID, "Projects")
	parent := createPage(t, db, section.ID, "Parent")
	page := createPage(t, db, section.ID, "Loose")

	parentID := parent.ID.String()
	assert.NoError(t, PageServiceInstance.MovePage(db, page.ID.String(), section.ID.String(), &parentID, 1))

	got, err := PageServiceInstance.GetPageById(db, page.ID.String())
	assert.NoError(t, err)
	if assert.NotNil(t, got.ParentPageID) {
		assert.Equal(t, parent.ID, *got.ParentPageID)
	}
	assert.Equal(t, 1, got.OrderIndex)

	// Back to the root group.
	assert.NoError(t, PageServiceInstance.MovePage(db, page.ID.String(), section.ID.String(), nil, 3))
	got, err = PageServiceInstance.GetPageById(db, page.ID.String())
	assert.NoError(t, err)
	assert.Nil(t, got.ParentPageID)
	assert.Equal(t, 3, got.OrderIndex)
}

func TestMovePage_RejectsCrossSectionMove(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	sectionA := createSection(t, db, notebook.ID, "A")
	sectionB := createSection(t, db, notebook.ID, "B")
	page := createPage(t, db, sectionA.ID, "Stuck")

	err := PageServiceInstance.MovePage(db, page.ID.String(), sectionB.ID.String(), nil, 1)
	assert.ErrorIs(t, err, ErrCrossContainerMove)
}

func TestMovePage_DetectsCycles(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	section := createSection(t, db, notebook.ID, "Projects")
	a := createPage(t, db, section.ID, "A")
	b := createChildPage(t, db, section.ID, a.ID, "B")
	c := createChildPage(t, db, section.ID, b.ID, "C")

	selfID := a.ID.String()
	err := PageServiceInstance.MovePage(db, a.ID.String(), section.ID.String(), &selfID, 1)
	assert.ErrorIs(t, err, ErrCycleDetected)

	descendantID := c.ID.String()
	err = PageServiceInstance.MovePage(db, a.ID.String(), section.ID.String(), &descendantID, 1)
	assert.ErrorIs(t, err, ErrCycleDetected)

	// A failed move leaves the page untouched.
	got, err := PageServiceInstance.GetPageById(db, a.ID.String())
	assert.NoError(t, err)
	assert.Nil(t, got.ParentPageID)
	assert.Equal(t, 1, got.OrderIndex)
}

func TestDeletePage_CascadesToDescendants(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	section := createSection(t, db, notebook.ID, "Projects")
	root := createPage(t, db, section.ID, "Root")
	child := createChildPage(t, db, section.ID, root.ID, "Child")
	grandchild := createChildPage(t, db, section.ID, child.ID, "Grandchild")
	sibling := createPage(t, db, section.ID, "Sibling")

	assert.NoError(t, PageServiceInstance.DeletePage(db, root.ID.String()))

	for _, pageID := range []uuid.UUID{root.ID, child.ID, grandchild.ID} {
		var got models.Page
		assert.NoError(t, db.DB.Unscoped().First(&got, "id = ?", pageID).Error)
		assert.True(t, got.DeletedAt.Valid)
	}

	var gotSibling models.Page
	assert.NoError(t, db.DB.First(&gotSibling, "id = ?", sibling.ID).Error)
	assert.False(t, gotSibling.DeletedAt.Valid)
}
