package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pagebinder-notes/pagebinder/models"
	"pagebinder-notes/pagebinder/testutils"
)

func TestCreateSection_AssignsOrderPerNotebook(t *testing.T) {
	db := testutils.SetupTestDB(t)

	nbA := createNotebook(t, db, "A")
	nbB := createNotebook(t, db, "B")

	s1 := createSection(t, db, nbA.ID, "A1")
	s2 := createSection(t, db, nbA.ID, "A2")
	s3 := createSection(t, db, nbB.ID, "B1")

	assert.Equal(t, 1, s1.OrderIndex)
	assert.Equal(t, 2, s2.OrderIndex)
	assert.Equal(t, 1, s3.OrderIndex)
}

func TestCreateSection_RejectsMissingOrTrashedNotebook(t *testing.T) {
	db := testutils.SetupTestDB(t)

	_, err := SectionServiceInstance.CreateSection(db, map[string]interface{}{
		"notebook_id": uuid.NewString(),
		"title":       "Orphan",
	})
	assert.ErrorIs(t, err, ErrInvalidParent)

	notebook := createNotebook(t, db, "Doomed")
	assert.NoError(t, NotebookServiceInstance.DeleteNotebook(db, notebook.ID.String()))

	_, err = SectionServiceInstance.CreateSection(db, map[string]interface{}{
		"notebook_id": notebook.ID.String(),
		"title":       "Too Late",
	})
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestCreateSection_ValidatesColor(t *testing.T) {
	db := testutils.SetupTestDB(t)
	notebook := createNotebook(t, db, "Colors")

	section, err := SectionServiceInstance.CreateSection(db, map[string]interface{}{
		"notebook_id": notebook.ID.String(),
		"title":       "Tinted",
		"color_hex":   "#AA00FF",
	})
	assert.NoError(t, err)
	if assert.NotNil(t, section.ColorHex) {
		assert.Equal(t, "#AA00FF", *section.ColorHex)
	}

	_, err = SectionServiceInstance.CreateSection(db, map[string]interface{}{
		"notebook_id": notebook.ID.String(),
		"title":       "Bad",
		"color_hex":   "purple",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSection_ClearsColorWithEmptyString(t *testing.T) {
	db := testutils.SetupTestDB(t)
	notebook := createNotebook(t, db, "Colors")
	section, err := SectionServiceInstance.CreateSection(db, map[string]interface{}{
		"notebook_id": notebook.ID.String(),
		"title":       "Tinted",
		"color_hex":   "#112233",
	})
	assert.NoError(t, err)

	updated, err := SectionServiceInstance.UpdateSection(db, section.ID.String(), map[string]interface{}{"color_hex": ""})
	assert.NoError(t, err)
	assert.Nil(t, updated.ColorHex)

	_, err = SectionServiceInstance.UpdateSection(db, section.ID.String(), map[string]interface{}{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoveSection_RejectsCrossNotebookMove(t *testing.T) {
	db := testutils.SetupTestDB(t)

	nbA := createNotebook(t, db, "A")
	nbB := createNotebook(t, db, "B")
	section := createSection(t, db, nbA.ID, "Stuck")

	err := SectionServiceInstance.MoveSection(db, section.ID.String(), nbB.ID.String(), 1)
	assert.ErrorIs(t, err, ErrCrossContainerMove)

	assert.NoError(t, SectionServiceInstance.MoveSection(db, section.ID.String(), nbA.ID.String(), 4))
	got, err := SectionServiceInstance.GetSectionById(db, section.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 4, got.OrderIndex)
}

func TestDeleteSection_CascadesToPagesOnly(t *testing.T) {
	db := testutils.SetupTestDB(t)

	notebook := createNotebook(t, db, "Work")
	section := createSection(t, db, notebook.ID, "Projects")
	sibling := createSection(t, db, notebook.ID, "Notes")
	page := createPage(t, db, section.ID, "Roadmap")
	child := createChildPage(t, db, section.ID, page.ID, "Q3")

	assert.NoError(t, SectionServiceInstance.DeleteSection(db, section.ID.String()))

	var gotNotebook models.Notebook
	assert.NoError(t, db.DB.First(&gotNotebook, "id = ?", notebook.ID).Error)

	var gotSibling models.Section
	assert.NoError(t, db.DB.First(&gotSibling, "id = ?", sibling.ID).Error)

	for _, pageID := range []uuid.UUID{page.ID, child.ID} {
		var gotPage models.Page
		assert.NoError(t, db.DB.Unscoped().First(&gotPage, "id = ?", pageID).Error)
		assert.True(t, gotPage.DeletedAt.Valid)
	}
}
