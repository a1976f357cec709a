package routes

import (
	"errors"
	"net/http"

	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/services"

	"github.com/gin-gonic/gin"
)

// RegisterTrashRoutes registers all routes related to trash functionality
func RegisterTrashRoutes(router *gin.Engine, db *database.Database, trashService services.TrashServiceInterface) {
	group := router.Group("/api/v1")
	{
		// Get all trashed items
		group.GET("/trash", func(c *gin.Context) { GetTrashedItems(c, db, trashService) })

		// Restore a trashed item
		group.POST("/trash/restore/:type/:id", func(c *gin.Context) { RestoreItem(c, db, trashService) })

		// Permanently delete a trashed item
		group.DELETE("/trash/:type/:id", func(c *gin.Context) { PermanentlyDeleteItem(c, db, trashService) })

		// Empty trash (delete all trashed items permanently)
		group.DELETE("/trash", func(c *gin.Context) { EmptyTrash(c, db, trashService) })
	}
}

// GetTrashedItems retrieves all soft-deleted notebooks, sections and pages
func GetTrashedItems(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	result, err := trashService.GetTrashedItems(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trashed items"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RestoreItem restores a soft-deleted item together with its subtree
func RestoreItem(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	itemType := c.Param("type")
	itemID := c.Param("id")

	if err := trashService.RestoreItem(db, itemType, itemID); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported item type. Must be 'notebook', 'section' or 'page'"})
		case errors.Is(err, services.ErrNotebookNotFound),
			errors.Is(err, services.ErrSectionNotFound),
			errors.Is(err, services.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore item: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item restored successfully",
		"type":    itemType,
		"id":      itemID,
	})
}

// PermanentlyDeleteItem permanently deletes an item and its subtree
func PermanentlyDeleteItem(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	itemType := c.Param("type")
	itemID := c.Param("id")

	if err := trashService.PermanentlyDeleteItem(db, itemType, itemID); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported item type. Must be 'notebook', 'section' or 'page'"})
		case errors.Is(err, services.ErrNotebookNotFound),
			errors.Is(err, services.ErrSectionNotFound),
			errors.Is(err, services.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item permanently deleted",
		"type":    itemType,
		"id":      itemID,
	})
}

// EmptyTrash permanently deletes all trashed items
func EmptyTrash(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	if err := trashService.EmptyTrash(db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to empty trash: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trash emptied successfully"})
}
