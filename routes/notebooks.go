package routes

import (
	"errors"
	"net/http"

	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/services"

	"github.com/gin-gonic/gin"
)

func RegisterNotebookRoutes(router *gin.Engine, db *database.Database, notebookService services.NotebookServiceInterface) {
	group := router.Group("/api/v1/notebooks")
	{
		group.GET("/", func(c *gin.Context) { GetNotebooks(c, db, notebookService) })
		group.POST("/", func(c *gin.Context) { CreateNotebook(c, db, notebookService) })

		group.GET("/:id", func(c *gin.Context) { GetNotebookById(c, db, notebookService) })
		group.PUT("/:id", func(c *gin.Context) { UpdateNotebook(c, db, notebookService) })
		group.PUT("/:id/move", func(c *gin.Context) { MoveNotebook(c, db, notebookService) })
		group.DELETE("/:id", func(c *gin.Context) { DeleteNotebook(c, db, notebookService) })
	}
}

func GetNotebooks(c *gin.Context, db *database.Database, notebookService services.NotebookServiceInterface) {
	includeDeleted := c.Query("include_deleted") == "true"

	notebooks, err := notebookService.GetNotebooks(db, includeDeleted)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notebooks)
}

func CreateNotebook(c *gin.Context, db *database.Database, notebookService services.NotebookServiceInterface) {
	var notebookData map[string]interface{}
	if err := c.ShouldBindJSON(&notebookData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notebook, err := notebookService.CreateNotebook(db, notebookData)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A non-empty title is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, notebook)
}

func GetNotebookById(c *gin.Context, db *database.Database, notebookService services.NotebookServiceInterface) {
	id := c.Param("id")
	notebook, err := notebookService.GetNotebookById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrNotebookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notebook not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notebook)
}

func UpdateNotebook(c *gin.Context, db *database.Database, notebookService services.NotebookServiceInterface) {
	id := c.Param("id")
	var notebookData map[string]interface{}
	if err := c.ShouldBindJSON(&notebookData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notebook, err := notebookService.UpdateNotebook(db, id, notebookData)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotebookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Notebook not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A non-empty title is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, notebook)
}

func MoveNotebook(c *gin.Context, db *database.Database, notebookService services.NotebookServiceInterface) {
	id := c.Param("id")
	var moveData map[string]interface{}
	if err := c.ShouldBindJSON(&moveData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderIndex, ok := moveData["order_index"].(float64)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_index is required"})
		return
	}

	if err := notebookService.MoveNotebook(db, id, int(orderIndex)); err != nil {
		if errors.Is(err, services.ErrNotebookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notebook not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notebook moved successfully"})
}

func DeleteNotebook(c *gin.Context, db *database.Database, notebookService services.NotebookServiceInterface) {
	id := c.Param("id")
	if err := notebookService.DeleteNotebook(db, id); err != nil {
		if errors.Is(err, services.ErrNotebookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notebook not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notebook moved to trash"})
}
