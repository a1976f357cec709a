package routes

import (
	"errors"
	"net/http"

	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/services"

	"github.com/gin-gonic/gin"
)

func RegisterSectionRoutes(router *gin.Engine, db *database.Database, sectionService services.SectionServiceInterface) {
	group := router.Group("/api/v1/sections")
	{
		group.GET("/", func(c *gin.Context) { GetSections(c, db, sectionService) })
		group.POST("/", func(c *gin.Context) { CreateSection(c, db, sectionService) })

		group.GET("/:id", func(c *gin.Context) { GetSectionById(c, db, sectionService) })
		group.PUT("/:id", func(c *gin.Context) { UpdateSection(c, db, sectionService) })
		group.PUT("/:id/move", func(c *gin.Context) { MoveSection(c, db, sectionService) })
		group.DELETE("/:id", func(c *gin.Context) { DeleteSection(c, db, sectionService) })
	}

	// Tree-view convenience listing, same contract as ?notebook_id=.
	router.GET("/api/v1/notebooks/:id/sections", func(c *gin.Context) {
		sections, err := sectionService.GetSections(db, c.Param("id"), c.Query("include_deleted") == "true")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sections)
	})
}

func GetSections(c *gin.Context, db *database.Database, sectionService services.SectionServiceInterface) {
	notebookID := c.Query("notebook_id")
	if notebookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notebook_id is required"})
		return
	}

	sections, err := sectionService.GetSections(db, notebookID, c.Query("include_deleted") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sections)
}

func CreateSection(c *gin.Context, db *database.Database, sectionService services.SectionServiceInterface) {
	var sectionData map[string]interface{}
	if err := c.ShouldBindJSON(&sectionData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := sectionService.CreateSection(db, sectionData)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "notebook_id and a non-empty title are required"})
		case errors.Is(err, services.ErrInvalidParent):
			c.JSON(http.StatusConflict, gin.H{"error": "Notebook does not exist or is in trash"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, section)
}

func GetSectionById(c *gin.Context, db *database.Database, sectionService services.SectionServiceInterface) {
	id := c.Param("id")
	section, err := sectionService.GetSectionById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrSectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, section)
}

func UpdateSection(c *gin.Context, db *database.Database, sectionService services.SectionServiceInterface) {
	id := c.Param("id")
	var sectionData map[string]interface{}
	if err := c.ShouldBindJSON(&sectionData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := sectionService.UpdateSection(db, id, sectionData)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title or color"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, section)
}

func MoveSection(c *gin.Context, db *database.Database, sectionService services.SectionServiceInterface) {
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
	notebookID, _ := moveData["notebook_id"].(string)

	if err := sectionService.MoveSection(db, id, notebookID, int(orderIndex)); err != nil {
		switch {
		case errors.Is(err, services.ErrSectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		case errors.Is(err, services.ErrCrossContainerMove):
			c.JSON(http.StatusConflict, gin.H{"error": "Sections cannot move to a different notebook"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section moved successfully"})
}

func DeleteSection(c *gin.Context, db *database.Database, sectionService services.SectionServiceInterface) {
	id := c.Param("id")
	if err := sectionService.DeleteSection(db, id); err != nil {
		if errors.Is(err, services.ErrSectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section moved to trash"})
}
