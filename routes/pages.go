package routes

import (
	"errors"
	"net/http"

	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/services"

	"github.com/gin-gonic/gin"
)

func RegisterPageRoutes(router *gin.Engine, db *database.Database, pageService services.PageServiceInterface) {
	group := router.Group("/api/v1/pages")
	{
		group.GET("/", func(c *gin.Context) { GetPages(c, db, pageService) })
		group.POST("/", func(c *gin.Context) { CreatePage(c, db, pageService) })

		group.GET("/:id", func(c *gin.Context) { GetPageById(c, db, pageService) })
		group.PUT("/:id", func(c *gin.Context) { UpdatePage(c, db, pageService) })
		group.PUT("/:id/content", func(c *gin.Context) { UpdatePageContent(c, db, pageService) })
		group.PUT("/:id/move", func(c *gin.Context) { MovePage(c, db, pageService) })
		group.DELETE("/:id", func(c *gin.Context) { DeletePage(c, db, pageService) })
	}

	router.GET("/api/v1/sections/:id/pages", func(c *gin.Context) {
		pages, err := pageService.GetPagesBySection(db, c.Param("id"), c.Query("include_deleted") == "true")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, pages)
	})
}

// GetPages lists a single sibling group when parent_page_id is present in the
// query (empty value selects the section's top-level pages); without it the
// whole section is returned.
func GetPages(c *gin.Context, db *database.Database, pageService services.PageServiceInterface) {
	sectionID := c.Query("section_id")
	if sectionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "section_id is required"})
		return
	}
	includeDeleted := c.Query("include_deleted") == "true"

	var pages interface{}
	var err error
	if parentPageID, hasParent := c.GetQuery("parent_page_id"); hasParent {
		var parent *string
		if parentPageID != "" {
			parent = &parentPageID
		}
		pages, err = pageService.GetPages(db, sectionID, parent, includeDeleted)
	} else {
		pages, err = pageService.GetPagesBySection(db, sectionID, includeDeleted)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pages)
}

func CreatePage(c *gin.Context, db *database.Database, pageService services.PageServiceInterface) {
	var pageData map[string]interface{}
	if err := c.ShouldBindJSON(&pageData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := pageService.CreatePage(db, pageData)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "section_id and a non-empty title are required"})
		case errors.Is(err, services.ErrInvalidParent):
			c.JSON(http.StatusConflict, gin.H{"error": "Parent does not exist, is in trash, or belongs to another section"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, page)
}

func GetPageById(c *gin.Context, db *database.Database, pageService services.PageServiceInterface) {
	id := c.Param("id")
	page, err := pageService.GetPageById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

func UpdatePage(c *gin.Context, db *database.Database, pageService services.PageServiceInterface) {
	id := c.Param("id")
	var pageData map[string]interface{}
	if err := c.ShouldBindJSON(&pageData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := pageService.UpdatePage(db, id, pageData)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A non-empty title is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, page)
}

func UpdatePageContent(c *gin.Context, db *database.Database, pageService services.PageServiceInterface) {
	id := c.Param("id")
	var contentData map[string]interface{}
	if err := c.ShouldBindJSON(&contentData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentHTML, ok := contentData["content_html"].(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_html is required"})
		return
	}

	page, err := pageService.UpdatePageContent(db, id, contentHTML)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		case errors.Is(err, services.ErrPageReadOnly):
			c.JSON(http.StatusConflict, gin.H{"error": "Page is in trash and read-only; restore it first"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, page)
}

func MovePage(c *gin.Context, db *database.Database, pageService services.PageServiceInterface) {
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
	sectionID, _ := moveData["section_id"].(string)

	var parentPageID *string
	if parent, ok := moveData["parent_page_id"].(string); ok {
		parentPageID = &parent
	}

	if err := pageService.MovePage(db, id, sectionID, parentPageID, int(orderIndex)); err != nil {
		switch {
		case errors.Is(err, services.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		case errors.Is(err, services.ErrCrossContainerMove):
			c.JSON(http.StatusConflict, gin.H{"error": "Pages cannot move to a different section"})
		case errors.Is(err, services.ErrCycleDetected):
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot nest a page under its own descendant"})
		case errors.Is(err, services.ErrInvalidParent):
			c.JSON(http.StatusConflict, gin.H{"error": "Parent page does not exist or is in trash"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed parent_page_id"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page moved successfully"})
}

func DeletePage(c *gin.Context, db *database.Database, pageService services.PageServiceInterface) {
	id := c.Param("id")
	if err := pageService.DeletePage(db, id); err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page moved to trash"})
}
