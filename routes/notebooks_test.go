package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/models"
	"pagebinder-notes/pagebinder/services"
)

const knownNotebookID = "123e4567-e89b-12d3-a456-426614174000"

type MockNotebookService struct{}

func (m *MockNotebookService) CreateNotebook(db *database.Database, notebookData map[string]interface{}) (models.Notebook, error) {
	title, ok := notebookData["title"].(string)
	if !ok || title == "" {
		return models.Notebook{}, services.ErrInvalidInput
	}
	return models.Notebook{
		ID:         uuid.Must(uuid.Parse(knownNotebookID)),
		Title:      title,
		OrderIndex: 1,
	}, nil
}

func (m *MockNotebookService) GetNotebookById(db *database.Database, id string) (models.Notebook, error) {
	if id == knownNotebookID {
		return models.Notebook{
			ID:    uuid.Must(uuid.Parse(id)),
			Title: "Test Notebook",
		}, nil
	}
	return models.Notebook{}, services.ErrNotebookNotFound
}

func (m *MockNotebookService) GetNotebooks(db *database.Database, includeDeleted bool) ([]models.Notebook, error) {
	notebooks := []models.Notebook{
		{ID: uuid.Must(uuid.Parse(knownNotebookID)), Title: "Test Notebook", OrderIndex: 1},
	}
	if includeDeleted {
		notebooks = append(notebooks, models.Notebook{
			ID:         uuid.Must(uuid.Parse("123e4567-e89b-12d3-a456-426614174001")),
			Title:      "Trashed Notebook",
			OrderIndex: 2,
		})
	}
	return notebooks, nil
}

func (m *MockNotebookService) UpdateNotebook(db *database.Database, id string, updatedData map[string]interface{}) (models.Notebook, error) {
	if id != knownNotebookID {
		return models.Notebook{}, services.ErrNotebookNotFound
	}
	title, ok := updatedData["title"].(string)
	if !ok || title == "" {
		return models.Notebook{}, services.ErrInvalidInput
	}
	return models.Notebook{
		ID:    uuid.Must(uuid.Parse(id)),
		Title: title,
	}, nil
}

func (m *MockNotebookService) MoveNotebook(db *database.Database, id string, newOrderIndex int) error {
	if id != knownNotebookID {
		return services.ErrNotebookNotFound
	}
	return nil
}

func (m *MockNotebookService) DeleteNotebook(db *database.Database, id string) error {
	if id != knownNotebookID {
		return services.ErrNotebookNotFound
	}
	return nil
}

func setupNotebookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	RegisterNotebookRoutes(router, &database.Database{}, &MockNotebookService{})
	return router
}

func TestCreateNotebookRoute(t *testing.T) {
	router := setupNotebookRouter()

	t.Run("Invalid JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/notebooks/", bytes.NewBufferString("invalid json"))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Title", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/notebooks/", bytes.NewBufferString(`{}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Valid JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/notebooks/", bytes.NewBufferString(`{"title":"Test Notebook"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestGetNotebookByIdRoute(t *testing.T) {
	router := setupNotebookRouter()

	t.Run("Notebook Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/notebooks/123e4567-e89b-12d3-a456-426614174999", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Notebook Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/notebooks/"+knownNotebookID, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetNotebooksRoute(t *testing.T) {
	router := setupNotebookRouter()

	t.Run("Active Only", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/notebooks/", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Trashed Notebook")
	})

	t.Run("Include Deleted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/notebooks/?include_deleted=true", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Trashed Notebook")
	})
}

func TestUpdateNotebookRoute(t *testing.T) {
	router := setupNotebookRouter()

	t.Run("Notebook Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/notebooks/123e4567-e89b-12d3-a456-426614174999", bytes.NewBufferString(`{"title":"Renamed"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Notebook Updated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/notebooks/"+knownNotebookID, bytes.NewBufferString(`{"title":"Renamed"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Renamed")
	})
}

func TestMoveNotebookRoute(t *testing.T) {
	router := setupNotebookRouter()

	t.Run("Missing Order Index", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/notebooks/"+knownNotebookID+"/move", bytes.NewBufferString(`{}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Notebook Moved", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/notebooks/"+knownNotebookID+"/move", bytes.NewBufferString(`{"order_index": 3}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeleteNotebookRoute(t *testing.T) {
	router := setupNotebookRouter()

	t.Run("Notebook Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/notebooks/123e4567-e89b-12d3-a456-426614174999", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Notebook Trashed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/notebooks/"+knownNotebookID, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
