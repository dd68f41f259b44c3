package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrykeep/backend/internal/models"
)

func TestInventoryCRUD(t *testing.T) {
	db, userID := newTestDB(t)
	handler := NewInventoryHandler(db)
	router := newProtectedRouter(t, userID, func(g *gin.RouterGroup) {
		handler.RegisterRoutes(g)
	})

	// Create
	w := doJSON(router, "POST", "/api/v1/inventory", `{
		"name": "Rice", "quantity": 3, "unit": "cups", "location": "Pantry"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.InventoryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Rice", created.Name)
	assert.Equal(t, userID, created.UserID)

	// List
	w = doJSON(router, "GET", "/api/v1/inventory", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rice")

	// Get
	w = doJSON(router, "GET", "/api/v1/inventory/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	// Update
	w = doJSON(router, "PUT", "/api/v1/inventory/"+created.ID.String(), `{
		"name": "Rice", "quantity": 2.5, "unit": "cups", "location": "Pantry"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.InventoryItem
	require.NoError(t, db.First(&updated, "id = ?", created.ID).Error)
	assert.Equal(t, 2.5, updated.Quantity)

	// Delete
	w = doJSON(router, "DELETE", "/api/v1/inventory/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.InventoryItem{}).Where("id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestInventoryValidation(t *testing.T) {
	db, userID := newTestDB(t)
	handler := NewInventoryHandler(db)
	router := newProtectedRouter(t, userID, func(g *gin.RouterGroup) {
		handler.RegisterRoutes(g)
	})

	w := doJSON(router, "POST", "/api/v1/inventory", `{"quantity": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/api/v1/inventory", `{"name": "Milk", "quantity": -1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Location defaults to Pantry when omitted
	w = doJSON(router, "POST", "/api/v1/inventory", `{"name": "Flour", "quantity": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), models.LocationPantry)
}

func TestInventoryLocationFilter(t *testing.T) {
	db, userID := newTestDB(t)
	for _, item := range []models.InventoryItem{
		{ID: uuid.New(), Name: "Rice", Location: models.LocationPantry, UserID: userID},
		{ID: uuid.New(), Name: "Milk", Location: models.LocationRefrigerator, UserID: userID},
	} {
		require.NoError(t, db.Create(&item).Error)
	}

	handler := NewInventoryHandler(db)
	router := newProtectedRouter(t, userID, func(g *gin.RouterGroup) {
		handler.RegisterRoutes(g)
	})

	w := doJSON(router, "GET", "/api/v1/inventory?location=Refrigerator", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Milk")
	assert.NotContains(t, w.Body.String(), "Rice")
}

func TestInventoryScopedToUser(t *testing.T) {
	db, userID := newTestDB(t)
	other := models.InventoryItem{ID: uuid.New(), Name: "Not Yours", Location: models.LocationPantry, UserID: uuid.New()}
	require.NoError(t, db.Create(&other).Error)

	handler := NewInventoryHandler(db)
	router := newProtectedRouter(t, userID, func(g *gin.RouterGroup) {
		handler.RegisterRoutes(g)
	})

	w := doJSON(router, "GET", "/api/v1/inventory", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Not Yours")

	// Another household's rows are invisible by id as well
	w = doJSON(router, "GET", "/api/v1/inventory/"+other.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "PUT", "/api/v1/inventory/"+other.ID.String(), `{
		"name": "Hijacked", "quantity": 1
	}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "DELETE", "/api/v1/inventory/"+other.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var kept models.InventoryItem
	require.NoError(t, db.First(&kept, "id = ?", other.ID).Error)
	assert.Equal(t, "Not Yours", kept.Name)
}

func TestInventoryRequiresAuth(t *testing.T) {
	db, _ := newTestDB(t)
	handler := NewInventoryHandler(db)

	gin.SetMode(gin.TestMode)
	router := newProtectedRouter(t, uuid.New(), func(g *gin.RouterGroup) {
		handler.RegisterRoutes(g)
	})

	w := doRaw(router, "GET", "/api/v1/inventory")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
