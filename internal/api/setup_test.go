package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrykeep/backend/internal/middleware"
	"github.com/pantrykeep/backend/internal/testhelpers"
	"github.com/pantrykeep/backend/internal/types"
)

// newProtectedRouter mounts a handler's routes behind an auth middleware
// that accepts any token as the given user.
func newProtectedRouter(t *testing.T, userID uuid.UUID, register func(*gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	validator := &testhelpers.MockTokenValidator{
		Claims: &types.TokenClaims{UserID: userID, Username: "testuser"},
	}

	group := router.Group("/api/v1")
	group.Use(middleware.AuthMiddleware(validator))
	register(group)

	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	router.ServeHTTP(w, req)
	return w
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doRaw sends a request without an Authorization header
func doRaw(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func newTestDB(t *testing.T) (*gorm.DB, uuid.UUID) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateTestUser(t, db, "testpassword123")
	return db, user.ID
}
