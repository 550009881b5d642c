package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aiautoreview/aiautoreview-backend/config"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/controller"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/repository"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/service"
	"github.com/aiautoreview/aiautoreview-backend/internal/db"
	"github.com/aiautoreview/aiautoreview-backend/internal/middleware"
	"github.com/aiautoreview/aiautoreview-backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Spins up the whole HTTP surface against an in-memory database and walks
// the primary workflow end to end.

func setupIntegrationTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	gormDB, err := db.SetupTestDB()
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:        "8080",
			GinMode:     gin.TestMode,
			Environment: "test",
		},
		JWT: config.JWTConfig{
			Secret:      "integration-test-secret",
			TokenExpiry: time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}

	userRepo := repository.NewUserRepository(gormDB)
	businessRepo := repository.NewBusinessRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	responseRepo := repository.NewResponseRepository(gormDB)

	authService := service.NewAuthService(gormDB, userRepo, businessRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	reviewService := service.NewReviewService(gormDB, reviewRepo)
	responseService := service.NewResponseService(reviewRepo, responseRepo)

	authController := controller.NewAuthController(authService)
	reviewController := controller.NewReviewController(reviewService, responseService)
	responseController := controller.NewResponseController(responseService)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, userRepo)

	r := router.NewRouter(authController, reviewController, responseController, authMiddleware, cfg)
	return gormDB, r.Setup()
}

func doRequest(engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	gormDB, engine := setupIntegrationTest(t)
	defer db.CleanupTestDB(gormDB)

	w := doRequest(engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	gormDB, engine := setupIntegrationTest(t)
	defer db.CleanupTestDB(gormDB)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/reviews"},
		{http.MethodGet, "/api/v1/reviews/stats"},
		{http.MethodPost, "/api/v1/reviews/sync"},
		{http.MethodGet, "/api/v1/responses/pending"},
		{http.MethodGet, "/api/v1/auth/me"},
	}

	for _, p := range paths {
		w := doRequest(engine, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s must require auth", p.method, p.path)
	}
}

func TestReviewWorkflow(t *testing.T) {
	gormDB, engine := setupIntegrationTest(t)
	defer db.CleanupTestDB(gormDB)

	// Register a business with its admin user
	w := doRequest(engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"business_name": "Acme Diner",
		"name":          "Ann",
		"email":         "ann@acme.test",
		"password":      "Password123!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Login and keep the token for everything that follows
	w = doRequest(engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "ann@acme.test",
		"password": "Password123!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := parseBody(t, w)["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)

	// Sync a batch of reviews
	w = doRequest(engine, http.MethodPost, "/api/v1/reviews/sync", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	synced := parseBody(t, w)["data"].(map[string]interface{})["synced"]
	assert.Equal(t, float64(5), synced)

	// List them back, newest first
	w = doRequest(engine, http.MethodGet, "/api/v1/reviews", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listData := parseBody(t, w)["data"].(map[string]interface{})
	reviews := listData["reviews"].([]interface{})
	require.Len(t, reviews, 5)

	var lastDate time.Time
	for i, raw := range reviews {
		review := raw.(map[string]interface{})
		reviewDate, err := time.Parse(time.RFC3339, review["review_date"].(string))
		require.NoError(t, err)
		if i > 0 {
			assert.False(t, reviewDate.After(lastDate), "reviews must be ordered newest first")
		}
		lastDate = reviewDate
	}

	pagination := listData["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["current_page"])
	assert.Equal(t, float64(1), pagination["total_pages"])
	assert.Equal(t, float64(5), pagination["total"])

	// Stats reflect the synced batch
	w = doRequest(engine, http.MethodGet, "/api/v1/reviews/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(5), stats["total_reviews"])
	assert.Equal(t, float64(0), stats["pending_responses"])

	// Draft a response for the newest review
	firstReview := reviews[0].(map[string]interface{})
	reviewID := int(firstReview["id"].(float64))

	w = doRequest(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/reviews/%d/generate", reviewID), token,
		gin.H{"business_name": "Acme Diner"},
	)
	require.Equal(t, http.StatusOK, w.Code)
	generated := parseBody(t, w)["data"].(map[string]interface{})
	responseID := int(generated["id"].(float64))
	assert.Equal(t, "pending", generated["status"])
	assert.Contains(t, generated["response_text"], "Acme Diner")

	// The draft shows up in the pending queue
	w = doRequest(engine, http.MethodGet, "/api/v1/responses/pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := parseBody(t, w)["data"].([]interface{})
	require.Len(t, pending, 1)

	// Approve, then post
	w = doRequest(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/responses/%d/approve", responseID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", parseBody(t, w)["data"].(map[string]interface{})["status"])

	w = doRequest(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/responses/%d/post", responseID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "posted", parseBody(t, w)["data"].(map[string]interface{})["status"])

	// The queue is empty again
	w = doRequest(engine, http.MethodGet, "/api/v1/responses/pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, parseBody(t, w)["data"])
}

func TestTenantIsolation(t *testing.T) {
	gormDB, engine := setupIntegrationTest(t)
	defer db.CleanupTestDB(gormDB)

	register := func(business, email string) string {
		w := doRequest(engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"business_name": business,
			"name":          "Owner",
			"email":         email,
			"password":      "Password123!",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		return parseBody(t, w)["data"].(map[string]interface{})["token"].(string)
	}

	tokenA := register("Cafe A", "a@tenant.test")
	tokenB := register("Cafe B", "b@tenant.test")

	// Tenant A syncs reviews; tenant B sees none of them
	w := doRequest(engine, http.MethodPost, "/api/v1/reviews/sync", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/v1/reviews", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Empty(t, data["reviews"])

	// Tenant B cannot draft a response for tenant A's review
	w = doRequest(engine, http.MethodGet, "/api/v1/reviews", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	reviewsA := parseBody(t, w)["data"].(map[string]interface{})["reviews"].([]interface{})
	require.NotEmpty(t, reviewsA)
	reviewID := int(reviewsA[0].(map[string]interface{})["id"].(float64))

	w = doRequest(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/reviews/%d/generate", reviewID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Tenant A drafts it; tenant B cannot approve it
	w = doRequest(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/reviews/%d/generate", reviewID), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	responseID := int(parseBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = doRequest(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/responses/%d/approve", responseID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDuplicateEmailRegistration(t *testing.T) {
	gormDB, engine := setupIntegrationTest(t)
	defer db.CleanupTestDB(gormDB)

	payload := gin.H{
		"business_name": "Acme Diner",
		"name":          "Ann",
		"email":         "ann@acme.test",
		"password":      "Password123!",
	}

	w := doRequest(engine, http.MethodPost, "/api/v1/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["business_name"] = "Other Diner"
	w = doRequest(engine, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "AUTH_EMAIL_EXISTS", parseBody(t, w)["error"])
}
