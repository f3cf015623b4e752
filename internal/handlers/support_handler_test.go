package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tipjar_backend/database"
	"tipjar_backend/internal/app"
	"tipjar_backend/internal/auth"
	"tipjar_backend/internal/config"
	"tipjar_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Support.TimeoutSeconds = 5
	cfg.Support.AllowDuplicateMembership = true
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })

	return app.SetupRouter(cfg, db), db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	parsed := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func seedCreator(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	creator := &models.User{
		Email:        "alice@example.com",
		Username:     "alice",
		DisplayName:  "Alice",
		PasswordHash: "x",
		Role:         models.UserRoleCreator,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(creator).Error)
	return creator
}

func TestSupportEndpoint_Success(t *testing.T) {
	router, db := newTestRouter(t)
	creator := seedCreator(t, db)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/support", "", map[string]interface{}{
		"name":       "Fan One",
		"email":      "fan@example.com",
		"message":    "love your work",
		"amount":     500,
		"creator_id": creator.ID,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])

	result, ok := body["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, result["supporter_created"])
	assert.Equal(t, true, result["follow_created"])
	assert.NotEmpty(t, result["payment_id"])
}

func TestSupportEndpoint_RecurringResult(t *testing.T) {
	router, db := newTestRouter(t)
	creator := seedCreator(t, db)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/support", "", map[string]interface{}{
		"email":        "fan@example.com",
		"amount":       1500,
		"is_recurring": true,
		"creator_id":   creator.ID,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := body["result"].(map[string]interface{})
	assert.NotEmpty(t, result["plan_id"])
	assert.NotEmpty(t, result["membership_id"])
}

func TestSupportEndpoint_UnknownCreatorIsFlatError(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/support", "", map[string]interface{}{
		"email":      "fan@example.com",
		"amount":     500,
		"creator_id": "00000000-0000-0000-0000-000000000000",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Creator not found", body["error"])
}

func TestSupportEndpoint_ValidationRejected(t *testing.T) {
	router, db := newTestRouter(t)
	creator := seedCreator(t, db)

	cases := []map[string]interface{}{
		{"email": "fan@example.com", "creator_id": creator.ID},                   // missing amount
		{"email": "fan@example.com", "amount": -5, "creator_id": creator.ID},     // negative amount
		{"email": "not-an-email", "amount": 500, "creator_id": creator.ID},       // bad email
		{"email": "fan@example.com", "amount": 500},                              // missing creator
	}
	for _, body := range cases {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/support", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %v", body)
	}

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.EqualValues(t, 0, payments)
}

func TestAuthAndDashboardFlow(t *testing.T) {
	router, db := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":        "alice@example.com",
		"username":     "alice",
		"display_name": "Alice",
		"password":     "super_secret_1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, login := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "super_secret_1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := login["access_token"].(string)
	require.NotEmpty(t, token)

	var creator models.User
	require.NoError(t, db.First(&creator, "username = ?", "alice").Error)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/support", "", map[string]interface{}{
		"email":        "fan@example.com",
		"amount":       1500,
		"is_recurring": true,
		"creator_id":   creator.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, profile := doJSON(t, router, http.MethodGet, "/api/v1/creators/alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, profile["follower_count"])

	rec, payments := doJSON(t, router, http.MethodGet, "/api/v1/me/payments", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, payments["total"])

	rec, followers := doJSON(t, router, http.MethodGet, "/api/v1/me/followers", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, followers["total"])

	rec, memberships := doJSON(t, router, http.MethodGet, "/api/v1/me/memberships", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, memberships["memberships"], 1)

	// Dashboard routes reject anonymous requests and non-creator tokens.
	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/me/payments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	fanToken, err := auth.GenerateToken("fan-id", string(models.UserRoleSupporter))
	require.NoError(t, err)
	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/me/payments", fanToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
