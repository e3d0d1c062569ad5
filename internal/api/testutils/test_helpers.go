package testutils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/papilo-topato/AccountsManagerApplication/internal/api"
	"github.com/papilo-topato/AccountsManagerApplication/internal/config"
	"github.com/papilo-topato/AccountsManagerApplication/internal/repository"
	"github.com/papilo-topato/AccountsManagerApplication/internal/service"
	"github.com/papilo-topato/AccountsManagerApplication/internal/utils"
	"github.com/papilo-topato/AccountsManagerApplication/internal/watch"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository repository.Repository
	Service    service.Service
	Broker     *watch.Broker
	DB         *sqlx.DB
}

// SetupTestContext creates a new test context with a fresh temp-file SQLite
// database and the full router wired over it. The broker runs with a zero
// grace period so subscription teardown is immediate in tests.
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Path: filepath.Join(t.TempDir(), "accounts_test.db"),
		},
		Trash: config.TrashConfig{RetentionDays: 30},
	}

	db, err := config.SetupDatabase(cfg)
	require.NoError(t, err, "Failed to set up test database")

	broker := watch.NewBrokerWithGrace(0)
	repo := repository.NewSQLiteRepository(db, broker)
	logger := utils.NewLogger()
	svc := service.NewDefaultService(repo, broker, logger, cfg.Trash.RetentionDays)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(api.RecoveryMiddleware(logger))

	handler := api.NewHandler(svc, logger)
	handler.SetupRoutes(router)

	return &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		Broker:     broker,
		DB:         db,
	}
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(tc *TestContext) {
	if tc.DB != nil {
		tc.DB.Close()
	}
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
