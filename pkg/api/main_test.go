package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"zoo_management/pkg/database"
	"zoo_management/pkg/resources"
	"zoo_management/pkg/store"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	h := NewHandler(store.New(db), zap.NewNop())
	h.now = func() time.Time { return fixedNow }
	return h, db
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	h, db := setupTestHandler(t)
	return NewRouter(h, RouterConfig{CORSAllowOrigins: []string{"*"}}, zap.NewNop()), db
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func mustResource(t *testing.T, path string) *resources.Resource {
	t.Helper()
	res, ok := resources.Lookup(path)
	require.True(t, ok)
	return res
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}
