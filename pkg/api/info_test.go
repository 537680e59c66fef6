package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"zoo_management/pkg/models"
	"zoo_management/pkg/store"
)

func TestHealthCheck(t *testing.T) {
	h, _ := setupTestHandler(t)

	c, w := newTestContext("GET", "/api/health", "")
	h.healthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	h, db := setupTestHandler(t)
	sqlDB, _ := db.DB()
	sqlDB.Close()

	c, w := newTestContext("GET", "/api/health", "")
	h.healthCheck(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	response := decodeMap(t, w)
	assert.Equal(t, "error", response["status"])
	assert.Equal(t, "unreachable", response["database"])
}

func TestGetZooInfo(t *testing.T) {
	h, db := setupTestHandler(t)

	c, w := newTestContext("GET", "/api/zoo-info", "")
	h.getZooInfo(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_NOT_FOUND", decodeMap(t, w)["code"])

	start, end := "09:00", "18:00"
	db.Create(&models.ZooInfo{Name: "Central City Zoo", StartTime: &start, EndTime: &end})

	c, w = newTestContext("GET", "/api/zoo-info", "")
	h.getZooInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeMap(t, w)
	assert.Equal(t, "Central City Zoo", response["name"])
	assert.Equal(t, "09:00", response["startTime"])
	assert.Equal(t, "18:00", response["endTime"])
}

func TestGetDashboardStats(t *testing.T) {
	h, db := setupTestHandler(t)

	c, w := newTestContext("GET", "/api/dashboard/stats", "")
	h.getDashboardStats(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"animals":0,"employees":0,"cages":0,"revenue":0}`, w.Body.String())

	total := 99.5
	db.Create(&models.Animal{ID: "1", Name: "Simba", Species: "Lion"})
	db.Create(&models.Employee{ID: "E1", Name: "Sam"})
	db.Create(&models.TicketSale{ID: "S1", TotalAmount: &total})

	c, w = newTestContext("GET", "/api/dashboard/stats", "")
	h.getDashboardStats(c)
	assert.JSONEq(t, `{"animals":1,"employees":1,"cages":0,"revenue":99.5}`, w.Body.String())
}

func TestRegisterForEvent(t *testing.T) {
	h, db := setupTestHandler(t)
	capacity := int64(5)
	db.Create(&models.Event{ID: "EV1", Title: "Penguin Parade", Capacity: &capacity})

	tests := []struct {
		name   string
		id     string
		body   string
		status int
	}{
		{"books places", "EV1", `{"quantity":3}`, http.StatusOK},
		{"over capacity", "EV1", `{"quantity":3}`, http.StatusConflict},
		{"unknown event", "EV9", `{"quantity":1}`, http.StatusNotFound},
		{"zero quantity", "EV1", `{"quantity":0}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("POST", "/api/events/"+tt.id+"/register", tt.body)
			c.Params = gin.Params{gin.Param{Key: "id", Value: tt.id}}
			h.registerForEvent(c)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	var event models.Event
	require.NoError(t, db.First(&event, "id = ?", "EV1").Error)
	assert.Equal(t, int64(3), *event.RegisteredCount)
}

func TestStoreUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "animals"`).WillReturnError(context.DeadlineExceeded)

	h := NewHandler(store.New(db), zap.NewNop())
	c, w := newTestContext("GET", "/api/animals", "")
	h.listResource(mustResource(t, "animals"))(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	response := decodeMap(t, w)
	assert.Equal(t, "ERR_STORE_UNAVAILABLE", response["code"])
	assert.Equal(t, "Failed to fetch animals", response["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFailureOnDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "cages"`).WithArgs("C1").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	h := NewHandler(store.New(db), zap.NewNop())
	c, w := newTestContext("DELETE", "/api/cages/C1", "")
	c.Params = gin.Params{gin.Param{Key: "id", Value: "C1"}}
	h.deleteResource(mustResource(t, "cages"))(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decodeMap(t, w)
	assert.Equal(t, "Failed to delete cage", response["error"])
	assert.Equal(t, "ERR_INTERNAL", response["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
