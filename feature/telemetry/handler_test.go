package telemetry

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"particle-wui/core/middleware/auth"
	coretelemetry "particle-wui/core/telemetry"
	"particle-wui/feature/telemetry/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T, db *gorm.DB, apiKey string) (*fiber.App, *coretelemetry.Cell, *Service) {
	t.Helper()
	cell := coretelemetry.NewCell()
	svc := NewService(cell, db, testConfig(), zap.NewNop())
	app := fiber.New()
	require.NoError(t, NewFeature(svc, apiKey).Load(app))
	return app, cell, svc
}

func TestHandleCurrent(t *testing.T) {
	app, cell, _ := setupTestApp(t, nil, "")
	cell.Store(coretelemetry.Snapshot{FPS: 60, Frames: 600, TotalTime: 10 * time.Second})

	resp, err := app.Test(httptest.NewRequest("GET", "/data", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 60, body["fps"])
	assert.EqualValues(t, 600, body["frames"])
	assert.EqualValues(t, 10, body["total_seconds"])
}

func TestHandleHistory_NoDatabase(t *testing.T) {
	app, _, _ := setupTestApp(t, nil, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/data/history", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestHandleHistory(t *testing.T) {
	app, cell, svc := setupTestApp(t, setupSqlite(t), "")
	require.NoError(t, svc.Migrate(context.Background()))

	for i := 0; i < 3; i++ {
		cell.Store(coretelemetry.Snapshot{FPS: i})
		_, err := svc.Record(context.Background())
		require.NoError(t, err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/data/history?limit=1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var samples []models.FrameSample
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&samples))
	assert.Len(t, samples, 1)
}

func TestHandleHistory_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	app, _, _ := setupTestApp(t, db, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/data/history", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestRoutes_RequireApiKey(t *testing.T) {
	app, _, _ := setupTestApp(t, nil, "secret")

	resp, err := app.Test(httptest.NewRequest("GET", "/data", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("GET", "/data", nil)
	req.Header.Set(auth.Header, "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(NewService(coretelemetry.NewCell(), nil, testConfig(), nil), "")
	assert.Equal(t, "telemetry", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
