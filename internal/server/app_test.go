package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ganatecnica/obradiary/internal/server/config"
	"github.com/ganatecnica/obradiary/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDriver = config.DriverSQLite
	c.DatabaseDSN = filepath.Join(t.TempDir(), "diary.db")
	c.HTTPAddr = "127.0.0.1:0"
	c.HealthAddrGRPC = "127.0.0.1:0"
	c.Timezone = "UTC"
	c.LogLevel = "error"
	return c
}

func TestNewApp_Errors(t *testing.T) {
	ctx := context.Background()

	c := sqliteConfig(t)
	c.LogBackend = "syslog"
	_, err := NewApp(ctx, c)
	assert.ErrorContains(t, err, "logger init error")

	c = sqliteConfig(t)
	c.Timezone = "Mars/Olympus"
	_, err = NewApp(ctx, c)
	assert.ErrorContains(t, err, "timezone")

	orig := openStore
	defer func() { openStore = orig }()
	openStore = func(context.Context, string, string) (*sql.DB, *repomanager.SQLRepositoryManager, error) {
		return nil, nil, errors.New("refused")
	}
	_, err = NewApp(ctx, sqliteConfig(t))
	assert.ErrorContains(t, err, "db init error: refused")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := NewApp(ctx, sqliteConfig(t))
	require.NoError(t, err)
	defer app.Close()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func postJSON(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	var out map[string]any
	if strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestApp_DiaryOverHTTP(t *testing.T) {
	ctx := context.Background()

	app, err := NewApp(ctx, sqliteConfig(t))
	require.NoError(t, err)
	defer app.Close()
	require.NoError(t, app.Migrate(ctx))

	h := app.Handler().Routes(time.Second)

	code, project := postJSON(t, h, http.MethodPost, "/proyectos", `{"name":"Casa Pérez"}`)
	require.Equal(t, http.StatusCreated, code)
	code, worker := postJSON(t, h, http.MethodPost, "/personal", `{"name":"Juan"}`)
	require.Equal(t, http.StatusCreated, code)

	pid, wid := project["id"].(string), worker["id"].(string)

	clockIn := fmt.Sprintf(`{"projectId":%q,"workerId":%q,"startTime":"2024-01-10T08:00"}`, pid, wid)
	code, entry := postJSON(t, h, http.MethodPost, "/diary", clockIn)
	require.Equal(t, http.StatusCreated, code, entry)
	assert.Equal(t, "active", entry["status"])

	code, _ = postJSON(t, h, http.MethodPost, "/diary", clockIn)
	assert.Equal(t, http.StatusBadRequest, code)

	code, entry = postJSON(t, h, http.MethodPut, "/diary/clock-out",
		fmt.Sprintf(`{"projectId":%q,"workerId":%q,"endTime":"2024-01-10T17:00"}`, pid, wid))
	require.Equal(t, http.StatusOK, code, entry)
	assert.Equal(t, "completed", entry["status"])
	assert.Equal(t, 9.0, entry["totalHours"])

	code, _ = postJSON(t, h, http.MethodPut, "/proyectos/"+pid+"/finalize", `{"finalizedDate":"2024-01-15"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = postJSON(t, h, http.MethodPut, "/proyectos/"+pid+"/finalize", `{"finalizedDate":"2024-01-20"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, p := postJSON(t, h, http.MethodGet, "/proyectos/"+pid, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-01-15", p["finalized"])
	assert.Equal(t, false, p["active"])

	code, _ = postJSON(t, h, http.MethodGet, "/diary/project/"+"99999999-9999-9999-9999-999999999999", "")
	assert.Equal(t, http.StatusNotFound, code)
}
