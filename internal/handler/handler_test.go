package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"unitflow/internal/bucket"
	"unitflow/internal/model"
	"unitflow/internal/selection"
	"unitflow/internal/service"
	"unitflow/internal/store"
	"unitflow/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	st, err := store.New(db)
	require.NoError(t, err)

	buckets := bucket.New(nil)
	logbook := service.NewLogbook(st, buckets)
	selector := service.NewSelector(selection.NewMachine(), st, buckets)

	logH := NewLogHandler(logbook, selector)
	selH := NewSelectionHandler(selector)
	expH := NewExportHandler(logbook, selector)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", logH.Health)
	api.GET("/view", logH.View)
	api.GET("/author", logH.Author)
	api.POST("/logs", logH.Create)
	api.POST("/logs/purge", logH.Purge)
	api.POST("/selection/enter", selH.Enter)
	api.POST("/selection/exit", selH.Exit)
	api.POST("/selection/toggle", selH.Toggle)
	api.GET("/selection", selH.State)
	api.GET("/selection/table", expH.Table)
	api.GET("/table", expH.BucketTable)
	api.GET("/export.csv", expH.CSV)
	api.GET("/export.xlsx", expH.XLSX)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createEntry(t *testing.T, r *gin.Engine, body string) model.NewEntryResponse {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/logs", body)
	require.Equal(t, http.StatusOK, w.Code)
	var out model.NewEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func getView(t *testing.T, r *gin.Engine) view.Model {
	t.Helper()
	w := do(t, r, http.MethodGet, "/api/view", "")
	require.Equal(t, http.StatusOK, w.Code)
	var vm view.Model
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vm))
	return vm
}

func TestCreateAndView(t *testing.T) {
	r := newTestRouter(t)

	out := createEntry(t, r, `{"author":"Dana","notes":"restocked gloves","qty":"3"}`)
	assert.False(t, out.PHIWarn)
	assert.Equal(t, "Replenishment", out.Record.Type)
	assert.Equal(t, "Low", out.Record.Severity)

	vm := getView(t, r)
	assert.Equal(t, "1 entry", vm.Today.CountLabel)
	require.Len(t, vm.Today.Rows, 1)
	assert.Equal(t, "restocked gloves", vm.Today.Rows[0].Notes)
}

func TestCreateFlagsPHI(t *testing.T) {
	r := newTestRouter(t)
	out := createEntry(t, r, `{"notes":"DOB 01/02/1990"}`)
	assert.True(t, out.PHIWarn)
}

func TestAuthorPersistsAcrossEntries(t *testing.T) {
	r := newTestRouter(t)
	createEntry(t, r, `{"author":"Dana"}`)

	w := do(t, r, http.MethodGet, "/api/author", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"author":"Dana"}`, w.Body.String())
}

func TestPurgeRequiresConfirmation(t *testing.T) {
	r := newTestRouter(t)
	createEntry(t, r, `{"notes":"one"}`)

	w := do(t, r, http.MethodPost, "/api/logs/purge", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "1 entry", getView(t, r).Today.CountLabel)

	w = do(t, r, http.MethodPost, "/api/logs/purge", `{"confirm":true}`)
	assert.Equal(t, http.StatusOK, w.Code)

	vm := getView(t, r)
	assert.Equal(t, "0 entries", vm.Today.CountLabel)
	assert.Equal(t, "No entries yet today.", vm.Today.EmptyText)
}

func TestSelectionFlow(t *testing.T) {
	r := newTestRouter(t)
	rec := createEntry(t, r, `{"notes":"one"}`).Record

	// toggling while idle is rejected
	w := do(t, r, http.MethodPost, "/api/selection/toggle",
		`{"id":"`+rec.ID+`","checked":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	var tg model.SelectionToggleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tg))
	assert.False(t, tg.Accepted)

	w = do(t, r, http.MethodPost, "/api/selection/enter", `{"scope":"today"}`)
	require.Equal(t, http.StatusOK, w.Code)

	vm := getView(t, r)
	assert.True(t, vm.SelectMode)
	assert.False(t, vm.ActionBar.Visible)

	w = do(t, r, http.MethodPost, "/api/selection/toggle",
		`{"id":"`+rec.ID+`","checked":true}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tg))
	assert.True(t, tg.Accepted)
	assert.Equal(t, 1, tg.Count)

	vm = getView(t, r)
	assert.True(t, vm.ActionBar.Visible)
	assert.Equal(t, "1 selected", vm.ActionBar.Label)
	assert.True(t, vm.Today.Rows[0].Checked)

	w = do(t, r, http.MethodPost, "/api/selection/exit", "")
	require.Equal(t, http.StatusOK, w.Code)
	vm = getView(t, r)
	assert.False(t, vm.SelectMode)
	assert.False(t, vm.ActionBar.Visible)
}

func TestSelectionEnterBadScope(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/selection/enter", `{"scope":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurgeClearsSelection(t *testing.T) {
	r := newTestRouter(t)
	rec := createEntry(t, r, `{"notes":"one"}`).Record
	do(t, r, http.MethodPost, "/api/selection/enter", `{"scope":"today"}`)
	do(t, r, http.MethodPost, "/api/selection/toggle", `{"id":"`+rec.ID+`","checked":true}`)

	do(t, r, http.MethodPost, "/api/logs/purge", `{"confirm":true}`)

	w := do(t, r, http.MethodGet, "/api/selection", "")
	require.Equal(t, http.StatusOK, w.Code)
	var state struct {
		Active bool `json:"active"`
		Count  int  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.False(t, state.Active)
	assert.Zero(t, state.Count)
}

func TestExportCSVAll(t *testing.T) {
	r := newTestRouter(t)
	createEntry(t, r, `{"notes":"a\nb","qty":"3"}`)

	w := do(t, r, http.MethodGet, "/api/export.csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "unitflow_logs_")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"timestamp","author","shift","unit","type","severity","qty","notes"`, lines[0])
	assert.Contains(t, lines[1], `"a b"`)
	assert.Contains(t, lines[1], `"3"`)
}

func TestExportSelectedEmptyIsNoOp(t *testing.T) {
	r := newTestRouter(t)
	createEntry(t, r, `{"notes":"one"}`)

	w := do(t, r, http.MethodGet, "/api/export.csv?selected=1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/selection/table", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSelectedTableDocument(t *testing.T) {
	r := newTestRouter(t)
	rec := createEntry(t, r, `{"unit":"4 West","notes":"cart check"}`).Record
	do(t, r, http.MethodPost, "/api/selection/enter", `{"scope":"today"}`)
	do(t, r, http.MethodPost, "/api/selection/toggle", `{"id":"`+rec.ID+`","checked":true}`)

	w := do(t, r, http.MethodGet, "/api/selection/table", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "cart check")
	assert.Contains(t, w.Body.String(), "today")
}

func TestBucketTableDocument(t *testing.T) {
	r := newTestRouter(t)
	createEntry(t, r, `{"unit":"4 West","notes":"bucket print"}`)

	w := do(t, r, http.MethodGet, "/api/table?scope=today", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "bucket print")
	assert.Contains(t, w.Body.String(), "all entries, today")

	// scope defaults to today
	w = do(t, r, http.MethodGet, "/api/table", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "all entries, today")

	w = do(t, r, http.MethodGet, "/api/table?scope=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBucketTableEmptyBucketStillRenders(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/table?scope=week", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "all entries, this week")
	assert.NotContains(t, w.Body.String(), "<td>")
}

func TestCreateAcceptsNumericQty(t *testing.T) {
	r := newTestRouter(t)

	out := createEntry(t, r, `{"qty":3,"notes":"numeric qty"}`)
	assert.Equal(t, "3", out.Record.Qty)

	out = createEntry(t, r, `{"qty":"2.50"}`)
	assert.Equal(t, "2.50", out.Record.Qty)

	w := do(t, r, http.MethodPost, "/api/logs", `{"qty":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
