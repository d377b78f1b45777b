package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/internal/fixtures"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"github.com/glekoz/rvdesk/internal/service"
	"github.com/glekoz/rvdesk/internal/views"
	"github.com/glekoz/rvdesk/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock service ---

type mockService struct {
	dashboard             func(ctx context.Context) (models.Dashboard, error)
	listNotices           func(ctx context.Context, p query.Params[models.NoticeTarget]) (query.Page[models.Notice], error)
	getNotice             func(ctx context.Context, id int) (models.Notice, error)
	createNotice          func(ctx context.Context, in service.NoticeInput) (models.Notice, error)
	increaseViews         func(ctx context.Context, id int) (models.Notice, bool, error)
	listEquipment         func(ctx context.Context, p query.Params[models.EquipmentTarget]) (query.Page[models.Equipment], error)
	createEquipment       func(ctx context.Context, in service.EquipmentInput) (models.Equipment, error)
	updateEquipment       func(ctx context.Context, id int, patch service.EquipmentPatch) (models.Equipment, bool, error)
	updateEquipmentStatus func(ctx context.Context, id int, status models.EquipmentStatus) (models.Equipment, bool, error)
	listParts             func(ctx context.Context, p query.Params[models.PartTarget]) (query.Page[models.Part], error)
	createPart            func(ctx context.Context, in service.PartInput) (models.Part, error)
	updatePartQty         func(ctx context.Context, id, used int, total *int) (models.Part, bool, error)
	listInspectionLogs    func(ctx context.Context, p query.Params[models.InspectionTarget]) (query.Page[models.InspectionLog], error)
	createInspectionLog   func(ctx context.Context, in service.InspectionInput) (models.InspectionLog, error)
	listOperationLogs     func(ctx context.Context, p query.Params[models.OperationTarget]) (query.Page[models.OperationLog], error)
	createOperationLog    func(ctx context.Context, in service.OperationInput) (models.OperationLog, error)
	listImportFailures    func(ctx context.Context, p query.Params[models.ImportFailureTarget]) (query.Page[models.ImportFailure], error)
	exportRows            func(ctx context.Context, entity models.Entity, text, target string) (views.Grid, error)
	reset                 func(ctx context.Context)
}

func (m *mockService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	return m.dashboard(ctx)
}
func (m *mockService) ListNotices(ctx context.Context, p query.Params[models.NoticeTarget]) (query.Page[models.Notice], error) {
	return m.listNotices(ctx, p)
}
func (m *mockService) GetNotice(ctx context.Context, id int) (models.Notice, error) {
	return m.getNotice(ctx, id)
}
func (m *mockService) CreateNotice(ctx context.Context, in service.NoticeInput) (models.Notice, error) {
	return m.createNotice(ctx, in)
}
func (m *mockService) IncreaseViews(ctx context.Context, id int) (models.Notice, bool, error) {
	return m.increaseViews(ctx, id)
}
func (m *mockService) ListEquipment(ctx context.Context, p query.Params[models.EquipmentTarget]) (query.Page[models.Equipment], error) {
	return m.listEquipment(ctx, p)
}
func (m *mockService) CreateEquipment(ctx context.Context, in service.EquipmentInput) (models.Equipment, error) {
	return m.createEquipment(ctx, in)
}
func (m *mockService) UpdateEquipment(ctx context.Context, id int, patch service.EquipmentPatch) (models.Equipment, bool, error) {
	return m.updateEquipment(ctx, id, patch)
}
func (m *mockService) UpdateEquipmentStatus(ctx context.Context, id int, status models.EquipmentStatus) (models.Equipment, bool, error) {
	return m.updateEquipmentStatus(ctx, id, status)
}
func (m *mockService) ListParts(ctx context.Context, p query.Params[models.PartTarget]) (query.Page[models.Part], error) {
	return m.listParts(ctx, p)
}
func (m *mockService) CreatePart(ctx context.Context, in service.PartInput) (models.Part, error) {
	return m.createPart(ctx, in)
}
func (m *mockService) UpdatePartQty(ctx context.Context, id, used int, total *int) (models.Part, bool, error) {
	return m.updatePartQty(ctx, id, used, total)
}
func (m *mockService) ListInspectionLogs(ctx context.Context, p query.Params[models.InspectionTarget]) (query.Page[models.InspectionLog], error) {
	return m.listInspectionLogs(ctx, p)
}
func (m *mockService) CreateInspectionLog(ctx context.Context, in service.InspectionInput) (models.InspectionLog, error) {
	return m.createInspectionLog(ctx, in)
}
func (m *mockService) ListOperationLogs(ctx context.Context, p query.Params[models.OperationTarget]) (query.Page[models.OperationLog], error) {
	return m.listOperationLogs(ctx, p)
}
func (m *mockService) CreateOperationLog(ctx context.Context, in service.OperationInput) (models.OperationLog, error) {
	return m.createOperationLog(ctx, in)
}
func (m *mockService) ListImportFailures(ctx context.Context, p query.Params[models.ImportFailureTarget]) (query.Page[models.ImportFailure], error) {
	return m.listImportFailures(ctx, p)
}
func (m *mockService) ExportRows(ctx context.Context, entity models.Entity, text, target string) (views.Grid, error) {
	return m.exportRows(ctx, entity, text, target)
}
func (m *mockService) Reset(ctx context.Context) {
	m.reset(ctx)
}

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// newServer собирает готовый http.Handler для тестов
func newServer(svc web.ServiceAPI, opts ...web.Option) http.Handler {
	h := web.NewHandler(svc, testLogger, opts...)
	return web.NewServer(h, nil)
}

func doRequest(t *testing.T, srv http.Handler, method, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func doJSON(t *testing.T, srv http.Handler, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Error
}

// =================================================================
// GET /api/v1/notices
// =================================================================

func TestListNotices_200(t *testing.T) {
	svc := &mockService{
		listNotices: func(_ context.Context, p query.Params[models.NoticeTarget]) (query.Page[models.Notice], error) {
			assert.Equal(t, query.Params[models.NoticeTarget]{Page: 1, PageSize: 10}, p)
			return query.Page[models.Notice]{
				Items:    []models.Notice{{ID: 3, Title: "출항 안내", Author: "관리자", Category: models.CategoryAnnouncement, Views: 7}},
				Page:     1,
				PageSize: 10,
				Total:    1,
			}, nil
		},
	}

	rr := doRequest(t, newServer(svc), http.MethodGet, "/api/v1/notices")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp api.NoticePage
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Id)
	assert.Equal(t, "공지", resp.Items[0].Category)
	assert.Equal(t, 7, resp.Items[0].Views)
}

func TestListNotices_QueryParams(t *testing.T) {
	var captured query.Params[models.NoticeTarget]
	svc := &mockService{
		listNotices: func(_ context.Context, p query.Params[models.NoticeTarget]) (query.Page[models.Notice], error) {
			captured = p
			return query.Page[models.Notice]{Page: p.Page, PageSize: p.PageSize}, nil
		},
	}

	doRequest(t, newServer(svc), http.MethodGet, "/api/v1/notices?page=2&pageSize=5&q=%EC%95%88%EB%82%B4&target=title")

	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 5, captured.PageSize)
	assert.Equal(t, "안내", captured.Text)
	assert.Equal(t, models.NoticeTitle, captured.Target)
}

func TestListNotices_EmptyItemsIsArray(t *testing.T) {
	svc := &mockService{
		listNotices: func(_ context.Context, p query.Params[models.NoticeTarget]) (query.Page[models.Notice], error) {
			return query.Page[models.Notice]{Page: 1, PageSize: 10}, nil
		},
	}

	rr := doRequest(t, newServer(svc), http.MethodGet, "/api/v1/notices")

	assert.Contains(t, rr.Body.String(), `"items":[]`)
}

func TestListNotices_UnknownTarget_400(t *testing.T) {
	rr := doRequest(t, newServer(&mockService{}), http.MethodGet, "/api/v1/notices?target=views")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr), "unknown search target")
}

func TestListNotices_InvalidPage_400(t *testing.T) {
	svc := &mockService{
		listNotices: func(_ context.Context, _ query.Params[models.NoticeTarget]) (query.Page[models.Notice], error) {
			return query.Page[models.Notice]{}, query.ErrInvalidPage
		},
	}

	rr := doRequest(t, newServer(svc), http.MethodGet, "/api/v1/notices?page=0")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListNotices_MalformedPage_400(t *testing.T) {
	rr := doRequest(t, newServer(&mockService{}), http.MethodGet, "/api/v1/notices?page=abc")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr), "page")
}

func TestListNotices_500(t *testing.T) {
	svc := &mockService{
		listNotices: func(_ context.Context, _ query.Params[models.NoticeTarget]) (query.Page[models.Notice], error) {
			return query.Page[models.Notice]{}, errors.New("boom")
		},
	}

	rr := doRequest(t, newServer(svc), http.MethodGet, "/api/v1/notices")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", decodeError(t, rr))
}

// =================================================================
// notices by id
// =================================================================

func TestGetNotice_404(t *testing.T) {
	svc := &mockService{
		getNotice: func(_ context.Context, id int) (models.Notice, error) {
			assert.Equal(t, 42, id)
			return models.Notice{}, service.ErrNotFound
		},
	}

	rr := doRequest(t, newServer(svc), http.MethodGet, "/api/v1/notices/42")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetNotice_BadID_400(t *testing.T) {
	rr := doRequest(t, newServer(&mockService{}), http.MethodGet, "/api/v1/notices/abc")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestIncreaseNoticeViews(t *testing.T) {
	svc := &mockService{
		increaseViews: func(_ context.Context, id int) (models.Notice, bool, error) {
			if id != 1 {
				return models.Notice{}, false, nil
			}
			return models.Notice{ID: 1, Views: 11}, true, nil
		},
	}
	srv := newServer(svc)

	rr := doRequest(t, srv, http.MethodPost, "/api/v1/notices/1/views")
	require.Equal(t, http.StatusOK, rr.Code)
	var n api.Notice
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&n))
	assert.Equal(t, 11, n.Views)

	rr = doRequest(t, srv, http.MethodPost, "/api/v1/notices/9/views")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateNotice_201(t *testing.T) {
	svc := &mockService{
		createNotice: func(_ context.Context, in service.NoticeInput) (models.Notice, error) {
			assert.Equal(t, "새 공지", in.Title)
			assert.Equal(t, models.CategoryReport, in.Category)
			return models.Notice{ID: 6, Title: in.Title, Category: in.Category}, nil
		},
	}

	rr := doJSON(t, newServer(svc), http.MethodPost, "/api/v1/notices", `{"title":"새 공지","category":"보고서"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var n api.Notice
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&n))
	assert.Equal(t, 6, n.Id)
}

func TestCreateNotice_Validation_400(t *testing.T) {
	svc := &mockService{
		createNotice: func(_ context.Context, _ service.NoticeInput) (models.Notice, error) {
			return models.Notice{}, service.ErrValidation
		},
	}

	rr := doJSON(t, newServer(svc), http.MethodPost, "/api/v1/notices", `{"title":""}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateNotice_BadBody_400(t *testing.T) {
	srv := newServer(&mockService{})

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/notices", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, srv, http.MethodPost, "/api/v1/notices", `{"title":"x","views":3}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// =================================================================
// equipment and parts updates
// =================================================================

func TestUpdateEquipmentStatus(t *testing.T) {
	svc := &mockService{
		updateEquipmentStatus: func(_ context.Context, id int, status models.EquipmentStatus) (models.Equipment, bool, error) {
			assert.Equal(t, models.StatusInactive, status)
			if id == 404 {
				return models.Equipment{}, false, nil
			}
			return models.Equipment{ID: id, Status: status}, true, nil
		},
	}
	srv := newServer(svc)

	rr := doJSON(t, srv, http.MethodPut, "/api/v1/equipment/2/status", `{"status":"inactive"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var e api.Equipment
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&e))
	assert.Equal(t, "inactive", e.Status)

	rr = doJSON(t, srv, http.MethodPut, "/api/v1/equipment/404/status", `{"status":"inactive"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateEquipment_Patch(t *testing.T) {
	svc := &mockService{
		updateEquipment: func(_ context.Context, id int, patch service.EquipmentPatch) (models.Equipment, bool, error) {
			require.NotNil(t, patch.Usage)
			assert.Equal(t, 55.0, *patch.Usage)
			assert.Nil(t, patch.Name)
			require.NotNil(t, patch.Status)
			assert.Equal(t, models.StatusActive, *patch.Status)
			return models.Equipment{ID: id, Usage: 55, Status: models.StatusActive}, true, nil
		},
	}

	rr := doJSON(t, newServer(svc), http.MethodPatch, "/api/v1/equipment/3", `{"usage":55,"status":"active"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdatePartQty(t *testing.T) {
	svc := &mockService{
		updatePartQty: func(_ context.Context, id, used int, total *int) (models.Part, bool, error) {
			assert.Equal(t, 7, used)
			assert.Nil(t, total)
			return models.Part{ID: id, TotalQty: 10, UsedQty: used, RemainQty: 3}, true, nil
		},
	}

	rr := doJSON(t, newServer(svc), http.MethodPatch, "/api/v1/parts/1/qty", `{"usedQty":7}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var p api.Part
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&p))
	assert.Equal(t, 3, p.RemainQty)
	assert.Equal(t, string(models.StockLow), p.Stock)
}

// =================================================================
// GET /api/v1/tables/{entity}
// =================================================================

func equipmentPage() *mockService {
	return &mockService{
		listEquipment: func(_ context.Context, p query.Params[models.EquipmentTarget]) (query.Page[models.Equipment], error) {
			return query.Page[models.Equipment]{
				Items:    []models.Equipment{{ID: 1, Name: "CTD 센서", Status: models.StatusActive, Usage: 40, Remaining: "120h", LastCheck: "2025-10-01"}},
				Page:     p.Page,
				PageSize: p.PageSize,
				Total:    1,
			}, nil
		},
	}
}

func TestGetTable_NarrowKeepsAlwaysShow(t *testing.T) {
	rr := doRequest(t, newServer(equipmentPage()), http.MethodGet, "/api/v1/tables/equipment?width=375")

	require.Equal(t, http.StatusOK, rr.Code)
	var tv api.TableView
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&tv))
	assert.Equal(t, "equipment", tv.Entity)
	assert.Equal(t, "xs", tv.Breakpoint)

	ids := make([]string, 0, len(tv.Headers))
	for _, h := range tv.Headers {
		ids = append(ids, h.Id)
	}
	assert.Contains(t, ids, "status")
	assert.LessOrEqual(t, len(ids), 3)
	require.Len(t, tv.Rows, 1)
	assert.Len(t, tv.Rows[0], len(tv.Headers))
}

func TestGetTable_WideShowsMore(t *testing.T) {
	srv := newServer(equipmentPage())

	narrow := doRequest(t, srv, http.MethodGet, "/api/v1/tables/equipment?viewport=xs")
	wide := doRequest(t, srv, http.MethodGet, "/api/v1/tables/equipment")

	var n, w api.TableView
	require.NoError(t, json.NewDecoder(narrow.Body).Decode(&n))
	require.NoError(t, json.NewDecoder(wide.Body).Decode(&w))
	assert.Equal(t, "xl", w.Breakpoint)
	assert.Greater(t, len(w.Headers), len(n.Headers))
}

func TestGetTable_Errors(t *testing.T) {
	srv := newServer(equipmentPage())

	rr := doRequest(t, srv, http.MethodGet, "/api/v1/tables/ships")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, srv, http.MethodGet, "/api/v1/tables/equipment?viewport=huge")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, srv, http.MethodGet, "/api/v1/tables/equipment?width=wide")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// =================================================================
// GET /api/v1/exports/{entity}
// =================================================================

func TestExportEntity_TSV(t *testing.T) {
	svc := &mockService{
		exportRows: func(_ context.Context, entity models.Entity, text, target string) (views.Grid, error) {
			assert.Equal(t, models.EntityParts, entity)
			assert.Equal(t, "oring", text)
			assert.Equal(t, "name", target)
			return views.Grid{Headers: []string{"번호", "부속품명"}, Rows: [][]string{{"1", "oring"}}}, nil
		},
	}

	rr := doRequest(t, newServer(svc), http.MethodGet, "/api/v1/exports/parts?q=oring&target=name")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/tab-separated-values")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "번호\t부속품명\n1\toring\n", rr.Body.String())
}

func TestExportEntity_UnknownFormat_400(t *testing.T) {
	rr := doRequest(t, newServer(&mockService{}), http.MethodGet, "/api/v1/exports/parts?format=xlsx")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// =================================================================
// POST /api/v1/admin/reset
// =================================================================

func TestResetStore(t *testing.T) {
	called := false
	svc := &mockService{reset: func(context.Context) { called = true }}

	rr := doRequest(t, newServer(svc), http.MethodPost, "/api/v1/admin/reset")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, called)

	rr = doRequest(t, newServer(svc, web.WithReset(true)), http.MethodPost, "/api/v1/admin/reset")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, called)
}

// =================================================================
// server
// =================================================================

func TestRequestID(t *testing.T) {
	srv := newServer(&mockService{})

	rr := doRequest(t, srv, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(web.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(web.RequestIDHeader, "abc")
	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	assert.Equal(t, "abc", rr.Header().Get(web.RequestIDHeader))
}

func TestMethodNotAllowed(t *testing.T) {
	rr := doRequest(t, newServer(&mockService{}), http.MethodDelete, "/api/v1/notices")

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

// ===== end to end over the real service =====

func TestRealService_CreateThenList(t *testing.T) {
	svc := service.New(fixtures.Default(), testLogger, service.WithDelays(service.Delays{}))
	srv := httptest.NewServer(newServer(svc))
	defer srv.Close()

	body := bytes.NewBufferString(`{"name":"O-ring","partNo":"OR-9","equipment":"CTD 센서","totalQty":20,"usedQty":2}`)
	resp, err := http.Post(srv.URL+"/api/v1/parts", "application/json", body)
	require.NoError(t, err)
	created, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(created))

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err = client.Get(srv.URL + "/api/v1/parts?pageSize=1&q=or-9&target=partNo")
	require.NoError(t, err)
	defer resp.Body.Close()

	var page api.PartPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "OR-9", page.Items[0].PartNo)
	assert.Equal(t, 18, page.Items[0].RemainQty)
}
