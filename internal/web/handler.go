package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/internal/export"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"github.com/glekoz/rvdesk/internal/service"
	"github.com/glekoz/rvdesk/internal/table"
	"github.com/glekoz/rvdesk/internal/views"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

var (
	errBadBody       = errors.New("malformed request body")
	errResetDisabled = fmt.Errorf("%w: reset is disabled", service.ErrNotFound)
)

type ServiceAPI interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)

	ListNotices(ctx context.Context, p query.Params[models.NoticeTarget]) (query.Page[models.Notice], error)
	GetNotice(ctx context.Context, id int) (models.Notice, error)
	CreateNotice(ctx context.Context, in service.NoticeInput) (models.Notice, error)
	IncreaseViews(ctx context.Context, id int) (models.Notice, bool, error)

	ListEquipment(ctx context.Context, p query.Params[models.EquipmentTarget]) (query.Page[models.Equipment], error)
	CreateEquipment(ctx context.Context, in service.EquipmentInput) (models.Equipment, error)
	UpdateEquipment(ctx context.Context, id int, patch service.EquipmentPatch) (models.Equipment, bool, error)
	UpdateEquipmentStatus(ctx context.Context, id int, status models.EquipmentStatus) (models.Equipment, bool, error)

	ListParts(ctx context.Context, p query.Params[models.PartTarget]) (query.Page[models.Part], error)
	CreatePart(ctx context.Context, in service.PartInput) (models.Part, error)
	UpdatePartQty(ctx context.Context, id, used int, total *int) (models.Part, bool, error)

	ListInspectionLogs(ctx context.Context, p query.Params[models.InspectionTarget]) (query.Page[models.InspectionLog], error)
	CreateInspectionLog(ctx context.Context, in service.InspectionInput) (models.InspectionLog, error)

	ListOperationLogs(ctx context.Context, p query.Params[models.OperationTarget]) (query.Page[models.OperationLog], error)
	CreateOperationLog(ctx context.Context, in service.OperationInput) (models.OperationLog, error)

	ListImportFailures(ctx context.Context, p query.Params[models.ImportFailureTarget]) (query.Page[models.ImportFailure], error)

	ExportRows(ctx context.Context, entity models.Entity, text, target string) (views.Grid, error)
	Reset(ctx context.Context)
}

type Handler struct {
	svc        ServiceAPI
	exporter   *export.Exporter
	logger     *slog.Logger
	allowReset bool
}

type Option func(*Handler)

func WithExporter(e *export.Exporter) Option {
	return func(h *Handler) { h.exporter = e }
}

// WithReset открывает POST /api/v1/admin/reset.
func WithReset(allow bool) Option {
	return func(h *Handler) { h.allowReset = allow }
}

func NewHandler(svc ServiceAPI, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{svc: svc, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	if h.exporter == nil {
		h.exporter = export.New(nil)
	}
	return h
}

// listParams переводит query-параметры в параметры запроса к коллекции.
// page и pageSize по умолчанию 1 и 10, проверка диапазона остаётся за query.
func listParams[K comparable](p api.ListParams, parse func(string) (K, error)) (query.Params[K], error) {
	out := query.Params[K]{Page: defaultPage, PageSize: defaultPageSize}
	if p.Page != nil {
		out.Page = *p.Page
	}
	if p.PageSize != nil {
		out.PageSize = *p.PageSize
	}
	if p.Q != nil {
		out.Text = *p.Q
	}
	var target string
	if p.Target != nil {
		target = *p.Target
	}
	k, err := parse(target)
	if err != nil {
		return query.Params[K]{}, err
	}
	out.Target = k
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s", errBadBody, err.Error())
	}
	return nil
}

func notFound(entity models.Entity, id int) error {
	return fmt.Errorf("%s %d: %w", entity, id, service.ErrNotFound)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *api.InvalidParamFormatError
	switch {
	case errors.Is(err, query.ErrInvalidArgument),
		errors.Is(err, models.ErrUnknownTarget),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, table.ErrUnknownViewport),
		errors.Is(err, errBadBody),
		errors.As(err, &paramErr):
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, models.ErrUnknownEntity):
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: err.Error()})

	default:
		h.logger.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// GetDashboard реализует интерфейс api.ServerInterface.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboard(d))
}

// ResetStore возвращает все коллекции к начальным данным. Без WithReset(true) маршрута как бы нет.
func (h *Handler) ResetStore(w http.ResponseWriter, r *http.Request) {
	if !h.allowReset {
		h.handleError(w, r, errResetDisabled)
		return
	}
	h.svc.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
