package web

import (
	"bytes"
	"context"
	"mime"
	"net/http"
	"strconv"

	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/internal/export"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"github.com/glekoz/rvdesk/internal/table"
	"github.com/glekoz/rvdesk/internal/views"
)

// viewport берёт явный порог, затем ширину в пикселях. Без них таблица рисуется для широкого экрана.
func viewport(p api.GetTableParams) (table.Viewport, error) {
	switch {
	case p.Viewport != nil:
		return table.ParseViewport(*p.Viewport)
	case p.Width != nil:
		return table.ViewportForWidth(*p.Width), nil
	}
	return table.ViewportAt(table.XL), nil
}

func tableView[T query.Record, K comparable](
	ctx context.Context,
	params api.ListParams,
	parse func(string) (K, error),
	list func(context.Context, query.Params[K]) (query.Page[T], error),
	columns []table.Column[T],
	vp table.Viewport,
) (api.TableView, error) {
	p, err := listParams(params, parse)
	if err != nil {
		return api.TableView{}, err
	}
	page, err := list(ctx, p)
	if err != nil {
		return api.TableView{}, err
	}
	v := table.Render(columns, page.Items, vp, "")
	return api.TableView{
		Breakpoint: v.Breakpoint.String(),
		Headers:    mapSlice(v.Headers, toTableHeader),
		Rows:       v.Rows,
		Empty:      v.Empty,
		EmptyText:  v.EmptyText,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
	}, nil
}

// GetTable отдаёт страницу сущности уже разложенной по колонкам, видимым на данном экране.
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request, entity string, params api.GetTableParams) {
	e, err := models.ParseEntity(entity)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	vp, err := viewport(params)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	ctx := r.Context()
	var tv api.TableView
	switch e {
	case models.EntityNotices:
		tv, err = tableView(ctx, params.ListParams, models.ParseNoticeTarget, h.svc.ListNotices, views.NoticeColumns(), vp)
	case models.EntityEquipment:
		tv, err = tableView(ctx, params.ListParams, models.ParseEquipmentTarget, h.svc.ListEquipment, views.EquipmentColumns(), vp)
	case models.EntityParts:
		tv, err = tableView(ctx, params.ListParams, models.ParsePartTarget, h.svc.ListParts, views.PartColumns(), vp)
	case models.EntityInspections:
		tv, err = tableView(ctx, params.ListParams, models.ParseInspectionTarget, h.svc.ListInspectionLogs, views.InspectionColumns(), vp)
	case models.EntityOperations:
		tv, err = tableView(ctx, params.ListParams, models.ParseOperationTarget, h.svc.ListOperationLogs, views.OperationColumns(), vp)
	case models.EntityImportFailures:
		tv, err = tableView(ctx, params.ListParams, models.ParseImportFailureTarget, h.svc.ListImportFailures, views.ImportFailureColumns(), vp)
	default:
		err = models.ErrUnknownEntity
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	tv.Entity = string(e)
	writeJSON(w, http.StatusOK, tv)
}

// ExportEntity отдаёт файлом все записи, подходящие под поиск, со всеми колонками.
func (h *Handler) ExportEntity(w http.ResponseWriter, r *http.Request, entity string, params api.ExportEntityParams) {
	e, err := models.ParseEntity(entity)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	f, err := export.ParseFormat(deref(params.Format))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	grid, err := h.svc.ExportRows(r.Context(), e, deref(params.Q), deref(params.Target))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// собираем в буфер, чтобы при ошибке ещё можно было ответить JSON-ом
	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, f, string(e), grid); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename(string(e))}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.WarnContext(r.Context(), "write export", "error", err)
	}
}
