package web

import (
	"net/http"

	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/service"
)

// ===== notices =====

func (h *Handler) ListNotices(w http.ResponseWriter, r *http.Request, params api.ListParams) {
	p, err := listParams(params, models.ParseNoticeTarget)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.svc.ListNotices(r.Context(), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NoticePage{
		Items:    mapSlice(page.Items, toNotice),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	})
}

func (h *Handler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	var body api.NewNotice
	if err := decodeJSON(r, &body); err != nil {
		h.handleError(w, r, err)
		return
	}
	n, err := h.svc.CreateNotice(r.Context(), service.NoticeInput{
		Title:    body.Title,
		Author:   body.Author,
		Date:     body.Date,
		Category: models.NoticeCategory(body.Category),
		Content:  body.Content,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNotice(n))
}

func (h *Handler) GetNotice(w http.ResponseWriter, r *http.Request, id int) {
	n, err := h.svc.GetNotice(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotice(n))
}

func (h *Handler) IncreaseNoticeViews(w http.ResponseWriter, r *http.Request, id int) {
	n, ok, err := h.svc.IncreaseViews(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.handleError(w, r, notFound(models.EntityNotices, id))
		return
	}
	writeJSON(w, http.StatusOK, toNotice(n))
}

// ===== equipment =====

func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request, params api.ListParams) {
	p, err := listParams(params, models.ParseEquipmentTarget)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.svc.ListEquipment(r.Context(), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.EquipmentPage{
		Items:    mapSlice(page.Items, toEquipment),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	})
}

func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var body api.NewEquipment
	if err := decodeJSON(r, &body); err != nil {
		h.handleError(w, r, err)
		return
	}
	e, err := h.svc.CreateEquipment(r.Context(), service.EquipmentInput{
		Name:      body.Name,
		Status:    models.EquipmentStatus(body.Status),
		Usage:     body.Usage,
		Remaining: body.Remaining,
		LastCheck: body.LastCheck,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEquipment(e))
}

func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request, id int) {
	var body api.EquipmentPatch
	if err := decodeJSON(r, &body); err != nil {
		h.handleError(w, r, err)
		return
	}
	patch := service.EquipmentPatch{
		Name:      body.Name,
		Usage:     body.Usage,
		Remaining: body.Remaining,
		LastCheck: body.LastCheck,
	}
	if body.Status != nil {
		s := models.EquipmentStatus(*body.Status)
		patch.Status = &s
	}

	e, ok, err := h.svc.UpdateEquipment(r.Context(), id, patch)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.handleError(w, r, notFound(models.EntityEquipment, id))
		return
	}
	writeJSON(w, http.StatusOK, toEquipment(e))
}

func (h *Handler) UpdateEquipmentStatus(w http.ResponseWriter, r *http.Request, id int) {
	var body api.EquipmentStatusUpdate
	if err := decodeJSON(r, &body); err != nil {
		h.handleError(w, r, err)
		return
	}
	e, ok, err := h.svc.UpdateEquipmentStatus(r.Context(), id, models.EquipmentStatus(body.Status))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.handleError(w, r, notFound(models.EntityEquipment, id))
		return
	}
	writeJSON(w, http.StatusOK, toEquipment(e))
}

// ===== parts =====

func (h *Handler) ListParts(w http.ResponseWriter, r *http.Request, params api.ListParams) {
	p, err := listParams(params, models.ParsePartTarget)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.svc.ListParts(r.Context(), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.PartPage{
		Items:    mapSlice(page.Items, toPart),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	})
}

func (h *Handler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var body api.NewPart
	if err := decodeJSON(r, &body); err != nil {
		h.handleError(w, r, err)
		return
	}
	p, err := h.svc.CreatePart(r.Context(), service.PartInput{
		Name:          body.Name,
		PartNo:        body.PartNo,
		Equipment:     body.Equipment,
		Type:          models.PartType(body.Type),
		UnitPrice:     body.UnitPrice,
		TotalQty:      body.TotalQty,
		UsedQty:       body.UsedQty,
		RemainQty:     body.RemainQty,
		FirstShipDate: body.FirstShipDate,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPart(p))
}

func (h *Handler) UpdatePartQty(w http.ResponseWriter, r *http.Request, id int) {
	var body api.PartQtyUpdate
	if err := decodeJSON(r, &body); err != nil {
		h.handleError(w, r, err)
		return
	}
	p, ok, err := h.svc.UpdatePartQty(r.Context(), id, body.UsedQty, body.TotalQty)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.handleError(w, r, notFound(models.EntityParts, id))
		return
	}
	writeJSON(w, http.StatusOK, toPart(p))
}

// ===== logs =====

func (h *Handler) ListInspectionLogs(w http.ResponseWriter, r *http.Request, params api.ListParams) {
	p, err := listParams(params, models.ParseInspectionTarget)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.svc.ListInspectionLogs(r.Context(), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.InspectionLogPage{
		Items:    mapSlice(page.Items, toInspectionLog),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	})
}

func (h *Handler) CreateInspectionLog(w http.ResponseWriter, r *http.Request) {
	var body api.NewInspectionLog
	if err := decodeJSON(r, &body); err != nil {
		h.handleError(w, r, err)
		return
	}
	l, err := h.svc.CreateInspectionLog(r.Context(), service.InspectionInput{
		Equipment:    body.Equipment,
		StartDate:    body.StartDate,
		Institution:  body.Institution,
		User:         body.User,
		UseStartDate: body.UseStartDate,
		UseEndDate:   body.UseEndDate,
		Registrant:   body.Registrant,
		Purpose:      body.Purpose,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInspectionLog(l))
}

func (h *Handler) ListOperationLogs(w http.ResponseWriter, r *http.Request, params api.ListParams) {
	p, err := listParams(params, models.ParseOperationTarget)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.svc.ListOperationLogs(r.Context(), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.OperationLogPage{
		Items:    mapSlice(page.Items, toOperationLog),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	})
}

func (h *Handler) CreateOperationLog(w http.ResponseWriter, r *http.Request) {
	var body api.NewOperationLog
	if err := decodeJSON(r, &body); err != nil {
		h.handleError(w, r, err)
		return
	}
	l, err := h.svc.CreateOperationLog(r.Context(), service.OperationInput{
		Equipment:  body.Equipment,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
		UseTime:    body.UseTime,
		Activity:   body.Activity,
		ActualUser: body.ActualUser,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOperationLog(l))
}

// ListImportFailures реализует интерфейс api.ServerInterface.
// Возвращает файлы, которые не удалось импортировать.
func (h *Handler) ListImportFailures(w http.ResponseWriter, r *http.Request, params api.ListParams) {
	p, err := listParams(params, models.ParseImportFailureTarget)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.svc.ListImportFailures(r.Context(), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ImportFailurePage{
		Items:    mapSlice(page.Items, toImportFailure),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	})
}
