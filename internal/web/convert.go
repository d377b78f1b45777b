package web

import (
	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/table"
)

// mapSlice никогда не возвращает nil, чтобы в JSON был [] а не null.
func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func toNotice(n models.Notice) api.Notice {
	return api.Notice{
		Id:       n.ID,
		Title:    n.Title,
		Author:   n.Author,
		Date:     n.Date,
		Views:    n.Views,
		Category: string(n.Category),
		Content:  n.Content,
	}
}

func toEquipment(e models.Equipment) api.Equipment {
	return api.Equipment{
		Id:        e.ID,
		Name:      e.Name,
		Status:    string(e.Status),
		Usage:     e.Usage,
		Remaining: e.Remaining,
		LastCheck: e.LastCheck,
	}
}

func toPart(p models.Part) api.Part {
	return api.Part{
		Id:            p.ID,
		Name:          p.Name,
		PartNo:        p.PartNo,
		Equipment:     p.Equipment,
		Type:          string(p.Type),
		UnitPrice:     p.UnitPrice,
		TotalQty:      p.TotalQty,
		UsedQty:       p.UsedQty,
		RemainQty:     p.RemainQty,
		FirstShipDate: p.FirstShipDate,
		Stock:         string(p.Stock()),
	}
}

func toInspectionLog(l models.InspectionLog) api.InspectionLog {
	return api.InspectionLog{
		Id:           l.ID,
		Equipment:    l.Equipment,
		StartDate:    l.StartDate,
		Institution:  l.Institution,
		User:         l.User,
		UseStartDate: l.UseStartDate,
		UseEndDate:   l.UseEndDate,
		Registrant:   l.Registrant,
		Purpose:      l.Purpose,
	}
}

func toOperationLog(l models.OperationLog) api.OperationLog {
	return api.OperationLog{
		Id:         l.ID,
		Equipment:  l.Equipment,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
		UseTime:    l.UseTime,
		Activity:   l.Activity,
		ActualUser: l.ActualUser,
	}
}

func toImportFailure(f models.ImportFailure) api.ImportFailure {
	return api.ImportFailure{
		Id:        f.ID,
		Filename:  f.Filename,
		Error:     f.Error,
		CreatedAt: f.CreatedAt,
	}
}

func toDashboard(d models.Dashboard) api.Dashboard {
	return api.Dashboard{
		Equipment: api.StatusCount{
			Total:    d.Equipment.Total,
			Active:   d.Equipment.Active,
			Standby:  d.Equipment.Standby,
			Inactive: d.Equipment.Inactive,
		},
		LowStockParts:   d.LowStockParts,
		RecentEquipment: mapSlice(d.RecentEquipment, toEquipment),
		RecentParts:     mapSlice(d.RecentParts, toPart),
		RecentNotices:   mapSlice(d.RecentNotices, toNotice),
	}
}

func toTableHeader(h table.Header) api.TableHeader {
	return api.TableHeader{Id: h.ID, Header: h.Header, Align: string(h.Align)}
}
