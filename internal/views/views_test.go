package views_test

import (
	"errors"
	"testing"
	"time"

	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"github.com/glekoz/rvdesk/internal/table"
	"github.com/glekoz/rvdesk/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerIDs(v table.View) []string {
	out := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		out[i] = h.ID
	}
	return out
}

// ===== columns =====

func TestPartColumns_NarrowKeepsStock(t *testing.T) {
	parts := []models.Part{{ID: 3, Name: "CTD 센서", RemainQty: 2}}

	v := table.Render(views.PartColumns(), parts, table.Viewport{}, "")

	assert.Equal(t, []string{"id", "name", "stock"}, headerIDs(v))
	assert.Equal(t, []string{"3", "CTD 센서", "재고 부족"}, v.Rows[0])
}

func TestEquipmentColumns_ByViewport(t *testing.T) {
	cols := views.EquipmentColumns()

	assert.Equal(t, []string{"id", "name", "status"},
		headerIDs(table.Render(cols, nil, table.Viewport{}, "")))
	assert.Equal(t, []string{"id", "name", "status", "usage", "remaining"},
		headerIDs(table.Render(cols, nil, table.ViewportAt(table.MD), "")))
	assert.Equal(t, []string{"id", "name", "status", "usage", "remaining", "lastCheck"},
		headerIDs(table.Render(cols, nil, table.ViewportAt(table.XL), "")))
}

func TestEquipmentColumns_Cells(t *testing.T) {
	e := models.Equipment{ID: 7, Name: "ADCP", Status: models.StatusStandby, Usage: 45, Remaining: "12h", LastCheck: "2025-10-01"}

	v := table.Render(views.EquipmentColumns(), []models.Equipment{e}, table.ViewportAt(table.XL), "")

	assert.Equal(t, []string{"7", "ADCP", "standby", "45%", "12h", "2025-10-01"}, v.Rows[0])
}

func TestNoticeColumns_TitleCarriesCategory(t *testing.T) {
	n := models.Notice{ID: 1, Title: "정기 점검", Category: models.CategoryAnnouncement}

	v := table.Render(views.NoticeColumns(), []models.Notice{n}, table.Viewport{}, "")

	assert.Equal(t, "[공지] 정기 점검", v.Rows[0][1])
}

func TestPartColumns_UnitPriceGrouping(t *testing.T) {
	g := views.Flatten(views.PartColumns(), []models.Part{{ID: 1, UnitPrice: 2800000}})

	require.Len(t, g.Rows, 1)
	assert.Contains(t, g.Rows[0], "2,800,000")
}

func TestFlatten_AllColumnsNoTruncation(t *testing.T) {
	long := "해양 관측 장비의 장기 운용 시험 및 교정 작업을 위한 사용 기록"
	logs := []models.InspectionLog{{ID: 4, Equipment: "CTD", Purpose: long}}

	g := views.Flatten(views.InspectionColumns(), logs)

	assert.Len(t, g.Headers, len(views.InspectionColumns()))
	assert.Equal(t, long, g.Rows[0][len(g.Rows[0])-1])
}

func TestImportFailureColumns_CreatedAt(t *testing.T) {
	f := models.ImportFailure{ID: 1, Filename: "a.tsv", Error: "bad header", CreatedAt: time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC)}

	g := views.Flatten(views.ImportFailureColumns(), []models.ImportFailure{f})

	assert.Equal(t, []string{"1", "a.tsv", "bad header", "2025-10-20 09:30:00"}, g.Rows[0])
}

// ===== optimistic page =====

func equipmentPage() *views.Page[models.Equipment] {
	return views.NewPage(query.Page[models.Equipment]{
		Items: []models.Equipment{
			{ID: 2, Name: "ADCP", Status: models.StatusActive},
			{ID: 1, Name: "CTD", Status: models.StatusStandby},
		},
		Page: 1, PageSize: 10, Total: 2,
	})
}

func setStatus(s models.EquipmentStatus) func(models.Equipment) models.Equipment {
	return func(e models.Equipment) models.Equipment {
		e.Status = s
		return e
	}
}

func TestPage_ApplyIsVisibleImmediately(t *testing.T) {
	p := equipmentPage()

	pd, ok := p.Apply(1, setStatus(models.StatusInactive))

	require.True(t, ok)
	assert.Equal(t, views.StatePending, pd.State())
	assert.Equal(t, models.StatusInactive, p.Snapshot().Items[1].Status)
	assert.Equal(t, models.StatusStandby, pd.Previous().Status)
}

func TestPending_Commit(t *testing.T) {
	p := equipmentPage()
	pd, _ := p.Apply(1, setStatus(models.StatusInactive))

	assert.Equal(t, views.StateCommitted, pd.Settle(nil))
	assert.Equal(t, models.StatusInactive, p.Snapshot().Items[1].Status)
}

func TestPending_Rollback(t *testing.T) {
	p := equipmentPage()
	pd, _ := p.Apply(1, setStatus(models.StatusInactive))

	assert.Equal(t, views.StateRolledBack, pd.Settle(errors.New("server said no")))
	assert.Equal(t, models.StatusStandby, p.Snapshot().Items[1].Status)
}

func TestPending_SettleTwice(t *testing.T) {
	p := equipmentPage()
	pd, _ := p.Apply(2, setStatus(models.StatusStandby))

	pd.Settle(nil)
	assert.Equal(t, views.StateCommitted, pd.Settle(errors.New("late failure")))
	assert.Equal(t, models.StatusStandby, p.Snapshot().Items[0].Status)
}

func TestPage_ApplyUnknownRow(t *testing.T) {
	p := equipmentPage()

	pd, ok := p.Apply(99, setStatus(models.StatusInactive))

	assert.False(t, ok)
	assert.Nil(t, pd)
}

func TestPage_SnapshotIsCopy(t *testing.T) {
	p := equipmentPage()

	snap := p.Snapshot()
	snap.Items[0].Name = "changed"

	assert.Equal(t, "ADCP", p.Snapshot().Items[0].Name)
	assert.Equal(t, 2, snap.Total)
}
