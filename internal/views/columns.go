// Package views holds what the dashboard screens share between the HTTP API and the
// terminal client: column layouts per entity and the optimistic page state.
package views

import (
	"strconv"
	"time"

	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"github.com/glekoz/rvdesk/internal/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var won = message.NewPrinter(language.Korean)

func idColumn[T query.Record]() table.Column[T] {
	return table.Column[T]{
		ID:     "id",
		Header: "번호",
		Value:  func(row T, _ int) string { return strconv.Itoa(row.RecordID()) },
		Align:  table.AlignRight,
	}
}

func NoticeColumns() []table.Column[models.Notice] {
	return []table.Column[models.Notice]{
		idColumn[models.Notice](),
		{
			ID:     "title",
			Header: "제목",
			Render: func(n models.Notice, _ int) string {
				return "[" + string(n.Category) + "] " + n.Title
			},
			MaxWidth: 48,
		},
		{ID: "author", Header: "작성자", MinBreakpoint: table.SM},
		{ID: "date", Header: "등록일", MinBreakpoint: table.MD},
		{ID: "views", Header: "조회수", MinBreakpoint: table.MD, Align: table.AlignRight},
	}
}

func EquipmentColumns() []table.Column[models.Equipment] {
	return []table.Column[models.Equipment]{
		idColumn[models.Equipment](),
		{ID: "name", Header: "장비명"},
		{ID: "status", Header: "장비상태", AlwaysShow: true, Align: table.AlignCenter},
		{
			ID:            "usage",
			Header:        "사용률",
			MinBreakpoint: table.MD,
			Value:         func(e models.Equipment, _ int) string { return strconv.Itoa(e.Usage) + "%" },
			Align:         table.AlignRight,
		},
		{ID: "remaining", Header: "잔여", MinBreakpoint: table.SM},
		{ID: "lastCheck", Header: "등록일자", MinBreakpoint: table.LG},
	}
}

func PartColumns() []table.Column[models.Part] {
	return []table.Column[models.Part]{
		idColumn[models.Part](),
		{ID: "name", Header: "부속품명", MaxWidth: 32},
		{ID: "partNo", Header: "파트번호", MinBreakpoint: table.MD},
		{ID: "equipment", Header: "장비명", MinBreakpoint: table.SM},
		{ID: "type", Header: "유형", MinBreakpoint: table.LG},
		{
			ID:            "unitPrice",
			Header:        "단가",
			MinBreakpoint: table.XL,
			Value:         func(p models.Part, _ int) string { return won.Sprintf("%d", p.UnitPrice) },
			Align:         table.AlignRight,
		},
		{ID: "totalQty", Header: "총수량", MinBreakpoint: table.LG, Align: table.AlignRight},
		{ID: "usedQty", Header: "사용", MinBreakpoint: table.LG, Align: table.AlignRight},
		{ID: "remainQty", Header: "잔여", MinBreakpoint: table.SM, Align: table.AlignRight},
		{
			ID:         "stock",
			Header:     "재고",
			AlwaysShow: true,
			Render:     func(p models.Part, _ int) string { return string(p.Stock()) },
			Align:      table.AlignCenter,
		},
		{ID: "firstShipDate", Header: "최초선적일", MinBreakpoint: table.XL},
	}
}

func InspectionColumns() []table.Column[models.InspectionLog] {
	return []table.Column[models.InspectionLog]{
		idColumn[models.InspectionLog](),
		{ID: "equipment", Header: "장비명"},
		{ID: "startDate", Header: "연구시작일", MinBreakpoint: table.MD},
		{ID: "institution", Header: "기관", MinBreakpoint: table.SM},
		{ID: "user", Header: "사용자", MinBreakpoint: table.SM},
		{ID: "useStartDate", Header: "사용시작일", MinBreakpoint: table.LG},
		{ID: "useEndDate", Header: "사용종료일", MinBreakpoint: table.LG},
		{ID: "registrant", Header: "등록자", MinBreakpoint: table.XL},
		{ID: "purpose", Header: "목적", MinBreakpoint: table.MD, MaxWidth: 30},
	}
}

func OperationColumns() []table.Column[models.OperationLog] {
	return []table.Column[models.OperationLog]{
		idColumn[models.OperationLog](),
		{ID: "equipment", Header: "장비명"},
		{ID: "startDate", Header: "연구시작일", MinBreakpoint: table.MD},
		{ID: "endDate", Header: "연구종료일", MinBreakpoint: table.MD},
		{ID: "useTime", Header: "시간", MinBreakpoint: table.SM, Align: table.AlignRight},
		{ID: "activity", Header: "활동 내역", MinBreakpoint: table.SM, MaxWidth: 30},
		{ID: "actualUser", Header: "실사용자", MinBreakpoint: table.LG},
	}
}

func ImportFailureColumns() []table.Column[models.ImportFailure] {
	return []table.Column[models.ImportFailure]{
		idColumn[models.ImportFailure](),
		{ID: "filename", Header: "파일"},
		{ID: "error", Header: "오류", MinBreakpoint: table.SM, MaxWidth: 60},
		{
			ID:            "createdAt",
			Header:        "시각",
			MinBreakpoint: table.MD,
			Value: func(f models.ImportFailure, _ int) string {
				return f.CreatedAt.Format(time.DateTime)
			},
		},
	}
}

// Grid is a fully rendered table: headers and the full cell text of every row.
type Grid struct {
	Headers []string
	Rows    [][]string
}

// Flatten renders every column regardless of viewport, without truncation.
func Flatten[T any](columns []table.Column[T], rows []T) Grid {
	g := Grid{Headers: make([]string, len(columns)), Rows: make([][]string, len(rows))}
	for i, c := range columns {
		g.Headers[i] = c.Header
	}
	for r, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = c.Content(row, r)
		}
		g.Rows[r] = cells
	}
	return g
}
