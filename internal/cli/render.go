package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/internal/table"
	"golang.org/x/term"
)

const (
	defaultColumns = 100
	// пикселей на одну колонку терминала, чтобы переиспользовать пороги экрана
	pxPerColumn = 10
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f87af"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
)

// terminalColumns returns the width of w when it is a terminal, defaultColumns otherwise.
func terminalColumns(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultColumns
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return defaultColumns
	}
	return cols
}

func widthPx(columns int) int {
	return columns * pxPerColumn
}

func alignOf(a string) lipgloss.Position {
	switch table.Align(a) {
	case table.AlignRight:
		return lipgloss.Right
	case table.AlignCenter:
		return lipgloss.Center
	}
	return lipgloss.Left
}

// renderGrid draws headers and rows with lipgloss. aligns may be shorter than headers.
func renderGrid(headers []string, aligns []string, rows [][]string) string {
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			s := cellStyle
			if col < len(aligns) {
				s = s.Align(alignOf(aligns[col]))
			}
			return s
		})
	return t.String()
}

func renderTableView(tv api.TableView) string {
	var b strings.Builder
	if tv.Empty {
		b.WriteString(mutedStyle.Render(tv.EmptyText))
		b.WriteString("\n")
		return b.String()
	}
	headers := make([]string, len(tv.Headers))
	aligns := make([]string, len(tv.Headers))
	for i, h := range tv.Headers {
		headers[i] = h.Header
		aligns[i] = h.Align
	}
	b.WriteString(renderGrid(headers, aligns, tv.Rows))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(pageFooter(tv.Page, tv.PageSize, tv.Total)))
	b.WriteString("\n")
	return b.String()
}

func renderView(v table.View) string {
	if v.Empty {
		return mutedStyle.Render(v.EmptyText) + "\n"
	}
	headers := make([]string, len(v.Headers))
	aligns := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		headers[i] = h.Header
		aligns[i] = string(h.Align)
	}
	return renderGrid(headers, aligns, v.Rows) + "\n"
}

func pageFooter(page, size, total int) string {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return fmt.Sprintf("%d / %d 페이지 · 전체 %d건", page, max(pages, 1), total)
}

func renderDashboard(d api.Dashboard) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("장비 현황"))
	b.WriteString("\n")
	b.WriteString(renderGrid(
		[]string{"전체", "사용중", "대기", "비활성", "재고 부족 부속"},
		[]string{"right", "right", "right", "right", "right"},
		[][]string{{
			fmt.Sprint(d.Equipment.Total),
			fmt.Sprint(d.Equipment.Active),
			fmt.Sprint(d.Equipment.Standby),
			fmt.Sprint(d.Equipment.Inactive),
			fmt.Sprint(d.LowStockParts),
		}},
	))
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("최근 장비"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(d.RecentEquipment))
	for _, e := range d.RecentEquipment {
		rows = append(rows, []string{e.Name, e.Status, fmt.Sprintf("%d%%", e.Usage)})
	}
	b.WriteString(renderGrid([]string{"장비명", "상태", "사용률"}, []string{"left", "center", "right"}, rows))
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("최근 부속품"))
	b.WriteString("\n")
	rows = rows[:0]
	for _, p := range d.RecentParts {
		rows = append(rows, []string{p.Name, p.Equipment, fmt.Sprint(p.RemainQty), p.Stock})
	}
	b.WriteString(renderGrid([]string{"부속품명", "장비", "잔여", "재고"}, []string{"left", "left", "right", "center"}, rows))
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("공지사항"))
	b.WriteString("\n")
	rows = rows[:0]
	for _, n := range d.RecentNotices {
		rows = append(rows, []string{n.Category, n.Title, n.Date})
	}
	b.WriteString(renderGrid([]string{"분류", "제목", "등록일"}, nil, rows))
	b.WriteString("\n")
	return b.String()
}

// FormatError renders err the way the commands print their own failures.
func FormatError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}
