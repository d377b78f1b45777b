package table

const (
	DefaultEmptyText     = "데이터가 없습니다."
	DefaultSkeletonRows  = 5
	narrowestColumnCount = 2
)

// Visible returns the columns to draw for vp, in their original order.
//
// Columns whose MinBreakpoint the viewport does not reach are dropped first. Below sm only
// the first two remaining columns plus the remaining AlwaysShow columns are kept.
func Visible[T any](columns []Column[T], vp Viewport) []Column[T] {
	fit := make([]Column[T], 0, len(columns))
	for _, c := range columns {
		if vp.AtLeast(c.MinBreakpoint) {
			fit = append(fit, c)
		}
	}
	if vp.SM {
		return fit
	}

	out := make([]Column[T], 0, narrowestColumnCount)
	for i, c := range fit {
		if i < narrowestColumnCount || c.AlwaysShow {
			out = append(out, c)
		}
	}
	return out
}

type Header struct {
	ID     string `json:"id"`
	Header string `json:"header"`
	Align  Align  `json:"align"`
}

// View is what a renderer needs to draw one table page.
type View struct {
	Breakpoint Breakpoint
	Headers    []Header
	Rows       [][]string
	Empty      bool
	EmptyText  string
}

// Render applies Visible and fills the cells of rows.
func Render[T any](columns []Column[T], rows []T, vp Viewport, emptyText string) View {
	if emptyText == "" {
		emptyText = DefaultEmptyText
	}
	cols := Visible(columns, vp)

	v := View{
		Breakpoint: vp.Breakpoint(),
		Headers:    make([]Header, len(cols)),
		Rows:       make([][]string, 0, len(rows)),
		Empty:      len(rows) == 0,
		EmptyText:  emptyText,
	}
	for i, c := range cols {
		v.Headers[i] = Header{ID: c.ID, Header: c.Header, Align: c.Alignment()}
	}
	for i, row := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = c.Display(row, i)
		}
		v.Rows = append(v.Rows, cells)
	}
	return v
}

// Skeleton returns n placeholder rows shaped like the visible columns, for loading states.
func Skeleton[T any](columns []Column[T], vp Viewport, n int) [][]string {
	if n <= 0 {
		n = DefaultSkeletonRows
	}
	width := len(Visible(columns, vp))
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = make([]string, width)
	}
	return rows
}
