package export

import (
	"fmt"
	"io"

	"github.com/glekoz/rvdesk/internal/views"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

const gridSize = 100

var (
	titleCell = &props.Cell{BackgroundColor: &props.BlackColor, BorderType: border.Left | border.Right}
	headCell  = &props.Cell{BackgroundColor: &props.WhiteColor, BorderType: border.Left | border.Right}
	darkCell  = &props.Cell{BackgroundColor: &props.Color{Red: 200, Green: 200, Blue: 200}, BorderType: border.Left | border.Right}
	lightCell = &props.Cell{BackgroundColor: &props.Color{Red: 230, Green: 230, Blue: 230}, BorderType: border.Left | border.Right}
)

// PDFConfig is built once and shared by all exports.
type PDFConfig struct {
	conf   *entity.Config
	family string
}

// NewPDFConfig loads fontFile under the name family. Hangul needs such a font; with an
// empty fontFile the built-in font is used.
func NewPDFConfig(fontFile, family string) (*PDFConfig, error) {
	b := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		WithPageNumber().
		WithPageSize(pagesize.A4).
		WithMaxGridSize(gridSize)

	if fontFile == "" {
		return &PDFConfig{conf: b.Build()}, nil
	}
	fs, err := repository.New().AddUTF8Font(family, fontstyle.Normal, fontFile).Load()
	if err != nil {
		return nil, fmt.Errorf("load pdf font: %w", err)
	}
	return &PDFConfig{conf: b.WithCustomFonts(fs).Build(), family: family}, nil
}

// widths splits the grid between n columns, the remainder goes to the last one.
func widths(n int) []int {
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = gridSize / n
	}
	out[n-1] += gridSize % n
	return out
}

func (c *PDFConfig) text(size float64, a align.Type) props.Text {
	return props.Text{
		Family: c.family,
		Size:   size,
		Style:  fontstyle.Normal,
		Align:  a,
		Top:    2,
		Left:   1,
		Right:  1,
	}
}

func WritePDF(w io.Writer, c *PDFConfig, title string, g views.Grid) error {
	if c == nil {
		var err error
		if c, err = NewPDFConfig("", ""); err != nil {
			return err
		}
	}
	m := maroto.New(c.conf)
	ws := widths(len(g.Headers))

	titleText := c.text(14, align.Center)
	titleText.Color = &props.WhiteColor
	m.AddRow(10, text.NewCol(gridSize, title, titleText).WithStyle(titleCell))

	if len(g.Headers) > 0 {
		hs := make([]core.Col, 0, len(g.Headers))
		for i, h := range g.Headers {
			hs = append(hs, text.NewCol(ws[i], h, c.text(10, align.Center)).WithStyle(headCell))
		}
		m.AddRows(row.New(9).Add(hs...))
	}

	for i, content := range g.Rows {
		cell := darkCell
		if i&1 == 1 {
			cell = lightCell
		}
		cs := make([]core.Col, 0, len(content))
		for j, v := range content {
			if j >= len(ws) {
				break
			}
			cs = append(cs, text.NewCol(ws[j], v, c.text(9, align.Left)).WithStyle(cell))
		}
		m.AddRows(row.New(8).Add(cs...))
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
