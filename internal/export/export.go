// Package export writes table grids as TSV or PDF files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/glekoz/rvdesk/internal/views"
	"github.com/rs/xid"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatTSV Format = "tsv"
	FormatPDF Format = "pdf"
)

// ParseFormat treats an empty string as TSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatTSV):
		return FormatTSV, nil
	case string(FormatPDF):
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/tab-separated-values; charset=utf-8"
}

// Filename returns a unique download name like "parts-<xid>.tsv".
func (f Format) Filename(base string) string {
	return base + "-" + xid.New().String() + "." + string(f)
}

type Exporter struct {
	pdf *PDFConfig
}

func New(pdf *PDFConfig) *Exporter {
	return &Exporter{pdf: pdf}
}

func (e *Exporter) Write(w io.Writer, f Format, title string, g views.Grid) error {
	switch f {
	case FormatTSV:
		return WriteTSV(w, g)
	case FormatPDF:
		return WritePDF(w, e.pdf, title, g)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteTSV writes the header line followed by one line per row.
func WriteTSV(w io.Writer, g views.Grid) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(g.Headers); err != nil {
		return fmt.Errorf("write tsv header: %w", err)
	}
	if err := cw.WriteAll(g.Rows); err != nil {
		return fmt.Errorf("write tsv rows: %w", err)
	}
	return nil
}
