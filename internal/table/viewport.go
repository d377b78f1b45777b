package table

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownViewport = errors.New("unknown viewport")

// Breakpoint - порог ширины экрана. None означает "без ограничения".
type Breakpoint int

const (
	None Breakpoint = iota
	SM
	MD
	LG
	XL
)

var breakpointNames = [...]string{"xs", "sm", "md", "lg", "xl"}

func (b Breakpoint) String() string {
	if b < None || b > XL {
		return fmt.Sprintf("Breakpoint(%d)", int(b))
	}
	return breakpointNames[b]
}

// Минимальная ширина в пикселях для каждого порога.
const (
	WidthSM = 600
	WidthMD = 900
	WidthLG = 1200
	WidthXL = 1536
)

// Viewport holds the "is at least" flags for each breakpoint.
type Viewport struct {
	SM, MD, LG, XL bool
}

// ViewportForWidth classifies a width in pixels. The result is always monotonic.
func ViewportForWidth(px int) Viewport {
	return Viewport{
		SM: px >= WidthSM,
		MD: px >= WidthMD,
		LG: px >= WidthLG,
		XL: px >= WidthXL,
	}
}

// ViewportAt returns the narrowest viewport that is at least b.
func ViewportAt(b Breakpoint) Viewport {
	return Viewport{
		SM: b >= SM,
		MD: b >= MD,
		LG: b >= LG,
		XL: b >= XL,
	}
}

func ParseViewport(s string) (Viewport, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range breakpointNames {
		if s == name {
			return ViewportAt(Breakpoint(i)), nil
		}
	}
	return Viewport{}, fmt.Errorf("%w %q", ErrUnknownViewport, s)
}

// AtLeast reports whether the viewport is at least b. Every viewport is at least None.
func (v Viewport) AtLeast(b Breakpoint) bool {
	switch b {
	case None:
		return true
	case SM:
		return v.SM
	case MD:
		return v.MD
	case LG:
		return v.LG
	case XL:
		return v.XL
	}
	return false
}

// Breakpoint returns the widest breakpoint the viewport reaches.
func (v Viewport) Breakpoint() Breakpoint {
	switch {
	case v.XL:
		return XL
	case v.LG:
		return LG
	case v.MD:
		return MD
	case v.SM:
		return SM
	}
	return None
}
