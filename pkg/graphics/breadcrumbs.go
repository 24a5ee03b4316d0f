package graphics

import (
	"strings"

	"github.com/dnrgps/dnrgps/pkg/errors"
)

// Breadcrumbs selects how previous GPS positions are shown.
type Breadcrumbs int

const (
	// None shows only the current position.
	None Breadcrumbs = iota
	// SmallSymbols leaves shrunken markers at previous positions.
	SmallSymbols
	// Lines joins previous positions with a track line.
	Lines
)

func (b Breadcrumbs) String() string {
	switch b {
	case None:
		return "none"
	case SmallSymbols:
		return "symbols"
	case Lines:
		return "lines"
	}
	return "unknown"
}

// ParseBreadcrumbs parses a mode name: none, symbols (or smallsymbols), lines.
func ParseBreadcrumbs(s string) (Breadcrumbs, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "symbols", "smallsymbols", "small-symbols":
		return SmallSymbols, nil
	case "lines":
		return Lines, nil
	}
	return None, errors.New(errors.ErrCodeInvalidInput, "unknown breadcrumb mode %q (want none, symbols or lines)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Breadcrumbs) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Breadcrumbs) UnmarshalText(text []byte) error {
	v, err := ParseBreadcrumbs(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
