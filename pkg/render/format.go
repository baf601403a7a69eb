package render

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/kinship/pkg/errors"
)

// Format is an output format for a rendered diagram.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
	FormatDOT Format = "dot"
)

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPDF, FormatPNG, FormatDOT:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported output format %q (want svg, pdf, png or dot)", s)
}

// FormatFromPath infers a format from a file extension, defaulting to SVG.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatSVG
}
