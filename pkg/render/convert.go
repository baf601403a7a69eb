package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/kinship/pkg/errors"
)

// ConverterTool is the external binary that rasterizes SVG.
const ConverterTool = "rsvg-convert"

const installHint = "install librsvg (brew install librsvg, apt install librsvg2-bin)"

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return Convert(ctx, svg, FormatPDF, 1)
}

// ToPNG converts an SVG document to PNG. A scale of 2 doubles the pixel
// density; non-positive scales render at 1x.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return Convert(ctx, svg, FormatPNG, scale)
}

// Convert turns an SVG document into format. SVG input is returned as is.
// A missing converter binary is reported as UNSUPPORTED so callers can fall
// back to SVG output.
func Convert(ctx context.Context, svg []byte, format Format, scale float64) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPDF, FormatPNG:
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot convert SVG to %q", format)
	}

	tool, err := exec.LookPath(ConverterTool)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s output needs %s: %s", format, ConverterTool, installHint)
	}

	args := []string{"-f", string(format)}
	if format == FormatPNG && scale > 0 && scale != 1 {
		args = append(args, "-z", strconv.FormatFloat(scale, 'f', 2, 64))
	}

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "%s conversion cancelled", format)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", ConverterTool, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
