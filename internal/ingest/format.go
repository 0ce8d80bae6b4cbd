// Package ingest reads bulk measurement uploads, validates them and
// aggregates them into per-material, per-stage means.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a supported upload file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// ErrUnsupportedFormat is returned for any file that is not CSV or Excel.
var ErrUnsupportedFormat = errors.New("unsupported file format, please use CSV or Excel files")

// DetectFormat picks the format from a file name's extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch Format(ext) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatXLS:
		return FormatXLS, nil
	default:
		if ext == "" {
			return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, filename)
		}
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}
}
