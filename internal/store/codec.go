package store

import (
	"fmt"
	"io"
	"strings"
)

// Supported store formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Codec reads and writes a whole table as rows of cells. The first row is the header.
type Codec interface {
	// Read returns every row of the file at path
	Read(path string) ([][]string, error)

	// Write encodes rows to w
	Write(w io.Writer, rows [][]string) error

	// Extension is the file extension used by the format
	Extension() string
}

// NewCodec returns the codec for a store format name
func NewCodec(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		return csvCodec{}, nil
	case FormatXLSX:
		return newXLSXCodec(""), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
