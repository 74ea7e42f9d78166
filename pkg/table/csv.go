package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// LoadCSV reads a delimited file into a Table. Files are decoded as UTF-8;
// when the bytes are not valid UTF-8 the loader falls back to Big5 (the
// superset commonly labelled cp950), which covers legacy exports from
// Traditional Chinese systems. Ragged rows are tolerated: short rows are
// padded with empty cells and long rows truncated, each with a warning.
func LoadCSV(path string, logger *zap.Logger) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		logger.Info("file is not valid UTF-8, retrying with Big5 (cp950)",
			zap.String("path", path))
		decoded, _, derr := transform.Bytes(traditionalchinese.Big5.NewDecoder(), data)
		if derr != nil {
			return nil, fmt.Errorf("failed to decode %s as UTF-8 or Big5: %w", path, derr)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows handled below
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s has no header row", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse header of %s: %w", path, err)
	}

	width := len(header)
	var rows [][]string
	for lineNo := 2; ; lineNo++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s line %d: %w", path, lineNo, err)
		}
		switch {
		case len(record) < width:
			logger.Warn("row has fewer fields than header, padding",
				zap.String("path", path),
				zap.Int("line", lineNo),
				zap.Int("fields", len(record)))
			padded := make([]string, width)
			copy(padded, record)
			record = padded
		case len(record) > width:
			logger.Warn("row has more fields than header, truncating",
				zap.String("path", path),
				zap.Int("line", lineNo),
				zap.Int("fields", len(record)))
			record = record[:width]
		}
		rows = append(rows, record)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(name, header, rows), nil
}
