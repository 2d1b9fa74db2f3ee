// Package xlsxio reads spreadsheet exports into frames. Cell text goes through
// the same inference as CSV input, so both sources produce identical frames.
package xlsxio

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	"github.com/wdm0006/salesjanitor/pkg/io/csvio"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

// ErrNoSheet is returned when the workbook has no sheet to read.
var ErrNoSheet = errors.New("xlsxio: workbook has no sheets")

type ReaderOptions struct {
	// Sheet to read; empty means the first sheet of the workbook.
	Sheet      string
	SampleRows int
	KeepText   func(header string) bool
}

// ReadFile loads one sheet of the workbook at path. The first row is the header.
func ReadFile(path string, opt ReaderOptions) (*j.Frame, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", iox.ErrNoInput, path)
		}
		return nil, err
	}
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	rows, err := Rows(wb, opt.Sheet)
	if err != nil {
		return nil, err
	}
	r := csvio.NewRecordReader(rows, csvio.ReaderOptions{
		HasHeader:  true,
		SampleRows: opt.SampleRows,
		KeepText:   opt.KeepText,
	})
	return r.ReadFrame()
}

// Rows returns the cell text of sheet, or of the first sheet when sheet is
// empty. Trailing empty cells are omitted by excelize, so rows may be ragged.
func Rows(wb *excelize.File, sheet string) ([][]string, error) {
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheet
		}
		sheet = sheets[0]
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
