package prenomina

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"prenomina-service/internal/domain"
)

// readWorkbook parses the first sheet of an uploaded spreadsheet into a raw
// table. It accepts .xlsx via excelize and falls back to the legacy .xls
// reader. The first row is taken as the header; data rows are padded or
// truncated to the header width.
func readWorkbook(data []byte) (*domain.Table, error) {
	rows, err := readRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("la planilla no contiene filas")
	}
	return rectangularize(rows), nil
}

func readRows(data []byte) ([][]string, error) {
	reader := bytes.NewReader(data)

	// intenta xlsx
	f, err := excelize.OpenReader(reader)
	if err == nil {
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("el archivo .xlsx no contiene hojas")
		}
		return f.GetRows(sheets[0])
	}

	// intenta xls
	reader.Seek(0, io.SeekStart)
	workbook, err := xls.OpenReader(reader)
	if err == nil {
		if len(workbook.GetSheets()) == 0 {
			return nil, fmt.Errorf("el archivo .xls no contiene hojas")
		}
		sheet, err := workbook.GetSheet(0)
		if err != nil {
			return nil, fmt.Errorf("error al obtener la hoja del archivo .xls: %w", err)
		}
		var allRows [][]string
		for _, row := range sheet.GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, cell.GetString())
			}
			allRows = append(allRows, cells)
		}
		return allRows, nil
	}

	return nil, fmt.Errorf("unsupported workbook file format")
}

func rectangularize(rows [][]string) *domain.Table {
	header := rows[0]
	width := len(header)

	t := &domain.Table{Columns: append([]string(nil), header...)}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		cells := make([]string, width)
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
