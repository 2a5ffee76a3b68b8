package prenomina

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"prenomina-service/internal/domain"
)

// Alternate spellings of the administrative columns the ledger loader
// prunes; some extracts carry these headers instead.
var workbookDropColumns = []string{
	"no_documento",
	"numero_de_documento",
	"nro_documento",
	"icono_part_abiertas_comp",
	"cta_contrapartida",
	"doc_compensacion",
	"nombre_de_usuario",
}

// buildWorkbook partitions the ledger by account and emits one sheet per
// creditor, labeled with the decimal account id, rows in source order.
// Accounts with no matching ledger rows are skipped entirely. The result is
// the finished .xlsx as an in-memory byte buffer.
func buildWorkbook(ledger *domain.Table, cuentas []int64) ([]byte, error) {
	t := ledger.DropColumns(workbookDropColumns...)
	idx := t.ColumnIndex(colCuenta)
	if idx < 0 {
		return nil, fmt.Errorf("el libro no puede generarse sin la columna cuenta")
	}

	f := excelize.NewFile()
	defer f.Close()
	const defaultSheet = "Sheet1"

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}

	sheets := 0
	for _, cuenta := range cuentas {
		label := strconv.FormatInt(cuenta, 10)

		var rows [][]string
		for _, row := range t.Rows {
			if row[idx] == label {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}

		if _, err := f.NewSheet(label); err != nil {
			return nil, fmt.Errorf("error al crear la hoja %s: %w", label, err)
		}
		if err := f.SetSheetRow(label, "A1", &header); err != nil {
			return nil, fmt.Errorf("error al escribir el encabezado de la hoja %s: %w", label, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, err
			}
			cells := make([]interface{}, len(row))
			for j, v := range row {
				cells[j] = v
			}
			if err := f.SetSheetRow(label, cell, &cells); err != nil {
				return nil, fmt.Errorf("error al escribir la hoja %s: %w", label, err)
			}
		}
		sheets++
	}

	if sheets > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error al serializar el libro: %w", err)
	}
	return buffer.Bytes(), nil
}
