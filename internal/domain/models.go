// package domain/models.go
package domain

// Table is a rectangular spreadsheet view: one header row plus data rows.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the table has no data rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// DropColumns returns a copy of the table without the named columns.
// Names missing from the table are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	var keep []int
	out := &Table{}
	for i, c := range t.Columns {
		if !drop[c] {
			keep = append(keep, i)
			out.Columns = append(out.Columns, c)
		}
	}
	if len(keep) == len(t.Columns) {
		out.Rows = t.Rows
		return out
	}

	out.Rows = make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		projected := make([]string, 0, len(keep))
		for _, i := range keep {
			projected = append(projected, row[i])
		}
		out.Rows = append(out.Rows, projected)
	}
	return out
}

// TreasuryPayment is one retained outbound payment from the tesorería report.
type TreasuryPayment struct {
	Cuenta  int64   `json:"cuenta"`
	Importe float64 `json:"importe_pagado_en_ml"`
}

// ProcessResult is the output of one full pipeline run.
type ProcessResult struct {
	// Preview holds the enriched ledger restricted to treasury creditors,
	// ready for tabular display.
	Preview *Table `json:"preview"`
	// Cuentas is the ordered creditor set: distinct treasury accounts,
	// most negative payment first.
	Cuentas []int64 `json:"cuentas"`
	// Pagos are the retained treasury payments, sorted ascending by amount.
	Pagos []TreasuryPayment `json:"pagos"`
}
