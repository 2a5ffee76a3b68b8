package prenomina

import (
	"strconv"
	"time"

	"prenomina-service/internal/domain"
)

// Derived day-count columns added by the enricher.
const (
	colDiasFechaDocumento = "dias_fecha_documento"
	colDiasVencimiento    = "dias_vencimiento"
)

// enrichMetrics appends the day-count columns to a ledger: for each row,
// reference date minus the respective date, in whole days. Positive means
// the date lies in the past relative to the reference; negative values are
// preserved. Date cells are read back from their dd-mm-yyyy text form.
// A missing source column is skipped rather than treated as an error.
func enrichMetrics(t *domain.Table, fechaReferencia time.Time) *domain.Table {
	type metric struct {
		srcIdx int
		name   string
	}
	var metrics []metric
	if idx := t.ColumnIndex(colFechaDocumento); idx >= 0 {
		metrics = append(metrics, metric{srcIdx: idx, name: colDiasFechaDocumento})
	}
	if idx := t.ColumnIndex(colVencimientoNeto); idx >= 0 {
		metrics = append(metrics, metric{srcIdx: idx, name: colDiasVencimiento})
	}
	if len(metrics) == 0 {
		return t
	}

	out := &domain.Table{Columns: append([]string(nil), t.Columns...)}
	for _, m := range metrics {
		out.Columns = append(out.Columns, m.name)
	}

	for _, row := range t.Rows {
		enriched := append([]string(nil), row...)
		for _, m := range metrics {
			cell := ""
			if d, err := parseFecha(row[m.srcIdx]); err == nil {
				cell = strconv.Itoa(daysBetween(fechaReferencia, d))
			}
			enriched = append(enriched, cell)
		}
		out.Rows = append(out.Rows, enriched)
	}
	return out
}
