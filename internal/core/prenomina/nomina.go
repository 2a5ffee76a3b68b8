package prenomina

import (
	"strconv"

	"go.uber.org/zap"

	"prenomina-service/internal/domain"
)

// Column identifiers of the nómina extract, post-normalization.
const (
	colCuenta          = "cuenta"
	colFechaDocumento  = "fecha_de_documento"
	colVencimientoNeto = "vencimiento_neto"
	colBloqueoDePago   = "bloqueo_de_pago"
	colViaDePago       = "via_de_pago"
)

var nominaRequired = []requiredColumn{
	{Raw: "Cuenta", Normalized: colCuenta},
	{Raw: "Fecha de documento", Normalized: colFechaDocumento},
	{Raw: "Vencimiento neto", Normalized: colVencimientoNeto},
}

// Administrative columns stripped from the ledger when present.
var nominaDropColumns = []string{
	"icono_part_abiertas_comp",
	"cta_contrapartida",
	"n_documento",
	"asignacion",
	"simbolo_vencimiento_neto",
	"moneda_del_documento",
	"doc_compensacion",
	"nombre_del_usuario",
}

// Payment-block statuses that exclude a ledger row.
var bloqueosExcluidos = map[string]bool{"A": true, "R": true}

// viaDePagoCheque excludes rows paid by cheque.
const viaDePagoCheque = "C"

// transformNomina turns the raw nómina table into a validated ledger:
// headers normalized, required columns checked, cuenta coerced to an
// integer id, administrative columns pruned, blocked rows filtered out,
// and both date columns re-emitted as dd-mm-yyyy text. Rows with an
// unparseable cuenta or date are dropped, not reported.
func (s *service) transformNomina(raw *domain.Table) (*domain.Table, error) {
	columns, collision := normalizeColumns(raw.Columns)
	if len(collision) > 0 {
		return nil, &SchemaError{File: FileNomina, Collision: collision}
	}
	t := &domain.Table{Columns: columns, Rows: raw.Rows}

	if err := validateSchema(FileNomina, t, nominaRequired); err != nil {
		return nil, err
	}

	t = s.coerceCuentaNomina(t)
	t = t.DropColumns(nominaDropColumns...)
	t = s.filterBloqueos(t)
	t = s.formatFechas(t)
	return t, nil
}

func (s *service) coerceCuentaNomina(t *domain.Table) *domain.Table {
	idx := t.ColumnIndex(colCuenta)
	out := &domain.Table{Columns: t.Columns}
	dropped := 0
	for _, row := range t.Rows {
		n, err := parseCuenta(row[idx])
		if err != nil {
			dropped++
			continue
		}
		kept := append([]string(nil), row...)
		kept[idx] = strconv.FormatInt(n, 10)
		out.Rows = append(out.Rows, kept)
	}
	if dropped > 0 {
		s.logger.Debug("filas de nómina sin cuenta válida descartadas", zap.Int("filas", dropped))
	}
	return out
}

// filterBloqueos applies the payment-block rule: only rows whose block flag
// is not A/R and whose payment method is not cheque survive. Both columns
// must be present for the filter to run; afterwards both are dropped.
func (s *service) filterBloqueos(t *domain.Table) *domain.Table {
	bloqueoIdx := t.ColumnIndex(colBloqueoDePago)
	viaIdx := t.ColumnIndex(colViaDePago)
	if bloqueoIdx < 0 || viaIdx < 0 {
		return t
	}

	filtered := &domain.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if bloqueosExcluidos[row[bloqueoIdx]] || row[viaIdx] == viaDePagoCheque {
			continue
		}
		filtered.Rows = append(filtered.Rows, row)
	}
	return filtered.DropColumns(colBloqueoDePago, colViaDePago)
}

func (s *service) formatFechas(t *domain.Table) *domain.Table {
	fechaIdx := t.ColumnIndex(colFechaDocumento)
	vencIdx := t.ColumnIndex(colVencimientoNeto)

	out := &domain.Table{Columns: t.Columns}
	dropped := 0
	for _, row := range t.Rows {
		fecha, errF := parseFecha(row[fechaIdx])
		venc, errV := parseFecha(row[vencIdx])
		if errF != nil || errV != nil {
			dropped++
			continue
		}
		kept := append([]string(nil), row...)
		kept[fechaIdx] = fecha.Format(dateLayout)
		kept[vencIdx] = venc.Format(dateLayout)
		out.Rows = append(out.Rows, kept)
	}
	if dropped > 0 {
		s.logger.Debug("filas de nómina con fechas inválidas descartadas", zap.Int("filas", dropped))
	}
	return out
}
