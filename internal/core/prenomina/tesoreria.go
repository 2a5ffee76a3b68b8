package prenomina

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"prenomina-service/internal/domain"
)

const (
	colDocumentoPago = "n_documento_de_pago"
	colImportePagado = "importe_pagado_en_ml"

	// proveedorHeader is rewritten to "cuenta" before normalization; the
	// match is exact, as in the source extract.
	proveedorHeader = "Proveedor"

	// Only payments at or below this amount qualify as large outbound
	// payments (signed: negative means money out).
	importeUmbral = -10_000_000
)

var tesoreriaRequired = []requiredColumn{
	{Raw: "Proveedor", Normalized: colCuenta},
	{Raw: "Nº documento de pago", Normalized: colDocumentoPago},
	{Raw: "Importe pagado en ML", Normalized: colImportePagado},
}

// transformTesoreria turns the raw tesorería table into the retained payment
// list: Proveedor renamed to cuenta, headers normalized, required columns
// checked, rows without a payment document dropped, amounts filtered to the
// large-payment threshold and sorted ascending (most negative first),
// projected down to account and amount. Account coercion failures are a
// data-quality condition: they are logged and the rows skipped.
func (s *service) transformTesoreria(raw *domain.Table) ([]domain.TreasuryPayment, error) {
	renamed := make([]string, len(raw.Columns))
	for i, c := range raw.Columns {
		if c == proveedorHeader {
			c = colCuenta
		}
		renamed[i] = c
	}

	columns, collision := normalizeColumns(renamed)
	if len(collision) > 0 {
		return nil, &SchemaError{File: FileTesoreria, Collision: collision}
	}
	t := &domain.Table{Columns: columns, Rows: raw.Rows}

	if err := validateSchema(FileTesoreria, t, tesoreriaRequired); err != nil {
		return nil, err
	}

	cuentaIdx := t.ColumnIndex(colCuenta)
	docIdx := t.ColumnIndex(colDocumentoPago)
	importeIdx := t.ColumnIndex(colImportePagado)

	var pagos []domain.TreasuryPayment
	coercionFailures := 0
	for _, row := range t.Rows {
		if strings.TrimSpace(row[docIdx]) == "" {
			continue
		}
		importe, err := parseImporte(row[importeIdx])
		if err != nil || importe > importeUmbral {
			continue
		}
		cuenta, err := parseCuenta(row[cuentaIdx])
		if err != nil {
			coercionFailures++
			continue
		}
		pagos = append(pagos, domain.TreasuryPayment{Cuenta: cuenta, Importe: importe})
	}
	if coercionFailures > 0 {
		s.logger.Warn("no se pudo convertir la columna cuenta de tesorería a entero",
			zap.Int("filas_descartadas", coercionFailures))
	}

	sort.SliceStable(pagos, func(i, j int) bool { return pagos[i].Importe < pagos[j].Importe })
	return pagos, nil
}
