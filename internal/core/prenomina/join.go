package prenomina

import (
	"strconv"

	"prenomina-service/internal/domain"
)

// creditorSet extracts the distinct account ids from the retained treasury
// payments, preserving first-seen order (payments arrive sorted ascending
// by amount, so the most negative payment decides an account's position).
func creditorSet(pagos []domain.TreasuryPayment) []int64 {
	seen := make(map[int64]bool, len(pagos))
	var cuentas []int64
	for _, p := range pagos {
		if seen[p.Cuenta] {
			continue
		}
		seen[p.Cuenta] = true
		cuentas = append(cuentas, p.Cuenta)
	}
	return cuentas
}

// joinLedger restricts a ledger to rows whose cuenta belongs to the creditor
// set. Both sides compare as integers; ledger cells hold the canonical
// decimal form written by the loader.
func joinLedger(t *domain.Table, cuentas []int64) *domain.Table {
	members := make(map[string]bool, len(cuentas))
	for _, c := range cuentas {
		members[strconv.FormatInt(c, 10)] = true
	}

	idx := t.ColumnIndex(colCuenta)
	out := &domain.Table{Columns: t.Columns}
	if idx < 0 {
		return out
	}
	for _, row := range t.Rows {
		if members[row[idx]] {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
