package prenomina

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayout is the textual form produced for ledger date columns.
const dateLayout = "02-01-2006"

// parseCuenta coerces an account cell to an integer id. Cells may carry the
// id as plain digits or as a spreadsheet float ("100", "100.0").
func parseCuenta(val string) (int64, error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, fmt.Errorf("cuenta vacía")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cuenta %q no es un entero", val)
	}
	n := int64(f)
	if float64(n) != f {
		return 0, fmt.Errorf("cuenta %q no es un entero", val)
	}
	return n, nil
}

// parseImporte reads a signed monetary amount, tolerating both latin
// ("−12.345.678,90") and anglo ("-12345678.90") digit grouping, currency
// symbols and parenthesized negatives.
func parseImporte(val string) (float64, error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, fmt.Errorf("importe vacío")
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimPrefix(strings.TrimSuffix(s, ")"), "(")
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
	}

	// la última aparición de . o , decide el separador decimal
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastDot > lastComma:
		s = strings.ReplaceAll(s, ",", "")
		// varios puntos, o "12.345" sin coma: agrupación de miles latina
		if parts := strings.Split(s, "."); len(parts[len(parts)-1]) == 3 && lastComma < 0 {
			s = strings.ReplaceAll(s, ".", "")
		} else if len(parts) > 2 {
			s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
		}
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("importe %q inválido", val)
	}
	if neg {
		f = -f
	}
	return f, nil
}

// fechaLayouts are the textual date forms accepted from spreadsheet cells,
// day-first forms preferred. excelize renders unformatted date cells with
// the "01-02-06" built-in style, hence its presence at the end.
var fechaLayouts = []string{
	dateLayout,
	"02/01/2006",
	"2006-01-02",
	"02.01.2006",
	"2/1/2006",
	"01-02-06",
	"1/2/06",
}

// parseFecha reads a date cell either as text in one of the accepted layouts
// or as a raw Excel serial number. The time component, if any, is discarded.
func parseFecha(val string) (time.Time, error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("fecha serial %q inválida: %w", val, err)
		}
		return truncateToDay(t), nil
	}
	for _, layout := range fechaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q inválida", val)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween is the whole-day difference ref − d, signed; positive when d
// is in the past relative to ref.
func daysBetween(ref, d time.Time) int {
	return int(truncateToDay(ref).Sub(truncateToDay(d)).Hours() / 24)
}
