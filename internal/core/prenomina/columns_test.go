package prenomina

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "simple lowercase", raw: "Cuenta", want: "cuenta"},
		{name: "inner whitespace", raw: "Fecha de documento", want: "fecha_de_documento"},
		{name: "surrounding whitespace", raw: "  Vencimiento neto  ", want: "vencimiento_neto"},
		{name: "accents folded", raw: "Asignación", want: "asignacion"},
		{name: "ordinal sign collapses", raw: "Nº documento", want: "n_documento"},
		{name: "punctuation runs collapse", raw: "Icono part.abiertas/comp.", want: "icono_part_abiertas_comp"},
		{name: "via de pago accent", raw: "Vía de pago", want: "via_de_pago"},
		{name: "leading and trailing symbols stripped", raw: "__Importe pagado en ML__", want: "importe_pagado_en_ml"},
		{name: "empty input", raw: "", want: ""},
		{name: "only symbols", raw: "###", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeColumn(tt.raw))
		})
	}
}

func TestNormalizeColumnIdempotent(t *testing.T) {
	headers := []string{
		"Cuenta", "Fecha de documento", "Nº documento de pago",
		"Icono part.abiertas/comp.", "Símbolo vencimiento neto", "",
	}
	for _, raw := range headers {
		once := normalizeColumn(raw)
		assert.Equal(t, once, normalizeColumn(once), "normalize(normalize(%q))", raw)
	}
}

func TestNormalizeColumns(t *testing.T) {
	normalized, collision := normalizeColumns([]string{"Cuenta", "Fecha de documento", "Texto"})
	assert.Equal(t, []string{"cuenta", "fecha_de_documento", "texto"}, normalized)
	assert.Empty(t, collision)
}

func TestNormalizeColumnsCollision(t *testing.T) {
	_, collision := normalizeColumns([]string{"Cuenta", "cuenta  ", "Texto"})
	assert.Equal(t, []string{"Cuenta", "cuenta  "}, collision)
}
