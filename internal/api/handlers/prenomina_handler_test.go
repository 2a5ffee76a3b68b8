package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"prenomina-service/internal/core/prenomina"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fecha := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	handler := NewPrenominaHandler(prenomina.NewService(nil), fecha, nil)

	router := gin.New()
	router.POST("/api/v1/prenomina/preview", handler.HandlePreview)
	router.POST("/api/v1/prenomina/workbook", handler.HandleWorkbook)
	return router
}

func sheetBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buffer, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buffer.Bytes()
}

func validNomina(t *testing.T) []byte {
	return sheetBytes(t, [][]interface{}{
		{"Cuenta", "Fecha de documento", "Vencimiento neto"},
		{"100", "01-12-2024", "15-12-2024"},
	})
}

func validTesoreria(t *testing.T) []byte {
	return sheetBytes(t, [][]interface{}{
		{"Proveedor", "Nº documento de pago", "Importe pagado en ML"},
		{"100", "9000001", "-12000000"},
	})
}

func multipartRequest(t *testing.T, url string, files map[string][]byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, data := range files {
		part, err := writer.CreateFormFile(field, field+".xlsx")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandlePreview(t *testing.T) {
	router := newTestRouter(t)

	req := multipartRequest(t, "/api/v1/prenomina/preview", map[string][]byte{
		"nominaFile":    validNomina(t),
		"tesoreriaFile": validTesoreria(t),
	}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			Cuentas []int64 `json:"cuentas"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, []int64{100}, envelope.Data.Cuentas)
}

func TestHandlePreviewWithReferenceDate(t *testing.T) {
	router := newTestRouter(t)

	req := multipartRequest(t, "/api/v1/prenomina/preview", map[string][]byte{
		"nominaFile":    validNomina(t),
		"tesoreriaFile": validTesoreria(t),
	}, map[string]string{"fechaReferencia": "01-02-2025"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandlePreviewMissingFile(t *testing.T) {
	router := newTestRouter(t)

	req := multipartRequest(t, "/api/v1/prenomina/preview", map[string][]byte{
		"nominaFile": validNomina(t),
	}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePreviewBadReferenceDate(t *testing.T) {
	router := newTestRouter(t)

	req := multipartRequest(t, "/api/v1/prenomina/preview", map[string][]byte{
		"nominaFile":    validNomina(t),
		"tesoreriaFile": validTesoreria(t),
	}, map[string]string{"fechaReferencia": "2025/02/01"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePreviewSchemaError(t *testing.T) {
	router := newTestRouter(t)

	badNomina := sheetBytes(t, [][]interface{}{
		{"Cuenta", "Fecha de documento"},
		{"100", "01-12-2024"},
	})
	req := multipartRequest(t, "/api/v1/prenomina/preview", map[string][]byte{
		"nominaFile":    badNomina,
		"tesoreriaFile": validTesoreria(t),
	}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Status string   `json:"status"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "error", envelope.Status)
	require.NotEmpty(t, envelope.Errors)
	assert.Contains(t, envelope.Errors[0], "vencimiento_neto")
}

func TestHandleWorkbook(t *testing.T) {
	router := newTestRouter(t)

	req := multipartRequest(t, "/api/v1/prenomina/workbook", map[string][]byte{
		"nominaFile":    validNomina(t),
		"tesoreriaFile": validTesoreria(t),
	}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, workbookMIME, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), workbookFilename)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"100"}, f.GetSheetList())
}
