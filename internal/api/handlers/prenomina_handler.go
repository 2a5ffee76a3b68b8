package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prenomina-service/internal/api/responses"
	"prenomina-service/internal/core/prenomina"
)

const (
	workbookFilename = "total_acreedores.xlsx"
	workbookMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	fechaFormLayout  = "02-01-2006"
)

// PrenominaHandler maneja las peticiones de la API de pre-nómina.
type PrenominaHandler struct {
	service                prenomina.Service
	fechaReferenciaDefecto time.Time
	logger                 *zap.Logger
}

// NewPrenominaHandler crea un nuevo handler de pre-nómina.
func NewPrenominaHandler(service prenomina.Service, fechaReferenciaDefecto time.Time, logger *zap.Logger) *PrenominaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrenominaHandler{
		service:                service,
		fechaReferenciaDefecto: fechaReferenciaDefecto,
		logger:                 logger,
	}
}

// HandlePreview procesa ambos archivos y devuelve la vista previa del ledger
// enriquecido, restringido a los acreedores de tesorería.
func (h *PrenominaHandler) HandlePreview(c *gin.Context) {
	nominaFile, tesoreriaFile, fecha, ok := h.parseRequest(c)
	if !ok {
		return
	}
	defer nominaFile.Close()
	defer tesoreriaFile.Close()

	result, err := h.service.Process(nominaFile, tesoreriaFile, fecha)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	responses.Success(c, result, "Procesamiento de pre-nómina concluido con éxito")
}

// HandleWorkbook procesa ambos archivos y devuelve el libro .xlsx con una
// hoja por acreedor.
func (h *PrenominaHandler) HandleWorkbook(c *gin.Context) {
	nominaFile, tesoreriaFile, fecha, ok := h.parseRequest(c)
	if !ok {
		return
	}
	defer nominaFile.Close()
	defer tesoreriaFile.Close()

	workbook, err := h.service.GenerateWorkbook(nominaFile, tesoreriaFile, fecha)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+workbookFilename)
	c.Data(http.StatusOK, workbookMIME, workbook)
}

// parseRequest extrae los dos archivos y la fecha de referencia del
// formulario multipart. Responde el error al cliente y devuelve ok=false
// cuando la petición es inválida.
func (h *PrenominaHandler) parseRequest(c *gin.Context) (nomina, tesoreria multipart.File, fecha time.Time, ok bool) {
	nominaHeader, err := c.FormFile("nominaFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Archivo de nómina (.xls, .xlsx) no encontrado o inválido")
		return nil, nil, time.Time{}, false
	}
	tesoreriaHeader, err := c.FormFile("tesoreriaFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Archivo de tesorería (.xls, .xlsx) no encontrado o inválido")
		return nil, nil, time.Time{}, false
	}

	for _, header := range []*multipart.FileHeader{nominaHeader, tesoreriaHeader} {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".xls" && ext != ".xlsx" {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Extensión de archivo no soportada: %s", ext))
			return nil, nil, time.Time{}, false
		}
	}

	fecha = h.fechaReferenciaDefecto
	if raw := c.PostForm("fechaReferencia"); raw != "" {
		fecha, err = time.Parse(fechaFormLayout, strings.TrimSpace(raw))
		if err != nil {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Fecha de referencia inválida, se espera el formato dd-mm-aaaa: %s", raw))
			return nil, nil, time.Time{}, false
		}
	}

	nominaFile, err := nominaHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "No se pudo abrir el archivo de nómina")
		return nil, nil, time.Time{}, false
	}
	tesoreriaFile, err := tesoreriaHeader.Open()
	if err != nil {
		nominaFile.Close()
		responses.Error(c, http.StatusInternalServerError, "No se pudo abrir el archivo de tesorería")
		return nil, nil, time.Time{}, false
	}
	return nominaFile, tesoreriaFile, fecha, true
}

// respondPipelineError traduce los errores del pipeline a respuestas HTTP:
// los errores estructurales y de vacío llevan mensaje descriptivo al
// usuario; el resto se registra y se responde de forma genérica.
func (h *PrenominaHandler) respondPipelineError(c *gin.Context, err error) {
	var schemaErr *prenomina.SchemaError
	if errors.As(err, &schemaErr) {
		responses.Error(c, http.StatusUnprocessableEntity, "Las columnas del archivo no coinciden con el formato esperado", schemaErr.Error())
		return
	}
	var emptyErr *prenomina.EmptyResultError
	if errors.As(err, &emptyErr) {
		responses.Error(c, http.StatusUnprocessableEntity, "No hay datos que procesar con los filtros aplicados", emptyErr.Error())
		return
	}
	h.logger.Error("error al procesar pre-nómina", zap.Error(err))
	responses.Error(c, http.StatusInternalServerError, "Error al procesar los archivos")
}
