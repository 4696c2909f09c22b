package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-backend/internal/events"
	"storefront-backend/internal/ingest"
	"storefront-backend/internal/models"
)

// 20 MB upload ceiling, matches the largest catalog sheets seen so far.
const maxImportSize = 20 << 20

// ImportHandler serves bulk catalog ingestion and template download.
type ImportHandler struct {
	engine *ingest.Engine
	events *events.Publisher
	logger *logrus.Entry
}

func NewImportHandler(engine *ingest.Engine, publisher *events.Publisher, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{
		engine: engine,
		events: publisher,
		logger: logger.WithField("handler", "import"),
	}
}

// ImportProducts handles POST /api/products/import. Multipart form:
// "file" is the CSV/XLSX upload, "mode" selects add/update/upsert
// (default upsert) and optional "url_map" is a JSON object mapping
// filenames to pre-uploaded URLs.
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	mode, err := ingest.ParseMode(c.PostForm("mode"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required")
		return
	}
	if fileHeader.Size > maxImportSize {
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds 20MB limit")
		return
	}

	format, err := ingest.FormatFromFilename(fileHeader.Filename)
	if err != nil {
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error())
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "failed to open uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "failed to read uploaded file")
		return
	}

	var urlMap map[string]string
	if raw := c.PostForm("url_map"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &urlMap); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "url_map must be a JSON object of filename to URL")
			return
		}
	}

	rows, err := ingest.Parse(data, format)
	if err != nil {
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", err.Error())
		return
	}

	result := h.engine.Reconcile(c.Request.Context(), rows, mode, urlMap)

	h.events.Publish(events.SubjectImportFinished, result)
	h.logger.WithFields(logrus.Fields{
		"file":    fileHeader.Filename,
		"mode":    string(mode),
		"created": result.Created,
		"updated": result.Updated,
	}).Info("Catalog import finished")
	respondData(c, http.StatusOK, result)
}

// GetImportTemplate handles GET /api/products/import/template.
// ?format=csv|xlsx selects the download format, default xlsx;
// ?format=json returns the column definitions instead.
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	switch c.DefaultQuery("format", "xlsx") {
	case "json":
		respondData(c, http.StatusOK, models.ProductImportTemplate())

	case "csv":
		data, err := ingest.TemplateCSV()
		if err != nil {
			respondError(c, http.StatusInternalServerError, "TEMPLATE_ERROR", err.Error())
			return
		}
		c.Header("Content-Disposition", `attachment; filename="product-import-template.csv"`)
		c.Data(http.StatusOK, "text/csv", data)

	case "xlsx":
		data, err := ingest.TemplateXLSX()
		if err != nil {
			respondError(c, http.StatusInternalServerError, "TEMPLATE_ERROR", err.Error())
			return
		}
		c.Header("Content-Disposition", `attachment; filename="product-import-template.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "format must be csv, xlsx or json")
	}
}
