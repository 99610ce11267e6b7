package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"searchmind/internal/agent/service"
	"searchmind/internal/rag/loaders"
	"searchmind/internal/rag/schema"
	"searchmind/pkg/logger"
)

// maxUploadBytes caps uploaded documents at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler exposes the agent service over HTTP.
type Handler struct {
	svc *service.AgentService
	log *logger.Logger
}

// NewHandler creates a new Handler.
func NewHandler(svc *service.AgentService, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// QueryRequest is the JSON body of a question to the agent.
type QueryRequest struct {
	Query      string `json:"query" binding:"required,min=1,max=1000"`
	MaxResults int    `json:"maxResults" binding:"omitempty,min=1,max=20"`
}

// Query answers a question grounded in the ingested documents.
func (h *Handler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	started := time.Now()
	answer, err := h.svc.Answer(c.Request.Context(), req.Query, req.MaxResults)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, schema.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"query":          req.Query,
		"response":       answer,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"processingTime": time.Since(started).String(),
	})
}

// UploadDocument ingests one uploaded file into the knowledge base.
func (h *Handler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "multipart field \"file\" is required"})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"error":   fmt.Sprintf("file exceeds the %d MiB upload limit", maxUploadBytes>>20),
		})
		return
	}
	if !loaders.Supported(filepath.Ext(fileHeader.Filename)) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("unsupported file type %q: only PDF, TXT and MD are accepted", filepath.Ext(fileHeader.Filename)),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	chunks, err := h.svc.IngestUpload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		h.log.Error(fmt.Sprintf("Upload of %q failed: %v", fileHeader.Filename, err))

		var ingErr *schema.IngestionError
		if errors.As(err, &ingErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success":         false,
				"error":           err.Error(),
				"chunksPersisted": ingErr.Persisted,
			})
			return
		}

		status := http.StatusInternalServerError
		if errors.Is(err, schema.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"file":     fileHeader.Filename,
		"chunks":   chunks,
		"message":  "document ingested",
		"dateTime": time.Now().UTC().Format(time.RFC3339),
	})
}

// Statistics reports the document count and the last ingestion time.
func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "statistics": stats})
}

// ClearDocuments removes every document from the knowledge base.
func (h *Handler) ClearDocuments(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "knowledge base cleared"})
}

// Health probes the backends. A degraded backend yields 503 so load
// balancers can rotate the instance out.
func (h *Handler) Health(c *gin.Context) {
	health := h.svc.CheckHealth(c.Request.Context())

	status := http.StatusOK
	state := "ok"
	if !health.Model || !health.Embedding || !health.Store {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status":    state,
		"model":     health.Model,
		"embedding": health.Embedding,
		"store":     health.Store,
	})
}
