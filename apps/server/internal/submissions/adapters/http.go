package adapters

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/crewsafe/intake/apps/server/internal/submissions"
	"github.com/crewsafe/intake/pkg/api"
)

// fileField is the multipart form field carrying the uploaded report.
const fileField = "submission"

// Handler translates HTTP requests into calls on the submissions.Service.
type Handler struct {
	svc     *submissions.Service
	log     *slog.Logger
	uploads metric.Int64Counter
}

// RegisterRoutes mounts the intake API onto the given Gin engine.
func RegisterRoutes(r *gin.Engine, svc *submissions.Service, log *slog.Logger) {
	uploads, err := otel.Meter("intake-server").Int64Counter("intake.uploads",
		metric.WithDescription("Upload attempts by outcome."))
	if err != nil {
		log.Warn("uploads counter init failed", "error", err)
	}

	h := &Handler{svc: svc, log: log, uploads: uploads}
	r.POST("/upload", h.Upload)
	r.GET("/healthz", h.Health)
}

// Upload handles POST /upload — reads the single multipart file part and
// archives it. All state lives on the request; nothing survives the response.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile(fileField)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "no submission file provided")
		return
	}

	fd, err := file.Open()
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "unreadable submission file")
		return
	}
	defer fd.Close() //nolint:errcheck // close errors on readers are non-actionable

	content, err := io.ReadAll(fd)
	if err != nil {
		h.log.Error("failed to read submission", "filename", file.Filename, "error", err)
		h.respondError(c, http.StatusInternalServerError, "failed to read submission file")
		return
	}

	receipt, err := h.svc.Submit(c.Request.Context(), file.Filename, content)
	if err != nil {
		h.submitError(c, err)
		return
	}

	h.count(c, "accepted")
	c.JSON(http.StatusOK, api.UploadResponse{Status: "accepted", Path: receipt.Path})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// submitError maps service errors onto HTTP statuses: client mistakes are 4xx,
// archive failures are 502 with the remote detail, anything else is 500.
func (h *Handler) submitError(c *gin.Context, err error) {
	var empty submissions.EmptySubmissionError
	if errors.As(err, &empty) {
		h.respondError(c, http.StatusBadRequest, empty.Error())
		return
	}

	var rejected submissions.RemoteRejectedError
	if errors.As(err, &rejected) {
		h.log.Error("archive rejected submission", "status", rejected.StatusCode, "message", rejected.Message)
		h.respondError(c, http.StatusBadGateway, rejected.Error())
		return
	}

	var unavailable submissions.ArchiveUnavailableError
	if errors.As(err, &unavailable) {
		h.log.Error("archive unreachable", "error", err)
		h.respondError(c, http.StatusBadGateway, unavailable.Error())
		return
	}

	h.log.Error("failed to archive submission", "error", err)
	h.respondError(c, http.StatusInternalServerError, err.Error())
}

func (h *Handler) respondError(c *gin.Context, status int, msg string) {
	h.count(c, "rejected")
	c.JSON(status, api.ErrorResponse{Error: msg})
}

func (h *Handler) count(c *gin.Context, outcome string) {
	if h.uploads == nil {
		return
	}
	h.uploads.Add(c.Request.Context(), 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
