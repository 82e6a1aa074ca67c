package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rawlake/ingest-service/internal/domain"
	"github.com/rawlake/ingest-service/internal/dto"
	"github.com/rawlake/ingest-service/internal/normalizer"
	"github.com/rawlake/ingest-service/internal/service"
)

type Handler struct {
	ingester service.EventIngester
	router   *gin.Engine
	log      *zap.Logger
}

func NewHandler(ingester service.EventIngester, log *zap.Logger) *Handler {
	h := &Handler{
		ingester: ingester,
		router:   gin.Default(),
		log:      log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/v1/event", h.ingestEvent)
}

// healthCheck handles GET /health
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		OK:   true,
		Time: domain.FormatISO(time.Now()),
	})
}

// ingestEvent handles POST /v1/event. Validation failures map to 400 with
// the rejection reason; storage failures map to 500. The write is not
// retried here: the storage key is deterministic, so clients retry the
// whole request safely.
func (h *Handler) ingestEvent(c *gin.Context) {
	payload := map[string]interface{}{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warn("Invalid event payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid JSON payload",
		})
		return
	}

	bucket, key, err := h.ingester.Ingest(c.Request.Context(), payload)
	if err != nil {
		var vErr *normalizer.ValidationError
		if errors.As(err, &vErr) {
			h.log.Warn("Rejected event", zap.String("reason", vErr.Reason))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: vErr.Reason,
			})
			return
		}

		h.log.Error("Failed to ingest event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.IngestEventResponse{
		OK:     true,
		Bucket: bucket,
		Key:    key,
	})
}
