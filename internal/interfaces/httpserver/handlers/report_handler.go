package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"minecrox-server/services/pack-api/internal/config"
	domain "minecrox-server/services/pack-api/internal/domain/report"
	"minecrox-server/services/pack-api/internal/infrastructure/turnstile"
	"minecrox-server/services/pack-api/internal/interfaces/httpserver/requests"
	"minecrox-server/services/pack-api/internal/interfaces/httpserver/responses"
	"minecrox-server/services/pack-api/utils/fingerprint"
)

// ReportHandler accepts abuse reports.
type ReportHandler struct {
	cfg      *config.Config
	service  *domain.Service
	verifier *turnstile.Verifier
	log      zerolog.Logger
}

func NewReportHandler(cfg *config.Config, service *domain.Service, verifier *turnstile.Verifier, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		cfg:      cfg,
		service:  service,
		verifier: verifier,
		log:      log.With().Str("component", "report-handler").Logger(),
	}
}

// Create files an abuse report against a slug.
func (h *ReportHandler) Create(c *gin.Context) {
	var req requests.ReportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "VALIDATION",
			Message: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	if h.verifier.Enabled() {
		if err := h.verifier.Verify(ctx, req.CaptchaToken, fingerprint.ClientIP(c.Request)); err != nil {
			responses.HandleError(c, h.log, err, "captcha verification failed")
			return
		}
	}

	reporterHash := fingerprint.FromRequest(c.Request, h.cfg.FingerprintSecret)
	rep, err := h.service.Create(ctx, req.Slug, req.Reason, req.Email, reporterHash)
	if err != nil {
		responses.HandleError(c, h.log, err, "report failed")
		return
	}

	c.JSON(http.StatusOK, responses.BuildReportResponse(rep))
}
