package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"minecrox-server/services/pack-api/internal/config"
	domain "minecrox-server/services/pack-api/internal/domain/file"
	"minecrox-server/services/pack-api/internal/infrastructure/metrics"
	"minecrox-server/services/pack-api/internal/infrastructure/turnstile"
	"minecrox-server/services/pack-api/internal/interfaces/httpserver/responses"
	"minecrox-server/services/pack-api/utils/fingerprint"
)

// FileHandler exposes upload, metadata, delete, download and analytics
// endpoints.
type FileHandler struct {
	cfg      *config.Config
	service  *domain.Service
	verifier *turnstile.Verifier
	log      zerolog.Logger
}

func NewFileHandler(cfg *config.Config, service *domain.Service, verifier *turnstile.Verifier, log zerolog.Logger) *FileHandler {
	return &FileHandler{
		cfg:      cfg,
		service:  service,
		verifier: verifier,
		log:      log.With().Str("component", "file-handler").Logger(),
	}
}

// Upload accepts a multipart zip archive and returns the slug, landing page
// URL and one-time delete token. Resource packs additionally get a
// server.properties snippet.
func (h *FileHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	if h.verifier.Enabled() {
		token := c.Request.FormValue("captcha_token")
		if err := h.verifier.Verify(ctx, token, fingerprint.ClientIP(c.Request)); err != nil {
			responses.HandleError(c, h.log, err, "captcha verification failed")
			return
		}
	}

	src, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "VALIDATION",
			Message: "file is required",
		})
		return
	}
	defer src.Close()

	uploaderHash := fingerprint.FromRequest(c.Request, h.cfg.FingerprintSecret)
	meta := domain.UploadMeta{
		MinecraftVersion: c.PostForm("minecraft_version"),
		Loader:           c.PostForm("loader"),
		Description:      c.PostForm("description"),
		Tags:             c.PostForm("tags"),
	}
	result, err := h.service.Upload(ctx, src, header.Filename, uploaderHash, meta)
	if err != nil {
		metrics.RecordUpload("unknown", "error", 0)
		responses.HandleError(c, h.log, err, "upload failed")
		return
	}

	fileType := string(domain.KindDatapack)
	if result.ResourcePack != nil {
		fileType = string(domain.KindResourcePack)
	}
	metrics.RecordUpload(fileType, "success", header.Size)

	c.JSON(http.StatusOK, result)
}

// Get returns the public metadata for a slug.
func (h *FileHandler) Get(c *gin.Context) {
	stored, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		responses.HandleError(c, h.log, err, "metadata lookup failed")
		return
	}
	c.JSON(http.StatusOK, responses.BuildFileMetadataResponse(stored))
}

// Delete removes a file when the X-Delete-Token header matches the token
// issued at upload time.
func (h *FileHandler) Delete(c *gin.Context) {
	token := c.GetHeader("X-Delete-Token")
	if err := h.service.Delete(c.Request.Context(), c.Param("slug"), token); err != nil {
		responses.HandleError(c, h.log, err, "delete failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// Download records the download and redirects to a freshly presigned URL.
// This route is the permanent public link; the presigned target is not.
func (h *FileHandler) Download(c *gin.Context) {
	requesterHash := fingerprint.FromRequest(c.Request, h.cfg.FingerprintSecret)
	url, err := h.service.RecordDownload(c.Request.Context(), c.Param("slug"), requesterHash)
	if err != nil {
		responses.HandleError(c, h.log, err, "download failed")
		return
	}
	metrics.DownloadsTotal.Inc()
	c.Redirect(http.StatusFound, url)
}

// Analytics returns lifetime and same-day download counts for a slug.
func (h *FileHandler) Analytics(c *gin.Context) {
	stats, err := h.service.Analytics(c.Request.Context(), c.Param("slug"))
	if err != nil {
		responses.HandleError(c, h.log, err, "analytics lookup failed")
		return
	}
	c.JSON(http.StatusOK, stats)
}
