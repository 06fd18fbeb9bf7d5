package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"minecrox-server/services/pack-api/utils/apperrors"
)

// ErrorResponse is the stable error envelope. Message is a short reason
// string; internal detail never leaves the process.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleError maps domain errors onto HTTP responses. Untyped errors become
// a generic 500 so CORS headers still attach correctly.
func HandleError(c *gin.Context, logger zerolog.Logger, err error, fallback string) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		apperrors.Log(logger, appErr)
		c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Type), ErrorResponse{
			Error:   string(appErr.Type),
			Message: appErr.Message,
		})
		return
	}

	logger.Error().Err(err).Msg(fallback)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   string(apperrors.TypeInternal),
		Message: fallback,
	})
}
