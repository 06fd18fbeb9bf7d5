package handlers

import (
	"github.com/rs/zerolog"

	"minecrox-server/services/pack-api/internal/config"
	filedomain "minecrox-server/services/pack-api/internal/domain/file"
	reportdomain "minecrox-server/services/pack-api/internal/domain/report"
	"minecrox-server/services/pack-api/internal/infrastructure/turnstile"
)

// Provider wires HTTP handlers.
type Provider struct {
	Files   *FileHandler
	Reports *ReportHandler
}

func NewProvider(cfg *config.Config, files *filedomain.Service, reports *reportdomain.Service, verifier *turnstile.Verifier, log zerolog.Logger) *Provider {
	return &Provider{
		Files:   NewFileHandler(cfg, files, verifier, log),
		Reports: NewReportHandler(cfg, reports, verifier, log),
	}
}
