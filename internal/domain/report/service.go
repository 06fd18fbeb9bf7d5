// Package report accepts abuse reports against public slugs. Reports are
// append-only and reference slugs loosely: the reported file may already be
// gone by the time a moderator looks.
package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Report is one abuse report.
type Report struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	Reason       string    `json:"reason"`
	Email        string    `json:"email,omitempty"`
	ReporterHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository defines persistence for reports.
type Repository interface {
	Create(ctx context.Context, r *Report) error
}

// Service records abuse reports.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "report-service").Logger(),
	}
}

// Create persists a new report and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, slug, reason, email, reporterHash string) (*Report, error) {
	r := &Report{
		Slug:         slug,
		Reason:       reason,
		Email:        email,
		ReporterHash: reporterHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info().Str("slug", slug).Msg("recorded abuse report")
	return r, nil
}
