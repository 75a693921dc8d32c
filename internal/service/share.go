package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/coolcalc/internal/cloud"
	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
)

type ReportUploader interface {
	UploadReport(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type ShareNotifier interface {
	SendShareNotice(ctx context.Context, rec *domain.CalculationRecord, url string) error
}

// ShareService saves a calculation and publishes its report.
type ShareService struct {
	calcs    *CalculationService
	uploader ReportUploader
	notifier ShareNotifier
	useCloud bool
	log      zerolog.Logger
}

type ShareResult struct {
	Record *domain.CalculationRecord `json:"record"`
	// URL is set when the report was uploaded.
	URL string `json:"url,omitempty"`
	// Report holds the document when nothing was uploaded.
	Report string `json:"report,omitempty"`
}

// Share calculates the room's saved stages, records the result in the user's
// history and renders the report. With cloud services on, the report goes to
// S3 and subscribers are notified with its link.
func (s *ShareService) Share(ctx context.Context, userID string, room domain.RoomType) (*ShareResult, error) {
	res, err := s.calcs.Calculate(ctx, room)
	if err != nil {
		return nil, err
	}
	doc, err := s.calcs.Render(res)
	if err != nil {
		return nil, err
	}

	if !s.useCloud || s.uploader == nil {
		rec, err := s.calcs.Record(ctx, userID, res)
		if err != nil {
			return nil, err
		}
		return &ShareResult{Record: rec, Report: doc}, nil
	}

	// The record is only saved once its report is reachable.
	rec, err := s.calcs.newRecord(userID, res)
	if err != nil {
		return nil, err
	}
	url, err := s.uploader.UploadReport(ctx, cloud.ReportKey(string(room), rec.ID), []byte(doc), "text/html; charset=utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to publish report %s: %w", rec.ID, err)
	}
	if err := s.calcs.history.SaveCalculation(ctx, rec); err != nil {
		return nil, err
	}
	s.notify(ctx, rec, url)
	return &ShareResult{Record: rec, URL: url}, nil
}

// notify failures are logged; the report is already available.
func (s *ShareService) notify(ctx context.Context, rec *domain.CalculationRecord, url string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendShareNotice(ctx, rec, url); err != nil {
		s.log.Warn().Err(err).Str("calculation_id", rec.ID).Msg("share notification failed")
	}
}
