package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/load"
	"github.com/ANIKETSHETTY47/coolcalc/internal/normalize"
	"github.com/ANIKETSHETTY47/coolcalc/internal/report"
	"github.com/ANIKETSHETTY47/coolcalc/internal/repository"
)

// ErrInvalidForm is returned when a stage payload is not a JSON object.
var ErrInvalidForm = errors.New("service: form stage must be a JSON object")

// FormStore persists one JSON document per {room, stage}.
type FormStore interface {
	GetForm(ctx context.Context, room domain.RoomType, stage domain.Stage) (json.RawMessage, error)
	SetForm(ctx context.Context, room domain.RoomType, stage domain.Stage, payload json.RawMessage) error
}

type HistoryStore interface {
	SaveCalculation(ctx context.Context, rec *domain.CalculationRecord) error
	ListCalculations(ctx context.Context, userID string) ([]domain.CalculationRecord, error)
	DeleteCalculation(ctx context.Context, id string) error
}

// Deps wires the services. Uploader and Notifier are only used when UseCloud
// is set and may be nil otherwise.
type Deps struct {
	Forms    FormStore
	History  HistoryStore
	Uploader ReportUploader
	Notifier ShareNotifier
	UseCloud bool
	Log      zerolog.Logger
}

type Services struct {
	Forms        *FormService
	Calculations *CalculationService
	Share        *ShareService
}

func New(d Deps) *Services {
	forms := &FormService{store: d.Forms, log: d.Log.With().Str("component", "forms").Logger()}
	calcs := &CalculationService{
		forms:     forms,
		history:   d.History,
		normalize: normalize.New(d.Log),
		reports:   report.New(),
		now:       time.Now,
	}
	return &Services{
		Forms:        forms,
		Calculations: calcs,
		Share: &ShareService{
			calcs:    calcs,
			uploader: d.Uploader,
			notifier: d.Notifier,
			useCloud: d.UseCloud,
			log:      d.Log.With().Str("component", "share").Logger(),
		},
	}
}

type FormService struct {
	store FormStore
	log   zerolog.Logger
}

func (s *FormService) Get(ctx context.Context, room domain.RoomType, stage domain.Stage) (json.RawMessage, error) {
	return s.store.GetForm(ctx, room, stage)
}

// Set stores a stage. The payload must decode to a JSON object; the last write wins.
func (s *FormService) Set(ctx context.Context, room domain.RoomType, stage domain.Stage, payload []byte) error {
	if _, err := decodeForm(payload); err != nil {
		return err
	}
	return s.store.SetForm(ctx, room, stage, json.RawMessage(payload))
}

// Load reads every saved stage of room. Stages never saved are left out.
func (s *FormService) Load(ctx context.Context, room domain.RoomType) (load.Forms, error) {
	forms := load.Forms{}
	for _, stage := range domain.Stages(room) {
		payload, err := s.store.GetForm(ctx, room, stage)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		form, err := decodeForm(payload)
		if err != nil {
			return nil, fmt.Errorf("stored %s/%s: %w", room, stage, err)
		}
		forms[stage] = form
	}
	return forms, nil
}

// FromMQTT stores a stage published on <prefix>/<room>/<stage>.
func (s *FormService) FromMQTT(topic string, payload []byte) error {
	parts := strings.Split(strings.Trim(topic, "/"), "/")
	if len(parts) < 2 {
		return fmt.Errorf("topic %q: expected <prefix>/<room>/<stage>", topic)
	}
	room, err := domain.ParseRoomType(parts[len(parts)-2])
	if err != nil {
		return err
	}
	stage, err := domain.ParseStage(room, parts[len(parts)-1])
	if err != nil {
		return err
	}
	if err := s.Set(context.Background(), room, stage, payload); err != nil {
		return err
	}
	s.log.Debug().Str("room", string(room)).Str("stage", string(stage)).Msg("stage stored from mqtt")
	return nil
}

func decodeForm(payload []byte) (normalize.Form, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var form normalize.Form
	if err := dec.Decode(&form); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	if form == nil {
		return nil, ErrInvalidForm
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidForm)
	}
	return form, nil
}

// DecodeForms decodes a request body of stage name to stage object.
func DecodeForms(room domain.RoomType, body []byte) (load.Forms, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	forms := load.Forms{}
	for name, payload := range raw {
		stage, err := domain.ParseStage(room, name)
		if err != nil {
			return nil, err
		}
		form, err := decodeForm(payload)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
		forms[stage] = form
	}
	return forms, nil
}

type CalculationService struct {
	forms     *FormService
	history   HistoryStore
	normalize *normalize.Normalizer
	reports   *report.Formatter
	now       func() time.Time
}

// Calculate runs the room's calculator over its saved stages.
func (s *CalculationService) Calculate(ctx context.Context, room domain.RoomType) (load.Result, error) {
	forms, err := s.forms.Load(ctx, room)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(room, forms)
}

// Evaluate calculates from stages supplied directly, without touching storage.
func (s *CalculationService) Evaluate(room domain.RoomType, forms load.Forms) (load.Result, error) {
	return load.Calculate(s.normalize, room, forms)
}

func (s *CalculationService) Render(res load.Result) (string, error) {
	return s.reports.Render(report.Meta{Room: res.Room()}, res.Summary())
}

// Report renders the report of the room's saved stages.
func (s *CalculationService) Report(ctx context.Context, room domain.RoomType) (string, error) {
	res, err := s.Calculate(ctx, room)
	if err != nil {
		return "", err
	}
	return s.Render(res)
}

// Record saves a result into the user's history.
func (s *CalculationService) Record(ctx context.Context, userID string, res load.Result) (*domain.CalculationRecord, error) {
	rec, err := s.newRecord(userID, res)
	if err != nil {
		return nil, err
	}
	if err := s.history.SaveCalculation(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *CalculationService) newRecord(userID string, res load.Result) (*domain.CalculationRecord, error) {
	sum := res.Summary()
	b, err := json.Marshal(sum)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return &domain.CalculationRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Room:      res.Room(),
		CreatedAt: s.now().UTC(),
		FinalKW:   sum.FinalLoad,
		TotalTR:   sum.TotalTR,
		Summary:   string(b),
	}, nil
}

func (s *CalculationService) History(ctx context.Context, userID string) ([]domain.CalculationRecord, error) {
	return s.history.ListCalculations(ctx, userID)
}

func (s *CalculationService) Delete(ctx context.Context, id string) error {
	return s.history.DeleteCalculation(ctx, id)
}
