package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
)

// ErrNotFound is returned when a form stage or calculation does not exist.
var ErrNotFound = errors.New("repository: not found")

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

// GetForm returns the stored JSON of a stage.
func (r *Repos) GetForm(ctx context.Context, room domain.RoomType, stage domain.Stage) (json.RawMessage, error) {
	key, err := domain.FormKey(room, stage)
	if err != nil {
		return nil, err
	}
	var payload string
	err = r.db.GetContext(ctx, &payload, `SELECT payload FROM form_state WHERE form_key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return json.RawMessage(payload), nil
}

// SetForm stores a stage, replacing whatever was there.
func (r *Repos) SetForm(ctx context.Context, room domain.RoomType, stage domain.Stage, payload json.RawMessage) error {
	key, err := domain.FormKey(room, stage)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO form_state(form_key, room_type, stage, payload, updated_at) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (form_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(room), string(stage), string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (r *Repos) SaveCalculation(ctx context.Context, rec *domain.CalculationRecord) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO calculations(id, user_id, room_type, created_at, final_kw, total_tr, summary)
		VALUES (:id, :user_id, :room_type, :created_at, :final_kw, :total_tr, :summary)`, rec)
	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

// ListCalculations returns a user's history, newest first.
func (r *Repos) ListCalculations(ctx context.Context, userID string) ([]domain.CalculationRecord, error) {
	out := []domain.CalculationRecord{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, user_id, room_type, created_at, final_kw, total_tr, summary
		FROM calculations WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return out, nil
}

func (r *Repos) DeleteCalculation(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
