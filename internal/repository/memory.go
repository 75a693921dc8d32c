package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
)

// Memory keeps form state and history in process. It backs the API when no
// database is configured.
type Memory struct {
	mu    sync.RWMutex
	forms map[string]json.RawMessage
	calcs map[string]domain.CalculationRecord
}

func NewMemory() *Memory {
	return &Memory{
		forms: make(map[string]json.RawMessage),
		calcs: make(map[string]domain.CalculationRecord),
	}
}

func (m *Memory) GetForm(_ context.Context, room domain.RoomType, stage domain.Stage) (json.RawMessage, error) {
	key, err := domain.FormKey(room, stage)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.forms[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append(json.RawMessage(nil), payload...), nil
}

func (m *Memory) SetForm(_ context.Context, room domain.RoomType, stage domain.Stage, payload json.RawMessage) error {
	key, err := domain.FormKey(room, stage)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.forms[key] = append(json.RawMessage(nil), payload...)
	m.mu.Unlock()
	return nil
}

func (m *Memory) SaveCalculation(_ context.Context, rec *domain.CalculationRecord) error {
	m.mu.Lock()
	m.calcs[rec.ID] = *rec
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListCalculations(_ context.Context, userID string) ([]domain.CalculationRecord, error) {
	m.mu.RLock()
	out := []domain.CalculationRecord{}
	for _, rec := range m.calcs {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeleteCalculation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.calcs[id]; !ok {
		return ErrNotFound
	}
	delete(m.calcs, id)
	return nil
}
