package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/load"
	"github.com/ANIKETSHETTY47/coolcalc/internal/repository"
)

type fakeUploader struct {
	key  string
	data []byte
	err  error
}

func (f *fakeUploader) UploadReport(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key, f.data = key, data
	return "https://reports.example/" + key, nil
}

type fakeNotifier struct {
	url string
	err error
}

func (f *fakeNotifier) SendShareNotice(_ context.Context, _ *domain.CalculationRecord, url string) error {
	f.url = url
	return f.err
}

func newServices(d Deps) *Services {
	mem := repository.NewMemory()
	if d.Forms == nil {
		d.Forms = mem
	}
	if d.History == nil {
		d.History = mem
	}
	d.Log = zerolog.Nop()
	return New(d)
}

func saveDefaults(t *testing.T, s *Services, room domain.RoomType) {
	t.Helper()
	for stage, form := range load.DefaultForms(room) {
		b, err := json.Marshal(form)
		require.NoError(t, err)
		require.NoError(t, s.Forms.Set(context.Background(), room, stage, b))
	}
}

func TestFormServiceSetRejectsNonObjects(t *testing.T) {
	s := newServices(Deps{})
	ctx := context.Background()

	for _, body := range []string{`[1,2]`, `"text"`, `null`, `{broken`, `{}garbage`, `{}}`, `{} {}`} {
		err := s.Forms.Set(ctx, domain.Freezer, domain.StageRoom, []byte(body))
		assert.ErrorIs(t, err, ErrInvalidForm, body)
	}
	require.NoError(t, s.Forms.Set(ctx, domain.Freezer, domain.StageRoom, []byte(`{}`)))
	require.NoError(t, s.Forms.Set(ctx, domain.Freezer, domain.StageRoom, []byte("{\"length\": 5}\n")))
}

func TestFormServiceLoadSkipsMissingStages(t *testing.T) {
	s := newServices(Deps{})
	ctx := context.Background()
	require.NoError(t, s.Forms.Set(ctx, domain.ColdRoom, domain.StageRoom, []byte(`{"length": 6}`)))

	forms, err := s.Forms.Load(ctx, domain.ColdRoom)
	require.NoError(t, err)
	assert.Len(t, forms, 1)
	assert.Equal(t, json.Number("6"), forms[domain.StageRoom]["length"])
}

func TestFormServiceFromMQTT(t *testing.T) {
	s := newServices(Deps{})

	require.NoError(t, s.Forms.FromMQTT("coolcalc/forms/blastfreezer/usage", []byte(`{"numberOfPeople":"3"}`)))
	got, err := s.Forms.Get(context.Background(), domain.BlastFreezer, domain.StageUsage)
	require.NoError(t, err)
	assert.JSONEq(t, `{"numberOfPeople":"3"}`, string(got))

	assert.ErrorIs(t, s.Forms.FromMQTT("coolcalc/forms/igloo/room", []byte(`{}`)), domain.ErrUnknownRoom)
	assert.ErrorIs(t, s.Forms.FromMQTT("coolcalc/forms/freezer/usage", []byte(`{}`)), domain.ErrUnknownStage)
	assert.Error(t, s.Forms.FromMQTT("room", []byte(`{}`)))
}

func TestCalculateFromStoredStages(t *testing.T) {
	s := newServices(Deps{})
	ctx := context.Background()

	_, err := s.Calculations.Calculate(ctx, domain.Freezer)
	var missing *load.MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, domain.StageRoom, missing.Stage)

	saveDefaults(t, s, domain.Freezer)
	res, err := s.Calculations.Calculate(ctx, domain.Freezer)
	require.NoError(t, err)
	assert.Equal(t, domain.Freezer, res.Room())
}

func TestDecodeForms(t *testing.T) {
	forms, err := DecodeForms(domain.ColdRoom, []byte(`{"room":{"length":"3"},"construction":{}}`))
	require.NoError(t, err)
	assert.Len(t, forms, 2)

	_, err = DecodeForms(domain.Freezer, []byte(`{"usage":{}}`))
	assert.ErrorIs(t, err, domain.ErrUnknownStage)

	_, err = DecodeForms(domain.Freezer, []byte(`{"room":[]}`))
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestRecordAndHistory(t *testing.T) {
	s := newServices(Deps{})
	s.Calculations.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	ctx := context.Background()
	saveDefaults(t, s, domain.ColdRoom)

	res, err := s.Calculations.Calculate(ctx, domain.ColdRoom)
	require.NoError(t, err)
	rec, err := s.Calculations.Record(ctx, "u1", res)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, res.Summary().FinalLoad, rec.FinalKW)
	var sum load.Summary
	require.NoError(t, json.Unmarshal([]byte(rec.Summary), &sum))
	assert.Equal(t, domain.ColdRoom, sum.Room)

	hist, err := s.Calculations.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, rec.ID, hist[0].ID)

	require.NoError(t, s.Calculations.Delete(ctx, rec.ID))
	assert.ErrorIs(t, s.Calculations.Delete(ctx, rec.ID), repository.ErrNotFound)
}

func TestShareWithoutCloud(t *testing.T) {
	up := &fakeUploader{}
	s := newServices(Deps{Uploader: up})
	saveDefaults(t, s, domain.BlastFreezer)

	out, err := s.Share.Share(context.Background(), "u1", domain.BlastFreezer)
	require.NoError(t, err)
	assert.Empty(t, out.URL)
	assert.Contains(t, out.Report, "Blast Freezer Report")
	assert.Empty(t, up.key)
}

func TestShareWithCloud(t *testing.T) {
	up := &fakeUploader{}
	notify := &fakeNotifier{err: errors.New("topic gone")}
	s := newServices(Deps{Uploader: up, Notifier: notify, UseCloud: true})
	saveDefaults(t, s, domain.Freezer)

	out, err := s.Share.Share(context.Background(), "u1", domain.Freezer)
	require.NoError(t, err)

	assert.Equal(t, "reports/freezer/"+out.Record.ID+".html", up.key)
	assert.Equal(t, "https://reports.example/"+up.key, out.URL)
	assert.Equal(t, out.URL, notify.url)
	assert.Empty(t, out.Report)
	assert.Contains(t, string(up.data), "Freezer Report")

	hist, err := s.Calculations.History(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestShareUploadFailure(t *testing.T) {
	s := newServices(Deps{Uploader: &fakeUploader{err: errors.New("denied")}, UseCloud: true})
	saveDefaults(t, s, domain.Freezer)

	for i := 0; i < 3; i++ {
		_, err := s.Share.Share(context.Background(), "u1", domain.Freezer)
		assert.ErrorContains(t, err, "denied")
	}

	hist, err := s.Calculations.History(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, hist)
}
