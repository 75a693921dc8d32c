package load

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/normalize"
	"github.com/ANIKETSHETTY47/coolcalc/internal/thermal"
)

func TestCalculateDefaultForms(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	for _, room := range domain.RoomTypes() {
		t.Run(string(room), func(t *testing.T) {
			res, err := Calculate(n, room, DefaultForms(room))
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, room, res.Room())

			s := res.Summary()
			assert.Greater(t, s.FinalLoad, 0.0)
			assert.InEpsilon(t, s.TotalBeforeSafety*s.SafetyFactor, s.FinalLoad, 1e-12)
		})
	}
}

func TestCalculateFreezerScenario(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	res, err := Calculate(n, domain.Freezer, DefaultForms(domain.Freezer))
	require.NoError(t, err)

	fr, ok := res.(*FreezerResult)
	require.True(t, ok)
	assert.InDelta(t, 7.5684, fr.Transmission.Walls, 1e-9)
}

func TestCalculateColdRoomScenario(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	res, err := Calculate(n, domain.ColdRoom, DefaultForms(domain.ColdRoom))
	require.NoError(t, err)

	cr, ok := res.(*ColdRoomResult)
	require.True(t, ok)
	assert.InDelta(t, 19.1333333, cr.Product, 1e-6)
}

func TestCalculateMissingStage(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	forms := DefaultForms(domain.BlastFreezer)
	delete(forms, domain.StageConditions)

	res, err := Calculate(n, domain.BlastFreezer, forms)
	assert.Nil(t, res)
	var missing *MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, domain.StageConditions, missing.Stage)
	assert.Equal(t, domain.BlastFreezer, missing.Room)
}

func TestCalculateOptionalStagesMayBeAbsent(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	forms := DefaultForms(domain.BlastFreezer)
	delete(forms, domain.StageConstruction)
	delete(forms, domain.StageUsage)

	_, err := Calculate(n, domain.BlastFreezer, forms)
	assert.NoError(t, err)
}

func TestCalculateEmptyStageIsProvided(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	forms := Forms{
		domain.StageRoom:       {},
		domain.StageConditions: {},
		domain.StageProduct:    {},
	}
	res, err := Calculate(n, domain.Freezer, forms)
	require.NoError(t, err)
	assert.Equal(t, 30.0, res.Summary().Volume)
}

func TestCalculateExplicitZeroHours(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	forms := DefaultForms(domain.ColdRoom)
	forms[domain.StageConditions]["operatingHours"] = "0"

	_, err := Calculate(n, domain.ColdRoom, forms)
	var degenerate *DegenerateInputError
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, "operatingHours", degenerate.Field)
}

func TestCalculateUnknownRoom(t *testing.T) {
	_, err := Calculate(normalize.New(zerolog.Nop()), domain.RoomType("igloo"), Forms{})
	assert.ErrorIs(t, err, domain.ErrUnknownRoom)
}

func TestColdRoomFromFormsMergesConstruction(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	forms := Forms{
		domain.StageRoom:         {"length": "6", "insulationType": "EPS"},
		domain.StageConstruction: {"insulationType": "rockwool", "insulationThickness": "125"},
		domain.StageProduct:      {"productType": "Fruits (Mixed)"},
	}

	room, _, prod := ColdRoomFromForms(n, forms)
	assert.Equal(t, 6.0, room.Length)
	assert.Equal(t, thermal.Rockwool, room.Insulation)
	assert.Equal(t, 125, room.InsulationThicknessMM)
	// Unset product properties come from the selected product.
	assert.Equal(t, 3.6, prod.SpecificHeat)
	assert.Equal(t, 28.0, prod.RespirationRate)
}

func TestBlastFreezerFromForms(t *testing.T) {
	n := normalize.New(zerolog.Nop())

	t.Run("breadth wins over width", func(t *testing.T) {
		room, _, _ := BlastFreezerFromForms(n, Forms{domain.StageRoom: {"breadth": "7", "width": "4"}})
		assert.Equal(t, 7.0, room.Width)
	})
	t.Run("legacy width", func(t *testing.T) {
		room, _, _ := BlastFreezerFromForms(n, Forms{domain.StageRoom: {"width": "4"}})
		assert.Equal(t, 4.0, room.Width)
	})
	t.Run("usage overrides product", func(t *testing.T) {
		forms := Forms{
			domain.StageProduct: {"numberOfPeople": "3", "capacityRequired": "1500"},
			domain.StageUsage:   {"numberOfPeople": "5", "trayHeatersQty": "2"},
		}
		_, _, prod := BlastFreezerFromForms(n, forms)
		assert.Equal(t, 5.0, prod.People)
		assert.Equal(t, 1500.0, prod.CapacityRequired)
		assert.Equal(t, HeaterGroup{Qty: 2, CapacityKW: 2.2}, prod.TrayHeaters)
	})
}

func TestFreezerFromFormsOptionalOverrides(t *testing.T) {
	n := normalize.New(zerolog.Nop())
	forms := Forms{
		domain.StageConditions: {"airFlowPerFan": "1800"},
		domain.StageProduct:    {"customCpAbove": "3.3", "customCpBelow": ""},
	}

	_, _, prod := FreezerFromForms(n, forms)
	require.NotNil(t, prod.CustomCpAbove)
	assert.Equal(t, 3.3, *prod.CustomCpAbove)
	assert.Nil(t, prod.CustomCpBelow)
	assert.Nil(t, prod.CustomLatentHeat)
	assert.Equal(t, 1800.0, prod.FanAirFlowRate)
}
