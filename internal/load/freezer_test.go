package load

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/coolcalc/internal/thermal"
)

func freezerInputs() (FreezerRoom, FreezerConditions, FreezerProduct) {
	room := FreezerRoom{
		Geometry:              Geometry{Length: 4, Width: 3, Height: 2.5, DoorWidth: 1, DoorHeight: 2},
		DoorOpenings:          15,
		Insulation:            thermal.PUF,
		InsulationThicknessMM: 150,
	}
	cond := FreezerConditions{ExternalTemp: 35, InternalTemp: -18, OperatingHours: 24, PullDownHours: 10}
	prod := FreezerProduct{
		ProductType:       thermal.GeneralFood,
		StorageType:       "Boxed",
		DailyLoad:         1000,
		IncomingTemp:      25,
		OutgoingTemp:      -18,
		People:            2,
		WorkingHours:      4,
		LightingWattage:   150,
		EquipmentWattage:  300,
		FanMotorRating:    0.37,
		NumberOfFans:      6,
		FanOperatingHours: 24,
		FanAirFlowRate:    2000,
		DoorHeatersLoad:   0.24,
		TrayHeatersLoad:   2.0,
	}
	return room, cond, prod
}

func TestFreezerTransmission(t *testing.T) {
	res, err := CalculateFreezer(freezerInputs())
	require.NoError(t, err)

	assert.InDelta(t, 35.0, res.Areas.Wall, 1e-9)
	assert.InDelta(t, 0.17, res.UFactor, 1e-12)
	assert.InDelta(t, 7.5684, res.Transmission.Walls, 1e-9)
	assert.InDelta(t, 2.59488, res.Transmission.Ceiling, 1e-9)
	assert.InDelta(t, 2.59488, res.Transmission.Floor, 1e-9)
	assert.InDelta(t, 7.5684+2*2.59488, res.Transmission.Total, 1e-9)
}

func TestFreezerProductStages(t *testing.T) {
	// General Food Items freeze at -2°C.
	tests := []struct {
		name              string
		in, out           float64
		above, lat, below float64
	}{
		{name: "through freezing", in: 25, out: -18, above: 1000 * 3.0 * 27 / 36, lat: 1000 * 200.0 / 36, below: 1000 * 1.6 * 16 / 36},
		{name: "already frozen", in: -5, out: -18, above: 0, lat: 0, below: 1000 * 1.6 * 16 / 36},
		{name: "chilled only", in: 25, out: 0, above: 1000 * 3.0 * 27 / 36, lat: 0, below: 0},
		{name: "at freezing point", in: -2, out: -2, above: 0, lat: 0, below: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, cond, prod := freezerInputs()
			prod.IncomingTemp, prod.OutgoingTemp = tt.in, tt.out

			res, err := CalculateFreezer(room, cond, prod)
			require.NoError(t, err)
			assert.InDelta(t, tt.above, res.Product.SensibleAbove, 1e-9)
			assert.InDelta(t, tt.lat, res.Product.Latent, 1e-9)
			assert.InDelta(t, tt.below, res.Product.SensibleBelow, 1e-9)
		})
	}
}

func TestFreezerCustomProperties(t *testing.T) {
	room, cond, prod := freezerInputs()
	cp := 2.0
	prod.CustomCpAbove = &cp

	res, err := CalculateFreezer(room, cond, prod)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Properties.SpecificHeatAbove)
	assert.InDelta(t, 1000*2.0*27/36, res.Product.SensibleAbove, 1e-9)
}

func TestFreezerDoorAndInternal(t *testing.T) {
	res, err := CalculateFreezer(freezerInputs())
	require.NoError(t, err)

	assert.InDelta(t, 2.25, res.DoorOpening.Infiltration, 1e-9)
	assert.Equal(t, 0.24, res.DoorOpening.Heaters)

	assert.InDelta(t, 2*0.407*4/24.0, res.Internal.Occupancy, 1e-12)
	assert.InDelta(t, 0.15, res.Internal.Lighting, 1e-12)
	assert.InDelta(t, 0.3, res.Internal.Equipment, 1e-12)
	assert.InDelta(t, 0.37*6, res.Internal.FanMotor, 1e-12)
	assert.InDelta(t, 2.0, res.Internal.TrayHeaters, 1e-12)
}

func TestFreezerSmallDoorHasNoHeater(t *testing.T) {
	room, cond, prod := freezerInputs()
	room.DoorWidth, room.DoorHeight = 0.9, 1.9

	res, err := CalculateFreezer(room, cond, prod)
	require.NoError(t, err)
	assert.Zero(t, res.DoorOpening.Heaters)
}

func TestFreezerTotals(t *testing.T) {
	res, err := CalculateFreezer(freezerInputs())
	require.NoError(t, err)

	assert.Equal(t, res.TotalBeforeSafe*1.10, res.FinalLoad)
	assert.Equal(t, res.TotalSensible+res.TotalLatent, res.TotalBeforeSafe)
	assert.InDelta(t, res.TotalSensible/(res.TotalSensible+res.TotalLatent), res.SHR, 1e-12)
	assert.InDelta(t, res.FinalLoad/3.517, res.TotalTR, 1e-9)
	assert.InDelta(t, res.FinalLoad*3412, res.TotalBTU, 1e-6)

	// 24 m³ at 800 kg/m³, 65% efficiency, boxed packing.
	assert.InDelta(t, 30*800*0.65*0.65, res.Storage.Maximum, 1e-6)
	assert.Equal(t, 12000.0, res.TotalAirFlow)
}

func TestFreezerUnknownLookupsFallBack(t *testing.T) {
	room, cond, prod := freezerInputs()
	room.InsulationThicknessMM = 90
	prod.ProductType = "Kryptonite"
	prod.StorageType = "Stacked"

	res, err := CalculateFreezer(room, cond, prod)
	require.NoError(t, err)
	assert.Equal(t, 0.17, res.UFactor)
	assert.Equal(t, thermal.GeneralFood, res.ProductType)
	assert.Equal(t, "Boxed", res.Storage.StorageType)
}

func TestFreezerDegenerateInputs(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*FreezerRoom, *FreezerConditions)
		field string
	}{
		{name: "zero operating hours", edit: func(_ *FreezerRoom, c *FreezerConditions) { c.OperatingHours = 0 }, field: "operatingHours"},
		{name: "more than a day", edit: func(_ *FreezerRoom, c *FreezerConditions) { c.OperatingHours = 25 }, field: "operatingHours"},
		{name: "zero pull down", edit: func(_ *FreezerRoom, c *FreezerConditions) { c.PullDownHours = 0 }, field: "pullDownTime"},
		{name: "negative length", edit: func(r *FreezerRoom, _ *FreezerConditions) { r.Length = -1 }, field: "length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, cond, prod := freezerInputs()
			tt.edit(&room, &cond)

			res, err := CalculateFreezer(room, cond, prod)
			assert.Nil(t, res)
			var degenerate *DegenerateInputError
			require.True(t, errors.As(err, &degenerate))
			assert.Equal(t, tt.field, degenerate.Field)
		})
	}
}

func TestFreezerZeroGeometry(t *testing.T) {
	room, cond, prod := freezerInputs()
	room.Geometry = Geometry{}

	res, err := CalculateFreezer(room, cond, prod)
	require.NoError(t, err)
	assert.Zero(t, res.Volume)
	assert.Zero(t, res.Transmission.Total)
	assert.Zero(t, res.AirChange.Load)
	assert.Zero(t, res.Storage.Utilization)
}

func TestFreezerIsIdempotent(t *testing.T) {
	room, cond, prod := freezerInputs()
	lat := 210.0
	prod.CustomLatentHeat = &lat

	first, err := CalculateFreezer(room, cond, prod)
	require.NoError(t, err)
	second, err := CalculateFreezer(room, cond, prod)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeat calculation differs (-first +second):\n%s", diff)
	}
}

func TestFreezerSummary(t *testing.T) {
	res, err := CalculateFreezer(freezerInputs())
	require.NoError(t, err)

	s := res.Summary()
	assert.Equal(t, res.Room(), s.Room)
	assert.True(t, s.Loads.DoorExcluded)
	assert.Equal(t, 30.0, s.Volume)
	assert.Equal(t, 53.0, s.TemperatureDifference)
	assert.Equal(t, res.FinalLoad, s.FinalLoad)
	assert.Equal(t, 1.10, s.SafetyFactor)
	assert.Equal(t, res.DoorOpening.Total, s.Loads.Door)
	assert.InDelta(t, res.FinalLoad*24, s.DailyEnergyKWh, 1e-9)
}
