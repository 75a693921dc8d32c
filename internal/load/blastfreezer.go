package load

import (
	"math"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/thermal"
)

const (
	blastFallbackUFactor   = 0.153
	blastAirChangeRate     = 4.2  // changes per hour
	blastAirEnthalpyDiff   = 0.14 // kJ/kg
	blastPersonHeatLoad    = 1800 // W per person
	blastSafetyFactor      = 1.05
	blastAirDensity        = 1.2  // kg/m³
	blastAirSpecificHeat   = 1005 // J/kg·K
	blastFallbackProduct   = thermal.GeneralFood
	blastReferenceDayHours = 24
)

// HeaterGroup is a set of identical heaters.
type HeaterGroup struct {
	Qty        float64 `json:"qty"`
	CapacityKW float64 `json:"capacity"`
}

func (h HeaterGroup) installedKW() float64 { return h.Qty * h.CapacityKW }

// BlastFreezerRoom carries geometry and per-surface insulation. Walls,
// ceiling and floor may use different panel thicknesses.
type BlastFreezerRoom struct {
	Geometry
	DoorClearOpening         float64            `json:"doorClearOpening"`
	Insulation               thermal.Insulation `json:"insulationType"`
	WallThicknessMM          float64            `json:"wallThickness"`
	CeilingThicknessMM       float64            `json:"ceilingThickness"`
	FloorThicknessMM         float64            `json:"floorThickness"`
	InternalFloorThicknessMM float64            `json:"internalFloorThickness"`
}

type BlastFreezerConditions struct {
	AmbientTemp    float64 `json:"ambientTemp"`
	RoomTemp       float64 `json:"roomTemp"`
	BatchHours     float64 `json:"batchHours"`
	OperatingHours float64 `json:"operatingHours"`
}

type BlastFreezerProduct struct {
	ProductType      string  `json:"productType"`
	CapacityRequired float64 `json:"capacityRequired"` // kg per batch
	IncomingTemp     float64 `json:"incomingTemp"`
	OutgoingTemp     float64 `json:"outgoingTemp"`
	StorageDensity   float64 `json:"storageCapacity"` // kg/m³

	People         float64 `json:"numberOfPeople"`
	WorkingHours   float64 `json:"workingHours"`
	LightLoadKW    float64 `json:"lightLoad"`
	FanMotorRating float64 `json:"fanMotorRating"` // kW
	AirFlowPerFan  float64 `json:"airFlowPerFan"`  // CFM

	PeripheralHeaters HeaterGroup `json:"peripheralHeaters"`
	DoorHeaters       HeaterGroup `json:"doorHeaters"`
	TrayHeaters       HeaterGroup `json:"trayHeaters"`
	DrainHeaters      HeaterGroup `json:"drainHeaters"`
}

type SurfaceUFactors struct {
	Walls   float64 `json:"walls"`
	Ceiling float64 `json:"ceiling"`
	Floor   float64 `json:"floor"`
}

type BlastTransmission struct {
	KW SurfaceLoads `json:"kw"`
	TR SurfaceLoads `json:"tr"`
}

type BlastAirChange struct {
	LoadTR       float64 `json:"loadTR"`
	LoadKW       float64 `json:"loadKW"`
	ChangeRate   float64 `json:"airChangeRate"`
	EnthalpyDiff float64 `json:"enthalpyDiff"`
	KJPerBatch   float64 `json:"totalKJDay"`
}

// BlastInternal loads are in TR.
type BlastInternal struct {
	Occupancy         float64 `json:"occupancy"`
	Lighting          float64 `json:"lighting"`
	Equipment         float64 `json:"equipment"`
	PeripheralHeaters float64 `json:"peripheralHeaters"`
	DoorHeaters       float64 `json:"doorHeaters"`
	TrayHeaters       float64 `json:"trayHeaters"`
	DrainHeaters      float64 `json:"drainHeaters"`
	TotalHeaters      float64 `json:"totalHeaters"`
	Total             float64 `json:"total"`
}

type BlastStorage struct {
	Maximum     float64 `json:"maximum"`
	Utilization float64 `json:"utilization"`
	Density     float64 `json:"density"`
}

type EngineeringOutputs struct {
	LoadKJPerBatch     float64 `json:"loadKJPerBatch"`
	LoadKW             float64 `json:"loadKW"`
	SensibleHeatKJ24Hr float64 `json:"sensibleHeatKJ24Hr"`
	LatentHeatKJ24Hr   float64 `json:"latentHeatKJ24Hr"`
	SHR                float64 `json:"shr"`
	AirQtyRequiredCFM  float64 `json:"airQtyRequiredCfm"`
}

type EquipmentSummary struct {
	TotalFanLoad      float64 `json:"totalFanLoad"`
	TotalHeaterLoad   float64 `json:"totalHeaterLoad"`
	TotalLightingLoad float64 `json:"totalLightingLoad"`
	TotalPeopleLoad   float64 `json:"totalPeopleLoad"`
}

type BlastFreezerResult struct {
	Input struct {
		Room       BlastFreezerRoom       `json:"room"`
		Conditions BlastFreezerConditions `json:"conditions"`
		Product    BlastFreezerProduct    `json:"product"`
	} `json:"input"`

	Areas                 Areas              `json:"areas"`
	Volume                float64            `json:"volume"`
	TemperatureDifference float64            `json:"temperatureDifference"`
	UFactors              SurfaceUFactors    `json:"uFactors"`
	ProductType           string             `json:"productType"`
	Properties            thermal.Properties `json:"properties"`
	Storage               BlastStorage       `json:"storageCapacity"`

	Transmission BlastTransmission `json:"transmission"`
	Product      ProductStages     `json:"product"` // TR
	AirChange    BlastAirChange    `json:"airChange"`
	Internal     BlastInternal     `json:"internal"`

	TotalLoadTR    float64 `json:"totalCalculatedTR"`
	TotalLoadKW    float64 `json:"totalCalculatedKW"`
	SafetyFactor   float64 `json:"safetyFactor"`
	SafetyMarginTR float64 `json:"safetyFactorTR"`
	FinalLoadTR    float64 `json:"finalLoadTR"`
	FinalLoadKW    float64 `json:"finalLoadKW"`
	TotalBTU       float64 `json:"totalBTU"`
	DailyEnergyKWh float64 `json:"dailyEnergyConsumption"`

	Engineering EngineeringOutputs `json:"engineeringOutputs"`
	Equipment   EquipmentSummary   `json:"equipmentSummary"`
}

func (r *BlastFreezerResult) Room() domain.RoomType { return domain.BlastFreezer }

// Summary reports the per-category loads in kW. Heaters are split out of the
// internal load so the report can list them separately.
func (r *BlastFreezerResult) Summary() Summary {
	in := r.Input
	kw := func(tr float64) float64 { return tr * thermal.KWPerTR }
	s := Summary{
		Room:                  domain.BlastFreezer,
		ExternalTemp:          in.Conditions.AmbientTemp,
		InternalTemp:          in.Conditions.RoomTemp,
		TemperatureDifference: r.TemperatureDifference,
		OperatingHours:        in.Conditions.OperatingHours,
		BatchHours:            in.Conditions.BatchHours,
		Insulation:            string(in.Room.Insulation),
		ThicknessMM:           in.Room.WallThicknessMM,
		UFactor:               r.UFactors.Walls,
		ProductType:           r.ProductType,
		ProductMass:           in.Product.CapacityRequired,
		IncomingTemp:          in.Product.IncomingTemp,
		OutgoingTemp:          in.Product.OutgoingTemp,
		StorageCapacity:       r.Storage.Maximum,
		StorageUtilization:    r.Storage.Utilization,
		Loads: LoadTotals{
			Transmission: r.Transmission.KW.Total,
			Product:      kw(r.Product.Total),
			AirChange:    r.AirChange.LoadKW,
			Internal:     kw(r.Internal.Total - r.Internal.TotalHeaters),
			Heaters:      kw(r.Internal.TotalHeaters),
		},
		TotalSensible:     kw(r.Transmission.TR.Total + r.Product.SensibleAbove + r.Product.SensibleBelow + r.Internal.Total),
		TotalLatent:       kw(r.Product.Latent),
		SHR:               r.Engineering.SHR,
		TotalBeforeSafety: r.TotalLoadKW,
		SafetyFactor:      r.SafetyFactor,
		FinalLoad:         r.FinalLoadKW,
		TotalTR:           r.FinalLoadTR,
		TotalBTU:          r.TotalBTU,
		DailyEnergyKWh:    r.DailyEnergyKWh,
	}
	s.setGeometry(in.Room.Geometry, r.Areas, r.Volume)
	return s
}

// CalculateBlastFreezer sizes one freezing batch. Loads are summed in TR and
// converted back to kW once the safety factor has been applied. Transmission is
// instantaneous and the air change runs over the batch rather than the day.
func CalculateBlastFreezer(room BlastFreezerRoom, cond BlastFreezerConditions, prod BlastFreezerProduct) (*BlastFreezerResult, error) {
	if err := firstErr(
		room.Geometry.validate(),
		requirePositive("wallThickness", room.WallThicknessMM),
		requirePositive("ceilingThickness", room.CeilingThicknessMM),
		requirePositive("floorThickness", room.FloorThicknessMM),
		requirePositive("batchHours", cond.BatchHours),
		requireDailyHours("operatingHours", cond.OperatingHours),
	); err != nil {
		return nil, err
	}

	r := &BlastFreezerResult{}
	r.Input.Room, r.Input.Conditions, r.Input.Product = room, cond, prod

	areas := room.Areas()
	volume := room.Volume()
	dT := cond.AmbientTemp - cond.RoomTemp
	r.Areas, r.Volume, r.TemperatureDifference = areas, volume, dT

	r.UFactors = SurfaceUFactors{
		Walls:   blastUFactor(room.Insulation, room.WallThicknessMM),
		Ceiling: blastUFactor(room.Insulation, room.CeilingThicknessMM),
		Floor:   blastUFactor(room.Insulation, room.FloorThicknessMM),
	}

	r.ProductType = prod.ProductType
	props, ok := thermal.Product(thermal.BlastFreezerProducts, prod.ProductType)
	if !ok {
		r.ProductType = blastFallbackProduct
		props, _ = thermal.Product(thermal.BlastFreezerProducts, blastFallbackProduct)
	}
	r.Properties = props

	maxStorage := volume * prod.StorageDensity * props.StorageEfficiency
	r.Storage = BlastStorage{
		Maximum:     maxStorage,
		Utilization: utilization(prod.CapacityRequired, maxStorage),
		Density:     prod.StorageDensity,
	}

	walls := r.UFactors.Walls * areas.Wall * dT / 1000
	ceiling := r.UFactors.Ceiling * areas.Ceiling * dT / 1000
	floor := r.UFactors.Floor * areas.Floor * dT / 1000
	r.Transmission = BlastTransmission{
		KW: newSurfaceLoads(walls, ceiling, floor),
		TR: newSurfaceLoads(walls/thermal.KWPerTR, ceiling/thermal.KWPerTR, floor/thermal.KWPerTR),
	}

	r.Product = blastProductLoad(prod, props)

	airKJ := blastAirChangeRate * volume * blastAirEnthalpyDiff * cond.BatchHours
	r.AirChange = BlastAirChange{
		LoadTR:       airKJ / thermal.WPerTR,
		LoadKW:       airKJ / thermal.WPerTR * thermal.KWPerTR,
		ChangeRate:   blastAirChangeRate,
		EnthalpyDiff: blastAirEnthalpyDiff,
		KJPerBatch:   airKJ,
	}

	r.Internal = blastInternalLoads(prod, cond.OperatingHours)

	total := r.Transmission.TR.Total + r.Product.Total + r.AirChange.LoadTR + r.Internal.Total
	r.TotalLoadTR = total
	r.TotalLoadKW = total * thermal.KWPerTR
	r.SafetyFactor = blastSafetyFactor
	r.FinalLoadTR = total * blastSafetyFactor
	r.SafetyMarginTR = r.FinalLoadTR - total
	r.FinalLoadKW = r.FinalLoadTR * thermal.KWPerTR
	r.TotalBTU = r.FinalLoadKW * thermal.BTUPerKW
	r.DailyEnergyKWh = r.FinalLoadKW * 24

	batchesPerDay := blastReferenceDayHours / cond.BatchHours
	sensibleTR := r.Transmission.TR.Total + r.Product.SensibleAbove + r.Product.SensibleBelow + r.Internal.Total
	eng := EngineeringOutputs{
		LoadKJPerBatch:     total * thermal.WPerTR * cond.BatchHours,
		LoadKW:             r.TotalLoadKW,
		SensibleHeatKJ24Hr: (r.Product.SensibleAbove + r.Product.SensibleBelow) * thermal.WPerTR * batchesPerDay,
		LatentHeatKJ24Hr:   r.Product.Latent * thermal.WPerTR * batchesPerDay,
		SHR:                sensibleHeatRatio(sensibleTR, r.Product.Latent),
	}
	// No temperature lift means no air quantity can be derived.
	if dT != 0 {
		eng.AirQtyRequiredCFM = total * thermal.WPerTR * 1000 / (blastAirDensity * blastAirSpecificHeat * math.Abs(dT))
	}
	r.Engineering = eng

	r.Equipment = EquipmentSummary{
		TotalFanLoad: prod.FanMotorRating,
		TotalHeaterLoad: prod.PeripheralHeaters.installedKW() + prod.DoorHeaters.installedKW() +
			prod.TrayHeaters.installedKW() + prod.DrainHeaters.installedKW(),
		TotalLightingLoad: prod.LightLoadKW,
		TotalPeopleLoad:   prod.People * blastPersonHeatLoad * prod.WorkingHours / (1000 * 24),
	}

	var fc finiteCheck
	fc.check("transmission", r.Transmission.KW.Total)
	fc.check("product", r.Product.Total)
	fc.check("airChange", r.AirChange.LoadTR)
	fc.check("internal", r.Internal.Total)
	fc.check("storageUtilization", r.Storage.Utilization)
	fc.check("finalLoad", r.FinalLoadKW)
	fc.check("airQtyRequiredCfm", r.Engineering.AirQtyRequiredCFM)
	if fc.err != nil {
		return nil, fc.err
	}
	return r, nil
}

// blastUFactor is U = k / thickness(m). An insulation without a known
// conductivity uses the fixed fallback.
func blastUFactor(ins thermal.Insulation, thicknessMM float64) float64 {
	k, ok := thermal.Conductivity(ins)
	if !ok {
		return blastFallbackUFactor
	}
	return k / (thicknessMM / 1000)
}

func blastProductLoad(prod BlastFreezerProduct, props thermal.Properties) ProductStages {
	fp := props.FreezingPoint
	m := prod.CapacityRequired

	var above, latent, below float64
	if prod.IncomingTemp > fp {
		above = m * props.SpecificHeatAbove * (prod.IncomingTemp - fp) / thermal.WPerTR
	}
	if prod.OutgoingTemp < fp && prod.IncomingTemp > fp {
		latent = m * props.LatentHeat / thermal.WPerTR
	}
	// The frozen stage always starts at the freezing point, whatever the
	// incoming temperature.
	if prod.OutgoingTemp < fp {
		below = m * props.SpecificHeatBelow * (fp - prod.OutgoingTemp) / thermal.WPerTR
	}
	return newProductStages(above, latent, below)
}

func blastInternalLoads(prod BlastFreezerProduct, hours float64) BlastInternal {
	perDay := thermal.WPerTR * blastReferenceDayHours
	heater := func(h HeaterGroup) float64 { return h.installedKW() * 1000 * hours / perDay }

	in := BlastInternal{
		Occupancy:         prod.People * blastPersonHeatLoad * prod.WorkingHours / perDay,
		Lighting:          prod.LightLoadKW * 1000 * hours / perDay,
		Equipment:         prod.FanMotorRating * 1000 * hours / perDay,
		PeripheralHeaters: heater(prod.PeripheralHeaters),
		DoorHeaters:       heater(prod.DoorHeaters),
		TrayHeaters:       heater(prod.TrayHeaters),
		DrainHeaters:      heater(prod.DrainHeaters),
	}
	in.TotalHeaters = in.PeripheralHeaters + in.DoorHeaters + in.TrayHeaters + in.DrainHeaters
	in.Total = in.Occupancy + in.Lighting + in.Equipment + in.TotalHeaters
	return in
}
