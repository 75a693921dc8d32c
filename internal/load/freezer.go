package load

import (
	"math"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/thermal"
)

const (
	freezerFallbackUFactor    = 0.17
	freezerAirChangeRate      = 0.5    // changes per hour
	freezerEnthalpyDiff       = 0.1203 // kJ/L
	freezerDoorInfiltration   = 1800.0
	freezerDoorHeaterLoad     = 0.24 // kW, fitted to doors above the threshold
	freezerDoorHeaterArea     = 1.8  // m²
	freezerPersonHeatLoad     = 0.407
	freezerSafetyFactor       = 1.10
	freezerFallbackStorage    = "Boxed"
	freezerFallbackProduct    = thermal.GeneralFood
	freezerProductLoadDivisor = 3.6
)

// FreezerRoom is the room stage of a freezer: geometry plus panel construction.
type FreezerRoom struct {
	Geometry
	DoorOpenings             float64            `json:"doorOpenings"`
	Insulation               thermal.Insulation `json:"insulationType"`
	InsulationThicknessMM    int                `json:"insulationThickness"`
	InternalFloorThicknessMM float64            `json:"internalFloorThickness"`
	NumberOfFloors           float64            `json:"numberOfFloors"`
}

type FreezerConditions struct {
	ExternalTemp        float64 `json:"externalTemp"`
	InternalTemp        float64 `json:"internalTemp"`
	OperatingHours      float64 `json:"operatingHours"`
	PullDownHours       float64 `json:"pullDownTime"`
	RoomHumidity        float64 `json:"roomHumidity"`
	SteamHumidifierLoad float64 `json:"steamHumidifierLoad"` // kW
}

// FreezerProduct carries the product and the usage loads of the room.
// Custom values, when set, override the product table.
type FreezerProduct struct {
	ProductType  string  `json:"productType"`
	StorageType  string  `json:"storageType"`
	DailyLoad    float64 `json:"dailyLoad"` // kg
	IncomingTemp float64 `json:"incomingTemp"`
	OutgoingTemp float64 `json:"outgoingTemp"`

	People           float64 `json:"numberOfPeople"`
	WorkingHours     float64 `json:"workingHours"`
	LightingWattage  float64 `json:"lightingWattage"` // W
	EquipmentWattage float64 `json:"equipmentLoad"`   // W

	FanMotorRating    float64 `json:"fanMotorRating"` // kW
	NumberOfFans      float64 `json:"numberOfFans"`
	FanOperatingHours float64 `json:"fanOperatingHours"`
	FanAirFlowRate    float64 `json:"fanAirFlowRate"` // CFM per fan

	DoorHeatersLoad       float64 `json:"doorHeatersLoad"` // kW
	TrayHeatersLoad       float64 `json:"trayHeatersLoad"`
	PeripheralHeatersLoad float64 `json:"peripheralHeatersLoad"`

	CustomCpAbove    *float64 `json:"customCpAbove,omitempty"`
	CustomCpBelow    *float64 `json:"customCpBelow,omitempty"`
	CustomLatentHeat *float64 `json:"customLatentHeat,omitempty"`
}

type FreezerStorage struct {
	Maximum       float64 `json:"maximum"` // kg
	Utilization   float64 `json:"utilization"`
	StorageFactor float64 `json:"storageFactor"`
	StorageType   string  `json:"storageType"`
}

type FreezerAirChange struct {
	Load         float64 `json:"load"`
	AirFlowLPerS float64 `json:"airFlowLperS"`
	EnthalpyDiff float64 `json:"enthalpyDiff"`
	ChangeRate   float64 `json:"airChangeRate"`
	KJDay        float64 `json:"airFlowKJDay"`
}

type FreezerDoor struct {
	Infiltration      float64 `json:"infiltration"`
	Heaters           float64 `json:"heaters"`
	Total             float64 `json:"total"`
	ClearOpening      float64 `json:"doorClearOpening"`
	InfiltrationKJDay float64 `json:"infiltrationKJDay"`
}

type FreezerInternal struct {
	Occupancy         float64 `json:"occupancy"`
	Lighting          float64 `json:"lighting"`
	Equipment         float64 `json:"equipment"`
	FanMotor          float64 `json:"fanMotor"`
	DoorHeaters       float64 `json:"doorHeaters"`
	TrayHeaters       float64 `json:"trayHeaters"`
	PeripheralHeaters float64 `json:"peripheralHeaters"`
	SteamHumidifiers  float64 `json:"steamHumidifiers"`
	Total             float64 `json:"total"`
}

type FreezerResult struct {
	Input struct {
		Room       FreezerRoom       `json:"room"`
		Conditions FreezerConditions `json:"conditions"`
		Product    FreezerProduct    `json:"product"`
	} `json:"input"`

	Areas                 Areas              `json:"areas"`
	Volume                float64            `json:"volume"`
	TemperatureDifference float64            `json:"temperatureDifference"`
	UFactor               float64            `json:"uFactor"`
	ProductType           string             `json:"productType"`
	Properties            thermal.Properties `json:"properties"`
	Storage               FreezerStorage     `json:"storageCapacity"`
	TotalAirFlow          float64            `json:"totalAirFlow"` // CFM

	Transmission     SurfaceLoads     `json:"transmission"`
	TransmissionKJ   SurfaceLoads     `json:"transmissionKJDay"`
	Product          ProductStages    `json:"product"`
	AirChange        FreezerAirChange `json:"airChange"`
	DoorOpening      FreezerDoor      `json:"doorOpening"`
	Internal         FreezerInternal  `json:"internal"`
	TotalSensible    float64          `json:"totalSensible"`
	TotalLatent      float64          `json:"totalLatent"`
	SHR              float64          `json:"shr"`
	TotalBeforeSafe  float64          `json:"totalBeforeSafety"`
	SafetyMargin     float64          `json:"safetyFactorLoad"`
	FinalLoad        float64          `json:"finalLoad"`
	TotalTR          float64          `json:"totalTR"`
	TotalBTU         float64          `json:"totalBTU"`
	DailyEnergyKWh   float64          `json:"dailyEnergy"`
	SafetyFactorUsed float64          `json:"safetyFactor"`
}

func (r *FreezerResult) Room() domain.RoomType { return domain.Freezer }

func (r *FreezerResult) Summary() Summary {
	in := r.Input
	s := Summary{
		Room:                  domain.Freezer,
		ExternalTemp:          in.Conditions.ExternalTemp,
		InternalTemp:          in.Conditions.InternalTemp,
		TemperatureDifference: r.TemperatureDifference,
		OperatingHours:        in.Conditions.OperatingHours,
		PullDownHours:         in.Conditions.PullDownHours,
		DoorOpenings:          in.Room.DoorOpenings,
		Insulation:            string(in.Room.Insulation),
		ThicknessMM:           float64(in.Room.InsulationThicknessMM),
		UFactor:               r.UFactor,
		ProductType:           r.ProductType,
		ProductMass:           in.Product.DailyLoad,
		IncomingTemp:          in.Product.IncomingTemp,
		OutgoingTemp:          in.Product.OutgoingTemp,
		StorageCapacity:       r.Storage.Maximum,
		StorageUtilization:    r.Storage.Utilization,
		Loads: LoadTotals{
			Transmission: r.Transmission.Total,
			Product:      r.Product.Total,
			AirChange:    r.AirChange.Load,
			Internal:     r.Internal.Total,
			Door:         r.DoorOpening.Total,
			DoorExcluded: true,
		},
		TotalSensible:     r.TotalSensible,
		TotalLatent:       r.TotalLatent,
		SHR:               r.SHR,
		TotalBeforeSafety: r.TotalBeforeSafe,
		SafetyFactor:      r.SafetyFactorUsed,
		FinalLoad:         r.FinalLoad,
		TotalTR:           r.TotalTR,
		TotalBTU:          r.TotalBTU,
		DailyEnergyKWh:    r.DailyEnergyKWh,
	}
	s.setGeometry(in.Room.Geometry, r.Areas, r.Volume)
	return s
}

// CalculateFreezer computes the cooling load of a storage freezer. Transmission
// is accumulated over the operating hours; product load runs in three stages
// around the product's freezing point over the pull-down time.
func CalculateFreezer(room FreezerRoom, cond FreezerConditions, prod FreezerProduct) (*FreezerResult, error) {
	if err := firstErr(
		room.Geometry.validate(),
		requireDailyHours("operatingHours", cond.OperatingHours),
		requirePositive("pullDownTime", cond.PullDownHours),
	); err != nil {
		return nil, err
	}

	r := &FreezerResult{}
	r.Input.Room, r.Input.Conditions, r.Input.Product = room, cond, prod

	areas := room.Areas()
	volume := room.Volume()
	dT := cond.ExternalTemp - cond.InternalTemp
	hours := cond.OperatingHours
	r.Areas, r.Volume, r.TemperatureDifference = areas, volume, dT

	u, ok := thermal.UFactor(room.Insulation, room.InsulationThicknessMM)
	if !ok {
		u = freezerFallbackUFactor
	}
	r.UFactor = u

	r.ProductType = prod.ProductType
	props, ok := thermal.Product(thermal.FreezerProducts, prod.ProductType)
	if !ok {
		r.ProductType = freezerFallbackProduct
		props, _ = thermal.Product(thermal.FreezerProducts, freezerFallbackProduct)
	}
	if prod.CustomCpAbove != nil {
		props.SpecificHeatAbove = *prod.CustomCpAbove
	}
	if prod.CustomCpBelow != nil {
		props.SpecificHeatBelow = *prod.CustomCpBelow
	}
	if prod.CustomLatentHeat != nil {
		props.LatentHeat = *prod.CustomLatentHeat
	}
	r.Properties = props

	storageType := prod.StorageType
	factor, ok := thermal.StorageFactor(storageType)
	if !ok {
		storageType = freezerFallbackStorage
		factor, _ = thermal.StorageFactor(freezerFallbackStorage)
	}
	maxStorage := volume * props.Density * props.StorageEfficiency * factor
	r.Storage = FreezerStorage{
		Maximum:       maxStorage,
		Utilization:   utilization(prod.DailyLoad, maxStorage),
		StorageFactor: factor,
		StorageType:   storageType,
	}
	r.TotalAirFlow = prod.FanAirFlowRate * prod.NumberOfFans

	// Transmission: Q = U·A·ΔT·hours / 1000
	wallKJ := u * areas.Wall * dT * hours
	ceilingKJ := u * areas.Ceiling * dT * hours
	floorKJ := u * areas.Floor * dT * hours
	r.TransmissionKJ = newSurfaceLoads(wallKJ, ceilingKJ, floorKJ)
	r.Transmission = newSurfaceLoads(wallKJ/1000, ceilingKJ/1000, floorKJ/1000)

	r.Product = freezerProductLoad(prod, props, cond.PullDownHours)

	airFlow := volume * 1000 * freezerAirChangeRate / 3600
	r.AirChange = FreezerAirChange{
		Load:         airFlow * freezerEnthalpyDiff * hours / 1000,
		AirFlowLPerS: airFlow,
		EnthalpyDiff: freezerEnthalpyDiff,
		ChangeRate:   freezerAirChangeRate,
		KJDay:        airFlow * freezerEnthalpyDiff * hours,
	}

	doorArea := areas.Door
	door := FreezerDoor{
		Infiltration:      room.DoorOpenings * doorArea * freezerDoorInfiltration / (hours * 1000),
		ClearOpening:      doorArea,
		InfiltrationKJDay: room.DoorOpenings * doorArea * freezerDoorInfiltration * hours / 1000,
	}
	if doorArea > freezerDoorHeaterArea {
		door.Heaters = freezerDoorHeaterLoad
	}
	door.Total = door.Infiltration + door.Heaters
	r.DoorOpening = door

	duty := hours / 24
	in := FreezerInternal{
		Occupancy:         prod.People * freezerPersonHeatLoad * prod.WorkingHours / 24,
		Lighting:          prod.LightingWattage * hours / (1000 * 24),
		Equipment:         prod.EquipmentWattage * hours / (1000 * 24),
		FanMotor:          prod.FanMotorRating * prod.NumberOfFans * (prod.FanOperatingHours / 24),
		DoorHeaters:       prod.DoorHeatersLoad * duty,
		TrayHeaters:       prod.TrayHeatersLoad * duty,
		PeripheralHeaters: prod.PeripheralHeatersLoad * duty,
		SteamHumidifiers:  cond.SteamHumidifierLoad * duty,
	}
	in.Total = in.Occupancy + in.Lighting + in.Equipment + in.FanMotor +
		in.DoorHeaters + in.TrayHeaters + in.PeripheralHeaters + in.SteamHumidifiers
	r.Internal = in

	// Door infiltration is reported but not summed: the door heater share is
	// already carried by the internal door-heater load.
	r.TotalSensible = r.Transmission.Total + r.Product.SensibleAbove + r.Product.SensibleBelow +
		r.AirChange.Load + in.Occupancy + in.Lighting + in.Equipment + in.FanMotor +
		in.DoorHeaters + in.TrayHeaters + in.PeripheralHeaters
	r.TotalLatent = r.Product.Latent + in.SteamHumidifiers
	r.TotalBeforeSafe = r.TotalSensible + r.TotalLatent
	r.SHR = sensibleHeatRatio(r.TotalSensible, r.TotalLatent)

	r.SafetyFactorUsed = freezerSafetyFactor
	r.FinalLoad = r.TotalBeforeSafe * freezerSafetyFactor
	r.SafetyMargin = r.FinalLoad - r.TotalBeforeSafe
	r.TotalTR = r.FinalLoad / thermal.KWPerTR
	r.TotalBTU = r.FinalLoad * thermal.BTUPerKW
	r.DailyEnergyKWh = r.FinalLoad * 24

	var fc finiteCheck
	fc.check("transmission", r.Transmission.Total)
	fc.check("product", r.Product.Total)
	fc.check("airChange", r.AirChange.Load)
	fc.check("doorOpening", r.DoorOpening.Total)
	fc.check("internal", r.Internal.Total)
	fc.check("storageUtilization", r.Storage.Utilization)
	fc.check("finalLoad", r.FinalLoad)
	fc.check("shr", r.SHR)
	if fc.err != nil {
		return nil, fc.err
	}
	return r, nil
}

func freezerProductLoad(prod FreezerProduct, props thermal.Properties, pullDown float64) ProductStages {
	fp := props.FreezingPoint
	div := pullDown * freezerProductLoadDivisor

	var above, latent, below float64
	if prod.IncomingTemp > fp {
		above = prod.DailyLoad * props.SpecificHeatAbove * (prod.IncomingTemp - fp) / div
	}
	if prod.OutgoingTemp < fp && prod.IncomingTemp > fp {
		latent = prod.DailyLoad * props.LatentHeat / div
	}
	if prod.OutgoingTemp < fp {
		below = prod.DailyLoad * props.SpecificHeatBelow * math.Abs(fp-prod.OutgoingTemp) / div
	}
	return newProductStages(above, latent, below)
}
