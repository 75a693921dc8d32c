package load

import (
	"math"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/thermal"
)

// Cold room constants come from the reference sheet the room was sized against.
const (
	coldRoomUFactor          = 0.295 // W/m²K, walls, ceiling and floor
	coldRoomTableUFallback   = 0.25
	coldRoomAirFlowRate      = 3.4  // L/s
	coldRoomEnthalpyDiff     = 0.10 // kJ/L
	coldRoomHeaterCapacity   = 0.145
	coldRoomEquipmentLoad    = 0.25 // kW
	coldRoomOccupancyLoad    = 1.0  // kW per person
	coldRoomLightingLoad     = 0.07 // kW
	coldRoomSafetyFactor     = 1.10
	coldRoomCubicFeetPerM3   = 35.31
	coldRoomAirChangesPerMin = 0.3
	coldRoomFallbackProduct  = thermal.Banana
	coldRoomFallbackStorage  = "Palletized"
)

type ColdRoomRoom struct {
	Geometry
	DoorOpenings     float64 `json:"doorOpenings"`
	DoorClearOpening float64 `json:"doorClearOpening"` // mm
	StorageDensity   float64 `json:"storageDensity"`   // kg/m³
	AirFlowPerFan    float64 `json:"airFlowPerFan"`    // CFM
	NumberOfHeaters  float64 `json:"numberOfHeaters"`
	NumberOfDoors    float64 `json:"numberOfDoors"`

	Insulation               thermal.Insulation `json:"insulationType"`
	InsulationThicknessMM    int                `json:"insulationThickness"`
	InternalFloorThicknessMM float64            `json:"internalFloorThickness"`
}

type ColdRoomConditions struct {
	ExternalTemp        float64 `json:"externalTemp"`
	InternalTemp        float64 `json:"internalTemp"`
	OperatingHours      float64 `json:"operatingHours"`
	PullDownHours       float64 `json:"pullDownTime"`
	SteamHumidifierLoad float64 `json:"steamHumidifierLoad"` // kW
}

type ColdRoomProduct struct {
	ProductType     string  `json:"productType"`
	StorageType     string  `json:"storageType"`
	DailyLoad       float64 `json:"dailyLoad"` // kg
	IncomingTemp    float64 `json:"incomingTemp"`
	OutgoingTemp    float64 `json:"outgoingTemp"`
	SpecificHeat    float64 `json:"specificHeatAbove"` // kJ/kg·K
	RespirationRate float64 `json:"respirationRate"`   // W/tonne
	People          float64 `json:"numberOfPeople"`
	WorkingHours    float64 `json:"workingHours"`
	// Lighting and equipment are recorded for the report; the misc loads use
	// the fixed sheet constants.
	LightingWattage  float64 `json:"lightingWattage"`
	EquipmentWattage float64 `json:"equipmentLoad"`
}

type ColdRoomStorage struct {
	Maximum           float64 `json:"maximum"`
	CurrentLoad       float64 `json:"currentLoad"`
	Utilization       float64 `json:"utilization"`
	AvailableCapacity float64 `json:"availableCapacity"`
	StorageFactor     float64 `json:"storageFactor"`
	StorageType       string  `json:"storageType"`
}

type ColdRoomMisc struct {
	Equipment float64 `json:"equipment"`
	Occupancy float64 `json:"occupancy"`
	Lighting  float64 `json:"lighting"`
	Total     float64 `json:"total"`
}

type ColdRoomHeaters struct {
	Peripheral float64 `json:"peripheral"`
	Door       float64 `json:"door"`
	Steam      float64 `json:"steam"`
	Total      float64 `json:"total"`
}

type ColdRoomAirFlow struct {
	RequiredCFM    float64 `json:"requiredCfm"`
	RecommendedCFM float64 `json:"recommendedCfm"`
}

type ColdRoomDailyLoads struct {
	SensibleKJ float64 `json:"sensibleHeatKJ"`
	LatentKJ   float64 `json:"latentHeatKJ"`
	TotalKJ    float64 `json:"totalKJ"`
	SHR        float64 `json:"shr"`
}

type ColdRoomResult struct {
	Input struct {
		Room       ColdRoomRoom       `json:"room"`
		Conditions ColdRoomConditions `json:"conditions"`
		Product    ColdRoomProduct    `json:"product"`
	} `json:"input"`

	Areas                 Areas              `json:"areas"`
	Volume                float64            `json:"volume"`
	TemperatureDifference float64            `json:"temperatureDifference"`
	UFactor               float64            `json:"uFactor"`
	TableUFactor          float64            `json:"tableUFactor"`
	ProductType           string             `json:"productType"`
	Properties            thermal.Properties `json:"properties"`
	Storage               ColdRoomStorage    `json:"storageCapacity"`
	AirFlow               ColdRoomAirFlow    `json:"airFlowInfo"`

	Transmission SurfaceLoads    `json:"transmission"`
	Product      float64         `json:"product"`
	Respiration  float64         `json:"respiration"`
	AirChange    float64         `json:"airChange"`
	DoorOpening  float64         `json:"doorOpening"`
	Misc         ColdRoomMisc    `json:"miscellaneous"`
	Heaters      ColdRoomHeaters `json:"heaters"`

	TotalBeforeSafety float64            `json:"totalBeforeSafety"`
	SafetyMargin      float64            `json:"safetyFactorLoad"`
	SafetyFactor      float64            `json:"safetyFactor"`
	FinalLoad         float64            `json:"finalLoad"`
	TotalTR           float64            `json:"totalTR"`
	TotalBTU          float64            `json:"totalBTU"`
	DailyKJ           float64            `json:"dailyKJ"`
	DailyEnergyKWh    float64            `json:"dailyEnergy"`
	DailyLoads        ColdRoomDailyLoads `json:"dailyLoads"`
}

func (r *ColdRoomResult) Room() domain.RoomType { return domain.ColdRoom }

func (r *ColdRoomResult) Summary() Summary {
	in := r.Input
	s := Summary{
		Room:                  domain.ColdRoom,
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
			Product:      r.Product + r.Respiration,
			AirChange:    r.AirChange,
			Internal:     r.Misc.Total,
			Door:         r.DoorOpening,
			Heaters:      r.Heaters.Total,
		},
		TotalSensible:     r.TotalBeforeSafety,
		SHR:               r.DailyLoads.SHR,
		TotalBeforeSafety: r.TotalBeforeSafety,
		SafetyFactor:      r.SafetyFactor,
		FinalLoad:         r.FinalLoad,
		TotalTR:           r.TotalTR,
		TotalBTU:          r.TotalBTU,
		DailyEnergyKWh:    r.DailyEnergyKWh,
	}
	s.setGeometry(in.Room.Geometry, r.Areas, r.Volume)
	return s
}

// CalculateColdRoom computes the load of a chilled store. Products stay above
// freezing, so the product load is a single sensible stage plus respiration and
// the whole load is sensible.
func CalculateColdRoom(room ColdRoomRoom, cond ColdRoomConditions, prod ColdRoomProduct) (*ColdRoomResult, error) {
	if err := firstErr(
		room.Geometry.validate(),
		requireDailyHours("operatingHours", cond.OperatingHours),
		requirePositive("pullDownTime", cond.PullDownHours),
	); err != nil {
		return nil, err
	}

	r := &ColdRoomResult{}
	r.Input.Room, r.Input.Conditions, r.Input.Product = room, cond, prod

	areas := room.Areas()
	volume := room.Volume()
	dT := cond.ExternalTemp - cond.InternalTemp
	hours := cond.OperatingHours
	duty := hours / 24
	r.Areas, r.Volume, r.TemperatureDifference = areas, volume, dT

	r.UFactor = coldRoomUFactor
	r.TableUFactor = coldRoomTableUFallback
	if u, ok := thermal.UFactor(room.Insulation, room.InsulationThicknessMM); ok {
		r.TableUFactor = u
	}

	r.ProductType = prod.ProductType
	props, ok := thermal.Product(thermal.ColdRoomProducts, prod.ProductType)
	if !ok {
		r.ProductType = coldRoomFallbackProduct
		props, _ = thermal.Product(thermal.ColdRoomProducts, coldRoomFallbackProduct)
	}
	r.Properties = props

	storageType := prod.StorageType
	factor, ok := thermal.StorageFactor(storageType)
	if !ok {
		storageType = coldRoomFallbackStorage
		factor, _ = thermal.StorageFactor(coldRoomFallbackStorage)
	}
	maxStorage := volume * room.StorageDensity
	r.Storage = ColdRoomStorage{
		Maximum:           maxStorage,
		CurrentLoad:       prod.DailyLoad,
		Utilization:       utilization(prod.DailyLoad, maxStorage),
		AvailableCapacity: maxStorage - prod.DailyLoad,
		StorageFactor:     factor,
		StorageType:       storageType,
	}
	r.AirFlow = ColdRoomAirFlow{
		RequiredCFM:    room.AirFlowPerFan,
		RecommendedCFM: math.Max(room.AirFlowPerFan, volume*coldRoomCubicFeetPerM3*coldRoomAirChangesPerMin),
	}

	r.Transmission = newSurfaceLoads(
		coldRoomUFactor*areas.Wall*dT*hours/1000,
		coldRoomUFactor*areas.Ceiling*dT*hours/1000,
		coldRoomUFactor*areas.Floor*dT*hours/1000,
	)
	r.Product = prod.DailyLoad * prod.SpecificHeat * (prod.IncomingTemp - prod.OutgoingTemp) / cond.PullDownHours / 1000
	r.Respiration = (prod.DailyLoad / 1000) * prod.RespirationRate / 1000
	r.AirChange = coldRoomAirFlowRate * coldRoomEnthalpyDiff * hours / 1000
	r.DoorOpening = coldRoomHeaterCapacity * duty

	misc := ColdRoomMisc{
		Equipment: coldRoomEquipmentLoad * duty,
		Occupancy: coldRoomOccupancyLoad * prod.People * duty,
		Lighting:  coldRoomLightingLoad * duty,
	}
	misc.Total = misc.Equipment + misc.Occupancy + misc.Lighting
	r.Misc = misc

	heaters := ColdRoomHeaters{
		Peripheral: coldRoomHeaterCapacity * room.NumberOfHeaters * duty,
		Door:       coldRoomHeaterCapacity * room.NumberOfDoors * duty,
		Steam:      cond.SteamHumidifierLoad * duty,
	}
	heaters.Total = heaters.Peripheral + heaters.Door + heaters.Steam
	r.Heaters = heaters

	r.TotalBeforeSafety = r.Transmission.Total + r.Product + r.Respiration +
		r.AirChange + r.DoorOpening + misc.Total + heaters.Total
	r.SafetyFactor = coldRoomSafetyFactor
	r.FinalLoad = r.TotalBeforeSafety * coldRoomSafetyFactor
	r.SafetyMargin = r.FinalLoad - r.TotalBeforeSafety
	r.TotalTR = r.FinalLoad / thermal.KWPerTR
	r.TotalBTU = r.FinalLoad * thermal.BTUPerKW
	r.DailyKJ = r.FinalLoad * thermal.KJPerKWDay
	r.DailyEnergyKWh = r.FinalLoad * 24
	r.DailyLoads = ColdRoomDailyLoads{
		SensibleKJ: r.FinalLoad * 24 * 3.6,
		TotalKJ:    r.FinalLoad * 24 * 3.6,
		SHR:        1.0,
	}

	var fc finiteCheck
	fc.check("transmission", r.Transmission.Total)
	fc.check("product", r.Product)
	fc.check("respiration", r.Respiration)
	fc.check("heaters", r.Heaters.Total)
	fc.check("storageUtilization", r.Storage.Utilization)
	fc.check("finalLoad", r.FinalLoad)
	if fc.err != nil {
		return nil, fc.err
	}
	return r, nil
}
