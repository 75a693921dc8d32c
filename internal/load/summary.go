package load

import "github.com/ANIKETSHETTY47/coolcalc/internal/domain"

// Result is implemented by every calculator's breakdown. Each category keeps its
// own arithmetic; Summary flattens it into the shared record that reports and
// history consume.
type Result interface {
	Room() domain.RoomType
	Summary() Summary
}

// LoadTotals are the per-category sub-loads in kW.
type LoadTotals struct {
	Transmission float64 `json:"transmission"`
	Product      float64 `json:"product"`
	AirChange    float64 `json:"airChange"`
	Internal     float64 `json:"internal"`
	Door         float64 `json:"door"`
	Heaters      float64 `json:"heaters"`
	// DoorExcluded marks a door load that is reported but not summed.
	DoorExcluded bool `json:"doorExcluded,omitempty"`
}

// Summary is the room-type-neutral calculation result. Temperatures are °C,
// hours are fractional hours, masses kg and loads kW.
type Summary struct {
	Room domain.RoomType `json:"roomType"`

	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	DoorWidth  float64 `json:"doorWidth"`
	DoorHeight float64 `json:"doorHeight"`
	Volume     float64 `json:"volume"`
	Areas      Areas   `json:"areas"`

	ExternalTemp          float64 `json:"externalTemp"`
	InternalTemp          float64 `json:"internalTemp"`
	TemperatureDifference float64 `json:"temperatureDifference"`
	OperatingHours        float64 `json:"operatingHours"`
	PullDownHours         float64 `json:"pullDownTime,omitempty"`
	BatchHours            float64 `json:"batchHours,omitempty"`
	DoorOpenings          float64 `json:"doorOpenings"`

	Insulation  string  `json:"insulationType"`
	ThicknessMM float64 `json:"insulationThickness"`
	UFactor     float64 `json:"uFactor"`

	ProductType        string  `json:"productType"`
	ProductMass        float64 `json:"productMass"`
	IncomingTemp       float64 `json:"incomingTemp"`
	OutgoingTemp       float64 `json:"outgoingTemp"`
	StorageCapacity    float64 `json:"storageCapacity"`
	StorageUtilization float64 `json:"storageUtilization"`

	Loads LoadTotals `json:"loads"`

	TotalSensible     float64 `json:"totalSensible"`
	TotalLatent       float64 `json:"totalLatent"`
	SHR               float64 `json:"shr"`
	TotalBeforeSafety float64 `json:"totalBeforeSafety"`
	SafetyFactor      float64 `json:"safetyFactor"`
	FinalLoad         float64 `json:"finalLoad"`
	TotalTR           float64 `json:"totalTR"`
	TotalBTU          float64 `json:"totalBTU"`
	DailyEnergyKWh    float64 `json:"dailyEnergy"`
}

func (s *Summary) setGeometry(g Geometry, a Areas, volume float64) {
	s.Length, s.Width, s.Height = g.Length, g.Width, g.Height
	s.DoorWidth, s.DoorHeight = g.DoorWidth, g.DoorHeight
	s.Volume = volume
	s.Areas = a
}

func sensibleHeatRatio(sensible, latent float64) float64 {
	total := sensible + latent
	if total <= 0 {
		return 1.0
	}
	return sensible / total
}
