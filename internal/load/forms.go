package load

import (
	"fmt"
	"math"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/normalize"
	"github.com/ANIKETSHETTY47/coolcalc/internal/thermal"
)

// Forms holds the saved stages of one room. A stage that was never saved is
// absent from the map; a saved empty object is present and falls back to the
// field defaults.
type Forms map[domain.Stage]normalize.Form

// merged overlays the optional stage on top of base. Fields in overlay win.
func (f Forms) merged(base, overlay domain.Stage) normalize.Form {
	out := normalize.Form{}
	for k, v := range f[base] {
		out[k] = v
	}
	for k, v := range f[overlay] {
		out[k] = v
	}
	return out
}

func (f Forms) require(room domain.RoomType) error {
	for _, stage := range domain.Stages(room) {
		if !domain.Required(room, stage) {
			continue
		}
		if _, ok := f[stage]; !ok {
			return &MissingInputError{Room: room, Stage: stage}
		}
	}
	return nil
}

// Calculate runs the calculator for room over its saved stages.
func Calculate(n *normalize.Normalizer, room domain.RoomType, forms Forms) (Result, error) {
	if err := forms.require(room); err != nil {
		return nil, err
	}
	switch room {
	case domain.Freezer:
		r, c, p := FreezerFromForms(n, forms)
		res, err := CalculateFreezer(r, c, p)
		if err != nil {
			return nil, err
		}
		return res, nil
	case domain.ColdRoom:
		r, c, p := ColdRoomFromForms(n, forms)
		res, err := CalculateColdRoom(r, c, p)
		if err != nil {
			return nil, err
		}
		return res, nil
	case domain.BlastFreezer:
		r, c, p := BlastFreezerFromForms(n, forms)
		res, err := CalculateBlastFreezer(r, c, p)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRoom, room)
}

func insulation(n *normalize.Normalizer, form normalize.Form) thermal.Insulation {
	text := n.Text(form, "insulationType", string(thermal.PUF))
	if ins, ok := thermal.ParseInsulation(text); ok {
		return ins
	}
	// Unknown materials are kept so table lookups take their fallback path.
	return thermal.Insulation(text)
}

func optional(n *normalize.Normalizer, form normalize.Form, field string) *float64 {
	if v, ok := n.Optional(form, field); ok {
		return &v
	}
	return nil
}

// FreezerFromForms maps the freezer room, conditions and product stages.
func FreezerFromForms(n *normalize.Normalizer, forms Forms) (FreezerRoom, FreezerConditions, FreezerProduct) {
	room, cond, prod := forms[domain.StageRoom], forms[domain.StageConditions], forms[domain.StageProduct]

	r := FreezerRoom{
		Geometry: Geometry{
			Length:     n.Number(room, "length", 4),
			Width:      n.Number(room, "width", 3),
			Height:     n.Number(room, "height", 2.5),
			DoorWidth:  n.Number(room, "doorWidth", 1),
			DoorHeight: n.Number(room, "doorHeight", 2),
		},
		DoorOpenings:             n.Number(room, "doorOpenings", 15),
		Insulation:               insulation(n, room),
		InsulationThicknessMM:    int(math.Round(n.Number(room, "insulationThickness", 150))),
		InternalFloorThicknessMM: n.Number(room, "internalFloorThickness", 150),
		NumberOfFloors:           n.Number(room, "numberOfFloors", 1),
	}

	c := FreezerConditions{
		ExternalTemp:        n.Number(cond, "externalTemp", 35),
		InternalTemp:        n.Number(cond, "internalTemp", -18),
		OperatingHours:      n.Number(cond, "operatingHours", 24),
		PullDownHours:       n.Number(cond, "pullDownTime", 10),
		RoomHumidity:        n.Number(cond, "roomHumidity", 85),
		SteamHumidifierLoad: n.Number(cond, "steamHumidifierLoad", 0),
	}
	airFlowPerFan := n.Number(cond, "airFlowPerFan", 2000)

	p := FreezerProduct{
		ProductType:  n.Text(prod, "productType", thermal.GeneralFood),
		StorageType:  n.Text(prod, "storageType", "Boxed"),
		DailyLoad:    n.Number(prod, "dailyLoad", 1000),
		IncomingTemp: n.Number(prod, "incomingTemp", 25),
		OutgoingTemp: n.Number(prod, "outgoingTemp", -18),

		People:           n.Number(prod, "numberOfPeople", 2),
		WorkingHours:     n.Number(prod, "workingHours", 4),
		LightingWattage:  n.Number(prod, "lightingWattage", 150),
		EquipmentWattage: n.Number(prod, "equipmentLoad", 300),

		FanMotorRating:    n.Number(prod, "fanMotorRating", 0.37),
		NumberOfFans:      n.Number(prod, "numberOfFans", 6),
		FanOperatingHours: n.Number(prod, "fanOperatingHours", 24),
		FanAirFlowRate:    n.Number(prod, "fanAirFlowRate", airFlowPerFan),

		DoorHeatersLoad:       n.Number(prod, "doorHeatersLoad", 0.24),
		TrayHeatersLoad:       n.Number(prod, "trayHeatersLoad", 2.0),
		PeripheralHeatersLoad: n.Number(prod, "peripheralHeatersLoad", 0),

		CustomCpAbove:    optional(n, prod, "customCpAbove"),
		CustomCpBelow:    optional(n, prod, "customCpBelow"),
		CustomLatentHeat: optional(n, prod, "customLatentHeat"),
	}
	return r, c, p
}

// ColdRoomFromForms maps the cold room stages. Construction fields override
// the room stage.
func ColdRoomFromForms(n *normalize.Normalizer, forms Forms) (ColdRoomRoom, ColdRoomConditions, ColdRoomProduct) {
	room := forms.merged(domain.StageRoom, domain.StageConstruction)
	cond, prod := forms[domain.StageConditions], forms[domain.StageProduct]

	r := ColdRoomRoom{
		Geometry: Geometry{
			Length:     n.Number(room, "length", 3.05),
			Width:      n.Number(room, "width", 4.5),
			Height:     n.Number(room, "height", 3.0),
			DoorWidth:  n.Number(room, "doorWidth", 1.2),
			DoorHeight: n.Number(room, "doorHeight", 2.1),
		},
		DoorOpenings:             n.Number(room, "doorOpenings", 30),
		DoorClearOpening:         n.Number(room, "doorClearOpening", 2000),
		StorageDensity:           n.Number(room, "storageDensity", 8),
		AirFlowPerFan:            n.Number(room, "airFlowPerFan", 4163),
		NumberOfHeaters:          n.Number(room, "numberOfHeaters", 1),
		NumberOfDoors:            n.Number(room, "numberOfDoors", 1),
		Insulation:               insulation(n, room),
		InsulationThicknessMM:    int(math.Round(n.Number(room, "insulationThickness", 100))),
		InternalFloorThicknessMM: n.Number(room, "internalFloorThickness", 100),
	}

	c := ColdRoomConditions{
		ExternalTemp:        n.Number(cond, "externalTemp", 45),
		InternalTemp:        n.Number(cond, "internalTemp", 2),
		OperatingHours:      n.Number(cond, "operatingHours", 20),
		PullDownHours:       n.Number(cond, "pullDownTime", 24),
		SteamHumidifierLoad: n.Number(cond, "steamHumidifierLoad", 0),
	}

	productType := n.Text(prod, "productType", thermal.Banana)
	props, ok := thermal.Product(thermal.ColdRoomProducts, productType)
	if !ok {
		props, _ = thermal.Product(thermal.ColdRoomProducts, thermal.Banana)
	}
	p := ColdRoomProduct{
		ProductType:      productType,
		StorageType:      n.Text(prod, "storageType", "Palletized"),
		DailyLoad:        n.Number(prod, "dailyLoad", 4000),
		IncomingTemp:     n.Number(prod, "incomingTemp", 30),
		OutgoingTemp:     n.Number(prod, "outgoingTemp", 2),
		SpecificHeat:     n.Number(prod, "specificHeatAbove", props.SpecificHeatAbove),
		RespirationRate:  n.Number(prod, "respirationRate", props.RespirationRate),
		People:           n.Number(prod, "numberOfPeople", 1),
		WorkingHours:     n.Number(prod, "workingHours", 20),
		LightingWattage:  n.Number(prod, "lightingWattage", 70),
		EquipmentWattage: n.Number(prod, "equipmentLoad", 250),
	}
	return r, c, p
}

// BlastFreezerFromForms maps the blast freezer stages. Construction overrides
// the room stage and usage overrides the product stage.
func BlastFreezerFromForms(n *normalize.Normalizer, forms Forms) (BlastFreezerRoom, BlastFreezerConditions, BlastFreezerProduct) {
	room := forms.merged(domain.StageRoom, domain.StageConstruction)
	prod := forms.merged(domain.StageProduct, domain.StageUsage)
	cond := forms[domain.StageConditions]

	// Older clients saved the second dimension as width.
	breadth := n.Number(room, "width", 5)
	if _, ok := room["breadth"]; ok {
		breadth = n.Number(room, "breadth", breadth)
	}

	r := BlastFreezerRoom{
		Geometry: Geometry{
			Length:     n.Number(room, "length", 5),
			Width:      breadth,
			Height:     n.Number(room, "height", 3.5),
			DoorWidth:  n.Number(room, "doorWidth", 2.1),
			DoorHeight: n.Number(room, "doorHeight", 2.1),
		},
		DoorClearOpening:         n.Number(room, "doorClearOpening", 2100),
		Insulation:               insulation(n, room),
		WallThicknessMM:          n.Number(room, "wallThickness", 150),
		CeilingThicknessMM:       n.Number(room, "ceilingThickness", 150),
		FloorThicknessMM:         n.Number(room, "floorThickness", 150),
		InternalFloorThicknessMM: n.Number(room, "internalFloorThickness", 150),
	}

	c := BlastFreezerConditions{
		AmbientTemp:    n.Number(cond, "ambientTemp", 43),
		RoomTemp:       n.Number(cond, "roomTemp", -35),
		BatchHours:     n.Number(cond, "batchHours", 8),
		OperatingHours: n.Number(cond, "operatingHours", 24),
	}

	group := func(qty, capacity string, defQty, defCapacity float64) HeaterGroup {
		return HeaterGroup{Qty: n.Number(prod, qty, defQty), CapacityKW: n.Number(prod, capacity, defCapacity)}
	}
	p := BlastFreezerProduct{
		ProductType:      n.Text(prod, "productType", thermal.GeneralFood),
		CapacityRequired: n.Number(prod, "capacityRequired", 2000),
		IncomingTemp:     n.Number(prod, "incomingTemp", -5),
		OutgoingTemp:     n.Number(prod, "outgoingTemp", -30),
		StorageDensity:   n.Number(prod, "storageCapacity", 4),

		People:         n.Number(prod, "numberOfPeople", 2),
		WorkingHours:   n.Number(prod, "workingHours", 4),
		LightLoadKW:    n.Number(prod, "lightLoad", 0.1),
		FanMotorRating: n.Number(prod, "fanMotorRating", 0.37),
		AirFlowPerFan:  n.Number(prod, "airFlowPerFan", 5847),

		PeripheralHeaters: group("peripheralHeatersQty", "peripheralHeatersCapacity", 1, 1.5),
		DoorHeaters:       group("doorHeatersQty", "doorHeatersCapacity", 1, 0.27),
		TrayHeaters:       group("trayHeatersQty", "trayHeatersCapacity", 1, 2.2),
		DrainHeaters:      group("drainHeatersQty", "drainHeatersCapacity", 1, 0.04),
	}
	return r, c, p
}

// DefaultForms returns a complete set of stages for room holding the default
// inputs, as a new client would submit them.
func DefaultForms(room domain.RoomType) Forms {
	switch room {
	case domain.Freezer:
		return Forms{
			domain.StageRoom: {
				"length": "4", "width": "3", "height": "2.5", "doorWidth": "1", "doorHeight": "2",
				"doorOpenings": "15", "insulationType": "PUF", "insulationThickness": 150,
			},
			domain.StageConditions: {
				"externalTemp": "35", "internalTemp": "-18", "operatingHours": "24", "pullDownTime": "10",
			},
			domain.StageProduct: {
				"productType": thermal.GeneralFood, "dailyLoad": "1000", "incomingTemp": "25",
				"outgoingTemp": "-18", "storageType": "Boxed",
			},
		}
	case domain.ColdRoom:
		return Forms{
			domain.StageRoom: {
				"length": "3.05", "width": "4.5", "height": "3.0", "doorWidth": "1.2", "doorHeight": "2.1",
				"storageDensity": "8", "airFlowPerFan": "4163",
			},
			domain.StageConditions:   {"externalTemp": "45", "internalTemp": "2", "operatingHours": "20", "pullDownTime": "24"},
			domain.StageConstruction: {"insulationType": "PUF", "insulationThickness": 100, "numberOfHeaters": "1", "numberOfDoors": "1"},
			domain.StageProduct: {
				"productType": thermal.Banana, "dailyLoad": "4000", "incomingTemp": "30", "outgoingTemp": "2",
				"storageType": "Palletized",
			},
		}
	case domain.BlastFreezer:
		return Forms{
			domain.StageRoom:         {"length": "5", "breadth": "5", "height": "3.5", "doorWidth": "2.1", "doorHeight": "2.1"},
			domain.StageConditions:   {"ambientTemp": "43", "roomTemp": "-35", "batchHours": "8", "operatingHours": "24"},
			domain.StageConstruction: {"insulationType": "PUF", "wallThickness": 150, "ceilingThickness": 150, "floorThickness": 150},
			domain.StageProduct: {
				"productType": thermal.GeneralFood, "capacityRequired": "2000", "incomingTemp": "-5",
				"outgoingTemp": "-30", "storageCapacity": "4",
			},
			domain.StageUsage: {"numberOfPeople": "2", "workingHours": "4", "lightLoad": "0.1", "fanMotorRating": "0.37"},
		}
	}
	return nil
}
