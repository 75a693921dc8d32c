package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownRoom is returned when a room type name is not recognised.
	ErrUnknownRoom = errors.New("domain: unknown room type")

	// ErrUnknownStage is returned when a stage name is not recognised or does not
	// belong to the room type.
	ErrUnknownStage = errors.New("domain: unknown stage")
)

// RoomType is a refrigerated room category. Each one has its own calculator.
type RoomType string

const (
	Freezer      RoomType = "freezer"
	ColdRoom     RoomType = "coldroom"
	BlastFreezer RoomType = "blastfreezer"
)

// RoomTypes lists every supported category in display order.
func RoomTypes() []RoomType { return []RoomType{Freezer, ColdRoom, BlastFreezer} }

func ParseRoomType(s string) (RoomType, error) {
	switch RoomType(strings.ToLower(strings.TrimSpace(s))) {
	case Freezer:
		return Freezer, nil
	case ColdRoom:
		return ColdRoom, nil
	case BlastFreezer:
		return BlastFreezer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoom, s)
}

// Title is the human label used in report headings.
func (r RoomType) Title() string {
	switch r {
	case Freezer:
		return "Freezer"
	case ColdRoom:
		return "Cold Room"
	case BlastFreezer:
		return "Blast Freezer"
	}
	return string(r)
}

// Stage is one input screen of a room's form.
type Stage string

const (
	StageRoom         Stage = "room"
	StageConditions   Stage = "conditions"
	StageConstruction Stage = "construction"
	StageProduct      Stage = "product"
	StageUsage        Stage = "usage"
)

type stageSpec struct {
	key      string
	required bool
}

// formKeys holds the storage literals the mobile client has always used, one per
// {room, stage} pair. Freezer insulation lives on the room stage.
var formKeys = map[RoomType]map[Stage]stageSpec{
	Freezer: {
		StageRoom:       {key: "roomData", required: true},
		StageConditions: {key: "conditionsData", required: true},
		StageProduct:    {key: "productData", required: true},
	},
	ColdRoom: {
		StageRoom:         {key: "coldRoomData", required: true},
		StageConditions:   {key: "coldRoomConditionsData", required: true},
		StageConstruction: {key: "coldRoomConstructionData"},
		StageProduct:      {key: "coldRoomProductData", required: true},
	},
	BlastFreezer: {
		StageRoom:         {key: "blastFreezerRoomData", required: true},
		StageConditions:   {key: "blastFreezerConditionsData", required: true},
		StageConstruction: {key: "blastFreezerConstructionData"},
		StageProduct:      {key: "blastFreezerProductData", required: true},
		StageUsage:        {key: "blastFreezerUsageData"},
	},
}

var stageOrder = []Stage{StageRoom, StageConditions, StageConstruction, StageProduct, StageUsage}

// ParseStage validates that stage exists for room.
func ParseStage(room RoomType, s string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formKeys[room][stage]; !ok {
		return "", fmt.Errorf("%w: %q for %s", ErrUnknownStage, s, room)
	}
	return stage, nil
}

// Stages returns the stages of room in screen order.
func Stages(room RoomType) []Stage {
	var out []Stage
	for _, s := range stageOrder {
		if _, ok := formKeys[room][s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Required reports whether a calculation for room cannot run without stage.
func Required(room RoomType, stage Stage) bool {
	return formKeys[room][stage].required
}

// FormKey returns the legacy storage key of a stage.
func FormKey(room RoomType, stage Stage) (string, error) {
	spec, ok := formKeys[room][stage]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnknownStage, room, stage)
	}
	return spec.key, nil
}

// CalculationRecord is a saved calculation in a user's history. Summary holds the
// JSON-encoded load summary so stores stay unaware of calculator types.
type CalculationRecord struct {
	ID        string    `db:"id" json:"id" dynamodbav:"calculationId"`
	UserID    string    `db:"user_id" json:"user_id" dynamodbav:"userId"`
	Room      RoomType  `db:"room_type" json:"room_type" dynamodbav:"roomType"`
	CreatedAt time.Time `db:"created_at" json:"created_at" dynamodbav:"createdAt"`
	FinalKW   float64   `db:"final_kw" json:"final_kw" dynamodbav:"finalKw"`
	TotalTR   float64   `db:"total_tr" json:"total_tr" dynamodbav:"totalTr"`
	Summary   string    `db:"summary" json:"summary" dynamodbav:"summary"`
}
