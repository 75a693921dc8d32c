package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoomType(t *testing.T) {
	for _, name := range []string{"freezer", " ColdRoom ", "BLASTFREEZER"} {
		_, err := ParseRoomType(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseRoomType("walk-in")
	assert.True(t, errors.Is(err, ErrUnknownRoom))
}

func TestStages(t *testing.T) {
	assert.Equal(t, []Stage{StageRoom, StageConditions, StageProduct}, Stages(Freezer))
	assert.Equal(t, []Stage{StageRoom, StageConditions, StageConstruction, StageProduct}, Stages(ColdRoom))
	assert.Equal(t, []Stage{StageRoom, StageConditions, StageConstruction, StageProduct, StageUsage}, Stages(BlastFreezer))
}

func TestRequired(t *testing.T) {
	for _, room := range RoomTypes() {
		assert.True(t, Required(room, StageRoom), room)
		assert.True(t, Required(room, StageConditions), room)
		assert.True(t, Required(room, StageProduct), room)
	}
	assert.False(t, Required(ColdRoom, StageConstruction))
	assert.False(t, Required(BlastFreezer, StageUsage))
}

func TestFormKey(t *testing.T) {
	tests := []struct {
		room  RoomType
		stage Stage
		want  string
	}{
		{Freezer, StageRoom, "roomData"},
		{Freezer, StageProduct, "productData"},
		{ColdRoom, StageRoom, "coldRoomData"},
		{ColdRoom, StageConstruction, "coldRoomConstructionData"},
		{BlastFreezer, StageUsage, "blastFreezerUsageData"},
	}
	for _, tt := range tests {
		got, err := FormKey(tt.room, tt.stage)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormKey(Freezer, StageUsage)
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestParseStage(t *testing.T) {
	stage, err := ParseStage(BlastFreezer, "Usage")
	require.NoError(t, err)
	assert.Equal(t, StageUsage, stage)

	_, err = ParseStage(ColdRoom, "usage")
	assert.ErrorIs(t, err, ErrUnknownStage)
}
