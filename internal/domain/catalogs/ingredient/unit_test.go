package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsableUnits(t *testing.T) {
	tests := []struct {
		name string
		ing  Ingredient
		want []Unit
	}{
		{"egg", Ingredient{ServingSizeG: 50, ServingSizePieces: 1}, []Unit{UnitMass, UnitPieces}},
		{"cream cheese", Ingredient{ServingSizeG: 28}, []Unit{UnitMass}},
		{"milk", Ingredient{ServingSizeG: 244, ServingSizeMl: 240}, []Unit{UnitMass, UnitVolume}},
		{"nothing entered", Ingredient{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ing.UsableUnits())
		})
	}
}

func TestUnitDisplay(t *testing.T) {
	assert.Equal(t, "g", UnitMass.Display())
	assert.Equal(t, "ml", UnitVolume.Display())
	assert.Equal(t, "pieces", UnitPieces.Display())

	u, err := ParseUnitDisplay("ml")
	require.NoError(t, err)
	assert.Equal(t, UnitVolume, u)

	_, err = ParseUnitDisplay("cups")
	assert.Error(t, err)
	assert.False(t, Unit("cups").Valid())
}

func TestCanUse(t *testing.T) {
	bread := Ingredient{ServingSizeG: 51, ServingSizePieces: 2}
	assert.True(t, bread.CanUse(UnitPieces))
	assert.False(t, bread.CanUse(UnitVolume))
}
