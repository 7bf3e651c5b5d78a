package ingredient

import (
	"fmt"

	"feedme/internal/core/types"
)

// Unit is the unit a quantity of an ingredient is measured in.
type Unit string

const (
	UnitMass   Unit = "mass"
	UnitVolume Unit = "volume"
	UnitPieces Unit = "pieces"
)

type unitMapping struct {
	unit        Unit
	display     string
	servingSize func(Ingredient) types.Amount
}

var unitMappings = []unitMapping{
	{UnitMass, "g", func(i Ingredient) types.Amount { return i.ServingSizeG }},
	{UnitVolume, "ml", func(i Ingredient) types.Amount { return i.ServingSizeMl }},
	{UnitPieces, "pieces", func(i Ingredient) types.Amount { return i.ServingSizePieces }},
}

func lookupUnit(u Unit) (unitMapping, bool) {
	for _, m := range unitMappings {
		if m.unit == u {
			return m, true
		}
	}
	return unitMapping{}, false
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	_, ok := lookupUnit(u)
	return ok
}

// Display returns the short label shown to users ("g", "ml", "pieces").
func (u Unit) Display() string {
	if m, ok := lookupUnit(u); ok {
		return m.display
	}
	return string(u)
}

// ParseUnitDisplay maps a display label back to its unit.
func ParseUnitDisplay(display string) (Unit, error) {
	for _, m := range unitMappings {
		if m.display == display {
			return m.unit, nil
		}
	}
	return "", fmt.Errorf("unknown unit %q", display)
}

// ServingSize returns the ingredient's serving size in unit u.
func (i Ingredient) ServingSize(u Unit) types.Amount {
	if m, ok := lookupUnit(u); ok {
		return m.servingSize(i)
	}
	return 0
}

// UsableUnits lists the units with a non-zero serving size, in mass, volume, pieces order.
func (i Ingredient) UsableUnits() []Unit {
	var units []Unit
	for _, m := range unitMappings {
		if !m.servingSize(i).IsZero() {
			units = append(units, m.unit)
		}
	}
	return units
}

// CanUse reports whether quantities of the ingredient may be given in unit u.
func (i Ingredient) CanUse(u Unit) bool {
	return !i.ServingSize(u).IsZero()
}
