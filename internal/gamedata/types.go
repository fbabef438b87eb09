package gamedata

// TypeDef carries an element's display color and its attacking matchups.
type TypeDef struct {
	ID            ElementType             `json:"id"`
	Color         string                  `json:"color"`
	Effectiveness map[ElementType]float64 `json:"effectiveness"`
}

// TypeChart maps attacking type to defending type to multiplier.
// Missing pairs are neutral.
type TypeChart map[ElementType]map[ElementType]float64

// NewTypeChart builds a chart from loaded type definitions.
func NewTypeChart(defs []TypeDef) TypeChart {
	chart := make(TypeChart, len(defs))
	for _, d := range defs {
		chart[d.ID] = d.Effectiveness
	}
	return chart
}

// Multiplier returns the product of the matchups against every defending type.
func (c TypeChart) Multiplier(attack ElementType, defenders []ElementType) float64 {
	mult := 1.0
	row := c[attack]
	for _, d := range defenders {
		if m, ok := row[d]; ok {
			mult *= m
		}
	}
	return mult
}

// LoadTypes loads type definitions from the embedded types.json.
func LoadTypes() ([]TypeDef, error) {
	return Load[[]TypeDef]("types.json")
}
