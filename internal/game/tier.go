package game

// Tier is one row of the combo multiplier table.
type Tier struct {
	MinCombo   int     `yaml:"min_combo"`
	Multiplier float64 `yaml:"multiplier"`
}
