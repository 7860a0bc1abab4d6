package risk

import "fmt"

// Band is a user-selected ceiling risk range. The selected band becomes the
// top sizing tier: purchases stop entirely once risk reaches Band.Max.
type Band struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Bands are the seven fixed width-0.1 bands covering [0, 0.7), selected by
// index through the simulation configuration.
var Bands = []Band{
	{Label: "0.0-0.1", Min: 0.0, Max: 0.1},
	{Label: "0.1-0.2", Min: 0.1, Max: 0.2},
	{Label: "0.2-0.3", Min: 0.2, Max: 0.3},
	{Label: "0.3-0.4", Min: 0.3, Max: 0.4},
	{Label: "0.4-0.5", Min: 0.4, Max: 0.5},
	{Label: "0.5-0.6", Min: 0.5, Max: 0.6},
	{Label: "0.6-0.7", Min: 0.6, Max: 0.7},
}

// DefaultBandIndex is the band used when a caller does not pick one
const DefaultBandIndex = 4

// BandByIndex returns the band for a configuration index
func BandByIndex(idx int) (Band, error) {
	if idx < 0 || idx >= len(Bands) {
		return Band{}, fmt.Errorf("band index %d out of range [0,%d]", idx, len(Bands)-1)
	}
	return Bands[idx], nil
}
