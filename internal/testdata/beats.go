package testdata

import (
	_ "embed"
	"encoding/json"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/game"
)

//go:embed beats.json
var beatsJSON []byte

// GetBeats returns a recorded onset list: a mix of weak, early and
// closely spaced beats.
func GetBeats() ([]game.Beat, error) {
	var raw []struct {
		Ms        float64 `json:"ms"`
		Intensity float64 `json:"intensity"`
	}
	if err := json.Unmarshal(beatsJSON, &raw); nil != err {
		return nil, err
	}
	beats := make([]game.Beat, len(raw))
	for i, r := range raw {
		beats[i] = game.Beat{
			Time:      time.Duration(r.Ms * float64(time.Millisecond)),
			Intensity: r.Intensity,
		}
	}
	return beats, nil
}
