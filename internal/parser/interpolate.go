package parser

import "github.com/field-logger/driftnorm/internal/models"

// The moisture loggers emit wet-temperature statistics and wet/dry
// state at coarse intervals, each observation summarizing the period
// before it. ForwardFill walks the merged timeline from most recent to
// oldest and carries each observation back to every earlier timestamp
// until an older observation supersedes it.

// fillState is one rolling slot of carried field values.
type fillState struct {
	set    bool
	values []*string
}

func (s *fillState) capture(values ...*string) {
	s.set = true
	s.values = values
}

// ForwardFill fills the wet-temperature quad and the wetdry/duration
// pair in place and returns the same Timeline. The two groups roll
// independently: a wet-temp observation never disturbs wetdry state.
func ForwardFill(tl *models.Timeline) *models.Timeline {
	var wet, dry fillState

	for _, key := range tl.SortedKeys(true) {
		r := tl.Get(key)

		if r.WetTempMin != nil {
			wet.capture(r.WetTempMin, r.WetTempMax, r.WetTempMean, r.WetTempSamples)
		}
		if wet.set {
			r.WetTempMin = wet.values[0]
			r.WetTempMax = wet.values[1]
			r.WetTempMean = wet.values[2]
			r.WetTempSamples = wet.values[3]
		}

		if r.WetDry != nil {
			dry.capture(r.WetDry, r.Duration)
		}
		if dry.set {
			r.WetDry = dry.values[0]
			r.Duration = dry.values[1]
		}
	}

	return tl
}
