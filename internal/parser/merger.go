package parser

import "github.com/field-logger/driftnorm/internal/models"

// MergeTimelines folds per-file Timelines, in the order the files were
// discovered, into one combined Timeline. When two files define the
// same field at the same adjusted-time key, the later file wins; fields
// only one file defines are kept. A Reading always carries all eleven
// columns, so a field neither file observed stays explicitly absent.
//
// The fold is pure: inputs are not mutated and the result is freshly
// allocated, so per-file parses could run in parallel ahead of it.
func MergeTimelines(timelines []*models.Timeline) *models.Timeline {
	out := models.NewTimeline()

	for _, tl := range timelines {
		if tl == nil {
			continue
		}
		for _, key := range tl.Keys() {
			incoming := tl.Get(key)
			merged := out.Ensure(key)

			inFields := incoming.Fields()
			outFields := merged.Fields()
			for i := range inFields {
				if v := *inFields[i]; v != nil {
					*outFields[i] = v
				}
			}
		}
	}

	return out
}
