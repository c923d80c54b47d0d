package models

import "sort"

// Timeline is an ordered mapping from adjusted-UTC timestamp key
// ("YYYY-MM-DD HH:MM:SS") to the Reading observed at that instant.
// Keys are unique; insertion order is preserved so that iteration is
// deterministic. Because keys are zero-padded big-endian timestamps,
// lexicographic order equals chronological order.
type Timeline struct {
	keys     []string
	readings map[string]*Reading
}

// NewTimeline creates an empty Timeline.
func NewTimeline() *Timeline {
	return &Timeline{
		keys:     make([]string, 0),
		readings: make(map[string]*Reading),
	}
}

// Get returns the Reading at key, or nil if absent.
func (t *Timeline) Get(key string) *Reading {
	return t.readings[key]
}

// Ensure returns the Reading at key, creating an empty one if absent.
func (t *Timeline) Ensure(key string) *Reading {
	if r, ok := t.readings[key]; ok {
		return r
	}
	r := &Reading{}
	t.readings[key] = r
	t.keys = append(t.keys, key)
	return r
}

// Len returns the number of distinct timestamps.
func (t *Timeline) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Timeline) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// SortedKeys returns the keys in ascending chronological order,
// or descending when desc is true.
func (t *Timeline) SortedKeys(desc bool) []string {
	out := t.Keys()
	if desc {
		sort.Sort(sort.Reverse(sort.StringSlice(out)))
	} else {
		sort.Strings(out)
	}
	return out
}

// TimelineSnapshot is the serializable form of a Timeline, used by the
// msgpack parse cache.
type TimelineSnapshot struct {
	Keys     []string            `msgpack:"keys"`
	Readings map[string]*Reading `msgpack:"readings"`
}

// Snapshot returns a serializable copy of the timeline.
func (t *Timeline) Snapshot() *TimelineSnapshot {
	snap := &TimelineSnapshot{
		Keys:     t.Keys(),
		Readings: make(map[string]*Reading, len(t.readings)),
	}
	for k, r := range t.readings {
		snap.Readings[k] = r
	}
	return snap
}

// FromSnapshot rebuilds a Timeline from its serialized form.
func FromSnapshot(snap *TimelineSnapshot) *Timeline {
	t := NewTimeline()
	for _, k := range snap.Keys {
		if r, ok := snap.Readings[k]; ok {
			t.readings[k] = r
			t.keys = append(t.keys, k)
		}
	}
	return t
}

// DriftWindow holds the drift-correction parameters read from one
// logger file's header.
type DriftWindow struct {
	Start        int64 // unix seconds, programming time
	End          int64 // unix seconds, end of logging
	DriftSeconds int   // total accumulated skew over the window
}

// RatePerSecond returns the clock-skew correction rate (dps). A window
// with zero elapsed time yields 0, meaning no correction is applied.
func (w DriftWindow) RatePerSecond() float64 {
	elapsed := w.End - w.Start
	if elapsed == 0 {
		return 0
	}
	return float64(w.DriftSeconds) / float64(elapsed)
}

// SourceFile describes one logger file that contributed to a run.
type SourceFile struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Kind     string `json:"kind,omitempty"`
	Readings int    `json:"readings"`
	Err      string `json:"error,omitempty"`
}
