// Package models contains domain types for the field-logger drift normalizer.
package models

// FieldKind identifies which reading column a logger file populates.
// Exactly one kind is active per file, chosen from its column-header line.
type FieldKind string

const (
	FieldTemp    FieldKind = "temp"
	FieldLight   FieldKind = "light"
	FieldWets    FieldKind = "wets"
	FieldWetTemp FieldKind = "wet_temp" // expands to min/max/mean/samples
	FieldWetDry  FieldKind = "wetdry"   // expands to wetdry + duration
)

// Reading holds the values recorded at one adjusted-UTC timestamp.
// Every column is optional; nil means the value was never observed,
// which is distinct from an observed empty string.
type Reading struct {
	Time           *string `json:"time" msgpack:"time"`
	LocalTime      *string `json:"localtime" msgpack:"localtime"`
	Temp           *string `json:"temp" msgpack:"temp"`
	Light          *string `json:"light" msgpack:"light"`
	Wets           *string `json:"wets" msgpack:"wets"`
	WetDry         *string `json:"wetdry" msgpack:"wetdry"`
	Duration       *string `json:"duration" msgpack:"duration"`
	WetTempMin     *string `json:"wetTempMin" msgpack:"wet_temp_min"`
	WetTempMax     *string `json:"wetTempMax" msgpack:"wet_temp_max"`
	WetTempMean    *string `json:"wetTempMean" msgpack:"wet_temp_mean"`
	WetTempSamples *string `json:"wetTempSamples" msgpack:"wet_temp_samples"`
}

// Fields returns pointers to all eleven optional columns in output order.
// The merger walks this to copy defined values field by field.
func (r *Reading) Fields() []**string {
	return []**string{
		&r.Time, &r.LocalTime, &r.Temp, &r.Light, &r.Wets,
		&r.WetDry, &r.Duration,
		&r.WetTempMin, &r.WetTempMax, &r.WetTempMean, &r.WetTempSamples,
	}
}

// String pins s to the heap and returns its address. Convenience for
// building Readings from parsed column text.
func String(s string) *string {
	return &s
}
