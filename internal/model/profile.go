package model

import "time"

// Profile matches the JSON shape of a load-profile file.
//
// Example:
// {
//   "name": "island_outage_feb",
//   "data": [ ... ]
// }
type Profile struct {
	Name string            `json:"name"`
	Data []NetLoadInterval `json:"data"`
}

// NetLoadInterval represents one interval of the site's net load series.
// All timestamps are RFC3339 strings in the JSON.
type NetLoadInterval struct {
	IntervalStart time.Time `json:"interval_start"`
	IntervalEnd   time.Time `json:"interval_end"`

	Site string `json:"site"`

	// NetLoadKW is site load minus on-site generation for the interval.
	// Positive = deficit the backup plant must serve; negative = surplus
	// available to store.
	NetLoadKW float64 `json:"net_load_kw"`
}

func (i NetLoadInterval) Duration() time.Duration {
	return i.IntervalEnd.Sub(i.IntervalStart)
}

func (i NetLoadInterval) DurationHours() float64 {
	return i.Duration().Hours()
}
