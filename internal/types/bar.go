package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Bar is a single OHLCV observation for one trading period.
type Bar struct {
	Time     time.Time                `json:"time" csv:"time"`
	Open     float64                  `json:"open" csv:"open"`
	High     float64                  `json:"high" csv:"high"`
	Low      float64                  `json:"low" csv:"low"`
	Close    float64                  `json:"close" csv:"close"`
	AdjClose optional.Option[float64] `json:"adj_close,omitempty" csv:"adj_close"`
	Volume   float64                  `json:"volume" csv:"volume"`
}

// BarSequence is a canonical series of bars: sorted ascending by time,
// no duplicate timestamps, every bar carries all four price fields.
// The normalizer is the only producer of BarSequence values.
type BarSequence []Bar

// Closes extracts the close price series in bar order.
func (s BarSequence) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}

	return closes
}

// Times extracts the timestamp series in bar order.
func (s BarSequence) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, bar := range s {
		times[i] = bar.Time
	}

	return times
}

// IsEmpty reports whether the sequence holds no bars.
func (s BarSequence) IsEmpty() bool {
	return len(s) == 0
}

// IsSorted reports whether timestamps are strictly increasing.
func (s BarSequence) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if !s[i-1].Time.Before(s[i].Time) {
			return false
		}
	}

	return true
}
