// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

import (
	"fmt"
	"strconv"
	"time"
)

//---- Epoch ----

// Epoch is a point in time in the decimal-year notation used for geodetic
// reference epochs (e.g. 2010.0). The zero value means "no epoch".
type Epoch float64

// EpochOf converts a time to a decimal year, using the actual length of the
// calendar year for the fraction.
func EpochOf(t time.Time) Epoch {
	t = t.UTC()
	y := t.Year()
	start := time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y+1, 1, 1, 0, 0, 0, 0, time.UTC)
	return Epoch(float64(y) + t.Sub(start).Seconds()/end.Sub(start).Seconds())
}

// Time converts the decimal year back to a time in UTC.
func (e Epoch) Time() time.Time {
	y := int(e)
	frac := float64(e) - float64(y)
	start := time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y+1, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration(frac * float64(end.Sub(start))))
}

func (e Epoch) IsZero() bool {
	return e == 0
}

// TropicalYearsTo returns the elapsed time from the epoch to t, in tropical
// years. Negative when t precedes the epoch.
func (e Epoch) TropicalYearsTo(t time.Time) float64 {
	return t.Sub(e.Time()).Seconds() / TropicalYearSec
}

// Epoch parser (for command arguments); accepts a decimal year ("2010.0")
// or a calendar date ("2010-01-01").
func (e *Epoch) Set(s string) error {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*e = Epoch(v)
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("epoch %q is neither a decimal year nor a date: %w", s, err)
	}
	*e = EpochOf(t)
	return nil
}

func (e *Epoch) String() string {
	if e == nil || e.IsZero() {
		return ""
	}
	return strconv.FormatFloat(float64(*e), 'f', -1, 64)
}
