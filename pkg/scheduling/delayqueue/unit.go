package delayqueue

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
)

// Unit is the time unit a delay is expressed in.
// The zero value is not a valid unit.
type Unit int

// Supported time units.
const (
	Nanoseconds Unit = iota + 1
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
)

var unitNanos = map[Unit]int64{
	Nanoseconds:  1,
	Microseconds: int64(time.Microsecond),
	Milliseconds: int64(time.Millisecond),
	Seconds:      int64(time.Second),
	Minutes:      int64(time.Minute),
	Hours:        int64(time.Hour),
	Days:         int64(24 * time.Hour),
}

var unitNames = map[Unit]string{
	Nanoseconds:  "nanoseconds",
	Microseconds: "microseconds",
	Milliseconds: "milliseconds",
	Seconds:      "seconds",
	Minutes:      "minutes",
	Hours:        "hours",
	Days:         "days",
}

var unitAliases = map[string]Unit{
	"ns": Nanoseconds,
	"us": Microseconds,
	"µs": Microseconds,
	"ms": Milliseconds,
	"s":  Seconds,
	"m":  Minutes,
	"h":  Hours,
	"d":  Days,
}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool {
	_, ok := unitNanos[u]
	return ok
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Duration returns the length of one unit. It returns 0 for an invalid unit.
func (u Unit) Duration() time.Duration {
	return time.Duration(unitNanos[u])
}

// ToNanos converts d units to nanoseconds, saturating at the int64 range
// instead of overflowing.
func (u Unit) ToNanos(d int64) int64 {
	scale := unitNanos[u]
	if scale == 0 {
		return 0
	}
	if d > math.MaxInt64/scale {
		return math.MaxInt64
	}
	if d < math.MinInt64/scale {
		return math.MinInt64
	}
	return d * scale
}

// FromNanos converts ns nanoseconds to this unit, truncating toward zero.
func (u Unit) FromNanos(ns int64) int64 {
	scale := unitNanos[u]
	if scale == 0 {
		return 0
	}
	return ns / scale
}

// ParseUnit parses a unit from its full name ("milliseconds") or its short
// form ("ms"). Matching is case-insensitive.
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if u, ok := unitAliases[key]; ok {
		return u, nil
	}
	for u, name := range unitNames {
		if key == name || key == strings.TrimSuffix(name, "s") {
			return u, nil
		}
	}
	return 0, errors.NewValidationError("delayqueue", "unit", s, "unknown time unit").
		WithHint("use ns, us, ms, s, m, h, d or the full unit name")
}

func addSaturating(a, b int64) int64 {
	sum := a + b
	if b > 0 && sum < a {
		return math.MaxInt64
	}
	if b < 0 && sum > a {
		return math.MinInt64
	}
	return sum
}

func subSaturating(a, b int64) int64 {
	diff := a - b
	if b < 0 && diff < a {
		return math.MaxInt64
	}
	if b > 0 && diff > a {
		return math.MinInt64
	}
	return diff
}
