package domain

import (
	"fmt"
	"time"
)

// Objective is the ordered wear-duration threshold quadruple of a
// contraception method. The quadruple is configuration: it is validated
// once at load time and immutable within a classification.
type Objective struct {
	MinExtra time.Duration
	Min      time.Duration
	Max      time.Duration
	MaxExtra time.Duration
}

func (o Objective) Validate() error {
	if o.MinExtra < 0 {
		return fmt.Errorf("objective thresholds must be non-negative")
	}
	if o.MinExtra > o.Min || o.Min > o.Max || o.Max > o.MaxExtra {
		return fmt.Errorf("objective thresholds must satisfy min_extra <= min <= max <= max_extra")
	}
	return nil
}

// SingleTarget reports whether the method has one target duration instead
// of a min/max range.
func (o Objective) SingleTarget() bool {
	return o.Min == o.Max
}

// Status classifies a day's accumulated wear time. The values form a total
// order over increasing wear.
type Status int

const (
	StatusNone Status = iota
	StatusFailed
	StatusWarned
	StatusSucceeded
	StatusReached
	StatusExceeded
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusFailed:
		return "failed"
	case StatusWarned:
		return "warned"
	case StatusSucceeded:
		return "succeeded"
	case StatusReached:
		return "reached"
	case StatusExceeded:
		return "exceeded"
	default:
		return "unknown"
	}
}

// Classify maps accumulated wear time to a status. The ladder must run in
// threshold order: a single-target method (Min == Max) leaves the
// SUCCEEDED bucket empty by construction, not by special-casing. A zero or
// negative total means no wear was recorded and classifies as NONE.
func Classify(total time.Duration, objective Objective) Status {
	switch {
	case total <= 0:
		return StatusNone
	case total < objective.MinExtra:
		return StatusFailed
	case total < objective.Min:
		return StatusWarned
	case total < objective.Max:
		return StatusSucceeded
	case total < objective.MaxExtra:
		return StatusReached
	default:
		return StatusExceeded
	}
}
