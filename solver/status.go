// SPDX-License-Identifier: MIT

package solver

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Status is the state of a Solver:
//
//	Unspecialized → Specialized → Running → {Solved, Exhausted, Stopped}
type Status int

const (
	// Unspecialized: the builder has not been specialized yet.
	Unspecialized Status = iota
	// Specialized: ready to run.
	Specialized
	// Running: inside Solve.
	Running
	// Solved: a feasible state was reached (satisfaction) or the target
	// objective was met (optimization).
	Solved
	// Exhausted: the iteration budget ran out.
	Exhausted
	// Stopped: the context was cancelled or the time limit elapsed.
	Stopped
)

const (
	UnspecializedStr = "unspecialized"
	SpecializedStr   = "specialized"
	RunningStr       = "running"
	SolvedStr        = "solved"
	ExhaustedStr     = "exhausted"
	StoppedStr       = "stopped"
)

func (s Status) String() string {
	switch s {
	case Unspecialized:
		return UnspecializedStr
	case Specialized:
		return SpecializedStr
	case Running:
		return RunningStr
	case Solved:
		return SolvedStr
	case Exhausted:
		return ExhaustedStr
	case Stopped:
		return StoppedStr
	default:
		return "unknown"
	}
}

// ParseStatus accepts the lower-case names and their Title-case spelling.
func ParseStatus(str string) (Status, error) {
	switch str {
	case UnspecializedStr, "Unspecialized":
		return Unspecialized, nil
	case SpecializedStr, "Specialized":
		return Specialized, nil
	case RunningStr, "Running":
		return Running, nil
	case SolvedStr, "Solved":
		return Solved, nil
	case ExhaustedStr, "Exhausted":
		return Exhausted, nil
	case StoppedStr, "Stopped":
		return Stopped, nil
	default:
		return Unspecialized, fmt.Errorf("%w: %q", ErrUnknownStatus, str)
	}
}

// Valid reports whether s is one of the declared constants.
func (s Status) Valid() bool { return s >= Unspecialized && s <= Stopped }

// Terminal reports whether s ends a run.
func (s Status) Terminal() bool { return s == Solved || s == Exhausted || s == Stopped }

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("solver: status: %w", err)
	}
	return s.UnmarshalText([]byte(str))
}

func (s Status) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return s.String(), nil
}

func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("solver: status: %w", err)
	}
	return s.UnmarshalText([]byte(str))
}
