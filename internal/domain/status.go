package domain

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReceived   Status = "received"
	StatusCancelled  Status = "cancelled"
)

// legacyReceived is the misspelling carried by old records. It is accepted on
// input and normalized to StatusReceived, never written back.
const legacyReceived = "recieved"

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusReceived: true, StatusCancelled: true},
	StatusReceived:   {},
	StatusCancelled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// Terminal reports whether no further transitions are allowed from s.
func Terminal(s Status) bool {
	return len(validNext[s]) == 0
}

// ParseStatus normalizes a raw status string to a canonical Status. Matching
// is case-insensitive and the legacy misspelling of "received" is accepted.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusProcessing):
		return StatusProcessing, nil
	case string(StatusReceived), legacyReceived:
		return StatusReceived, nil
	case string(StatusCancelled):
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown status %q", raw)
}
