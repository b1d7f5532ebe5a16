package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusPaid      Status = "paid"
)

// Vocabulary selects the status words the remote API speaks.
type Vocabulary string

const (
	VocabularyEnglish    Vocabulary = "en"
	VocabularyPortuguese Vocabulary = "pt"
)

var portugueseStatuses = map[Status]string{
	StatusPending:   "pendente",
	StatusPreparing: "preparando",
	StatusReady:     "pronto",
	StatusDelivered: "entregue",
	StatusPaid:      "pago",
}

var allStatuses = []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusPaid}

func ParseStatus(raw string) (Status, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range allStatuses {
		if value == string(s) || value == portugueseStatuses[s] {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Next is the status the kitchen advances an order to. Anything past ready
// collapses to delivered.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusPreparing
	case StatusPreparing:
		return StatusReady
	default:
		return StatusDelivered
	}
}

func (s Status) Wire(v Vocabulary) string {
	if v == VocabularyPortuguese {
		if pt, ok := portugueseStatuses[s]; ok {
			return pt
		}
	}
	return string(s)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type StatusSet []Status

func (set StatusSet) Contains(s Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

// CSV renders the set for a status__in query parameter.
func (set StatusSet) CSV(v Vocabulary) string {
	parts := make([]string, 0, len(set))
	for _, s := range set {
		parts = append(parts, s.Wire(v))
	}
	return strings.Join(parts, ",")
}
