// Package registrar turns heterogeneous batch payloads into inserted/skipped
// outcomes. Payload shape is resolved exactly once at the boundary; the
// registration logic itself only ever sees an ordered list of candidates.
package registrar

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotAuthorized rejects a whole batch when the caller lacks admin rights.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrEmptyPayload rejects payloads that normalize to zero candidates.
	ErrEmptyPayload = errors.New("empty payload")
)

// ValidationError points at the candidate and field that failed validation.
type ValidationError struct {
	Index int
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("candidate %d: missing or invalid %s", e.Index, e.Field)
}

type envelope struct {
	IsAdmin bool `json:"isAdmin"`
}

// normalizeBatch flattens a payload that is a single object, a bare array, or
// an object wrapping an array under wrapperKey into an ordered item list.
// The admin flag is consumed once: from the wrapper envelope, or from the
// first item (including a single bare object) when allowItemFlag is set.
// Without allowItemFlag, item-level flags are data, not authorization, no
// matter the payload shape.
func normalizeBatch(raw []byte, wrapperKey string, allowItemFlag bool) ([]json.RawMessage, bool, error) {
	var items []json.RawMessage
	isAdmin := false

	// Bare array?
	if err := json.Unmarshal(raw, &items); err == nil {
		if allowItemFlag && len(items) > 0 {
			isAdmin = itemAdminFlag(items[0])
		}
		return items, isAdmin, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false, fmt.Errorf("payload is neither an object nor an array: %w", err)
	}

	if wrapped, ok := obj[wrapperKey]; ok {
		var nested []json.RawMessage
		if err := json.Unmarshal(wrapped, &nested); err == nil {
			isAdmin = itemAdminFlag(raw)
			if !isAdmin && allowItemFlag && len(nested) > 0 {
				isAdmin = itemAdminFlag(nested[0])
			}
			return nested, isAdmin, nil
		}
	}

	// Single object. It is an item, not an envelope, so its flag counts only
	// where item-level flags authorize.
	if allowItemFlag {
		isAdmin = itemAdminFlag(raw)
	}
	return []json.RawMessage{raw}, isAdmin, nil
}

func itemAdminFlag(item json.RawMessage) bool {
	var env envelope
	if err := json.Unmarshal(item, &env); err != nil {
		return false
	}
	return env.IsAdmin
}
