// Package schema contains the system description model consumed by synthesis.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Identifier represents a validated schema name (system, handler, function
// or parameter name).
type Identifier struct {
	value string
}

// NewIdentifier creates an Identifier with strict validation.
// A valid identifier must:
// - Be non-empty
// - Start with a letter or underscore
// - Contain only alphanumeric characters and underscores
// - Be at most 64 characters long
func NewIdentifier(name string) (Identifier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Identifier{}, fmt.Errorf("identifier cannot be empty")
	}

	if len(name) > 64 {
		return Identifier{}, fmt.Errorf("identifier %q too long (max 64 chars)", name)
	}

	for i, ch := range name {
		if i == 0 {
			if !isIdentStart(ch) {
				return Identifier{}, fmt.Errorf("invalid identifier %q: must start with a letter or underscore", name)
			}
			continue
		}
		if !isIdentChar(ch) {
			return Identifier{}, fmt.Errorf("invalid identifier %q: must contain only alphanumeric characters and underscores", name)
		}
	}

	return Identifier{value: name}, nil
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r == '_'
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

// MustNewIdentifier creates an Identifier or panics
func MustNewIdentifier(name string) Identifier {
	id, err := NewIdentifier(name)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation
func (i Identifier) String() string {
	return i.value
}

// IsEmpty returns true if this is the zero value
func (i Identifier) IsEmpty() bool {
	return i.value == ""
}

// Equals checks if two identifiers are equal
func (i Identifier) Equals(other Identifier) bool {
	return i.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (i Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (i *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid identifier JSON: %w", err)
	}

	id, err := NewIdentifier(s)
	if err != nil {
		return err
	}
	*i = id
	return nil
}
