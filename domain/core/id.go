package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// SweepID identifies one parameter-sweep run
type SweepID = ID

// ParseID validates a string as a domain identifier
func ParseID(s string) (ID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", NewInvalidParameterError("id", "must be a valid UUID")
	}
	return ID(s), nil
}
