package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateReference builds a sequential document reference such as PI-000042.
func GenerateReference(prefix string, number int) string {
	return fmt.Sprintf("%s-%06d", prefix, number)
}
