package utils

import "github.com/google/uuid"

// GenerateID returns a new random (v4) UUID string.
func GenerateID() string {
	return uuid.NewString()
}

// ValidateID reports whether id is a well-formed UUID.
func ValidateID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
