package api

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const runIDPrefix = "run_"

var runIDPattern = regexp.MustCompile(`^run_[a-f0-9]{32}$`)

// NewRunID generates a run ID: "run_" followed by a random UUID in
// lowercase hex without dashes.
func NewRunID() string {
	return runIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidateRunID checks whether the given string is a well-formed run ID.
func ValidateRunID(id string) bool {
	return runIDPattern.MatchString(id)
}
