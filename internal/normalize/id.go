package normalize

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates identifiers for records the model returned without one.
// It is a package variable so tests can substitute a deterministic source.
var NewID = func() string {
	return uuid.NewString()
}

func ensureID(id string) string {
	if strings.TrimSpace(id) == "" {
		return NewID()
	}
	return strings.TrimSpace(id)
}
