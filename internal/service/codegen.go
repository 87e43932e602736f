package service

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateCode produces a human-readable work order code of the form
// <PREFIX>-<8 uppercase alphanumerics>. Collisions are possible but rare;
// the caller resolves them through the store's unique index and retries.
func GenerateCode(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + "-" + suffix
}
