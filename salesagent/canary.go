package salesagent

import (
	"strings"

	"github.com/google/uuid"
)

// NewSecurityToken returns a random canary token for the security layer.
func NewSecurityToken() string {
	return "AXIS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// CanaryLeaked reports whether a model reply exposes the security token.
func CanaryLeaked(reply, token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(reply), strings.ToUpper(token))
}
