package models

import (
	"strings"

	"factforum/internal/common"
)

// Role is the single axis of authorization. The set is closed: every account
// carries exactly one of these values.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Roles lists all valid roles in a stable order.
var Roles = []Role{RoleStudent, RoleFaculty, RoleAdmin}

// ParseRole normalizes a raw role string (case, surrounding whitespace) and
// validates it against the closed set. Returns common.ErrorInvalidRole for
// anything outside it.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleFaculty:
		return RoleFaculty, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", common.ErrorInvalidRole
	}
}

func (r Role) String() string { return string(r) }
