package account

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is the authorization level of an account.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

var ErrEmailTaken = errors.New("email already registered")

func ParseRole(v string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleMember:
		return RoleMember, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("invalid role: %q", v)
	}
}

// Account is a registered club member or administrator.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Principal is the identity carried by a verified access token.
type Principal struct {
	UserID string
	Role   Role
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
