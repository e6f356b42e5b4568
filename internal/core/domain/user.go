package domain

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

// ValidRole reports whether role is one of the known role tags.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// ErrInvalidCredentials covers both an unknown username and a wrong password.
// The two cases are deliberately indistinguishable to callers so login
// responses cannot be used to enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated covers every bearer-token failure: missing, malformed,
// forged, expired, or a subject that no longer exists. Callers must not learn
// which; the specific cause goes to the audit trail only.
var ErrUnauthenticated = errors.New("could not validate credentials")

var ErrInactiveAccount = errors.New("inactive user")
var ErrPermissionDenied = errors.New("insufficient permissions")
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned by repositories; the services collapse it into
// ErrInvalidCredentials or ErrUnauthenticated before it leaves the core.
var ErrUserNotFound = errors.New("user not found")

// User models an authenticated actor in the system.
type User struct {
	ID           string `json:"id,omitempty"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Disabled     bool   `json:"disabled"`
}

// TokenPair is the result of a successful login: a short-lived access token
// and a longer-lived refresh token registered in the live set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
