package users

import "strings"

const (
	RoleClient     = "client"
	RoleCommercial = "commercial"
	RoleAdmin      = "admin"
)

// Marker substrings that promote an account at registration time.
// The admin marker is checked first: an email carrying both markers
// resolves to admin.
const (
	adminMarker      = "adminvi25"
	commercialMarker = "coriscomvi25"
)

// DetectRole derives the account role from the email address. The role
// is resolved once at registration and stored, never re-derived on read.
func DetectRole(email string) string {
	email = strings.ToLower(email)
	if strings.Contains(email, adminMarker) {
		return RoleAdmin
	}
	if strings.Contains(email, commercialMarker) {
		return RoleCommercial
	}
	return RoleClient
}
