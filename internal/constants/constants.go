package constants

const (
	// ContextKeyUser is the gin context key holding the authenticated user.
	ContextKeyUser = "current_user"

	MinPasswordLength = 8

	// DefaultListLimit matches the API's documented default page size.
	DefaultListLimit = 100
	MaxListLimit     = 1000
)
