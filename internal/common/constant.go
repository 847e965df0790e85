package common

const (
	// RequestIDHeaderName carries a per-call correlation id on outbound requests.
	RequestIDHeaderName = "X-Request-ID"

	// IdentityRefKey is the metadata key under which the current user id is persisted.
	IdentityRefKey = "user_id"

	// LastSignInKey records when IdentityRefKey was last written (RFC 3339).
	LastSignInKey = "last_sign_in"
)
