package ports

// Claims is the payload embedded in an access token: the subject's identity
// and its single role. Timing claims are handled by the token implementation.
type Claims struct {
	UserID uint
	Role   string
}

// TokenService issues and verifies self-contained, time-bounded access
// tokens. Verification is stateless: a token stays valid until its expiry
// regardless of later role changes or account deletion.
type TokenService interface {
	Issue(claims Claims) (string, error)
	// Verify returns domain.ErrExpiredToken for a token past its expiry and
	// domain.ErrInvalidToken for any other parse or signature failure.
	Verify(token string) (Claims, error)
}
