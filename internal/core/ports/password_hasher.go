package ports

// PasswordHasher produces salted one-way digests and verifies plaintexts
// against them. The salt is embedded in the digest, so two digests of the
// same plaintext never match.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify compares in constant time and reports false for a malformed
	// digest instead of failing.
	Verify(plaintext, digest string) bool
}
