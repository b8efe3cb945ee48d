package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted one-way hashes and
// checks plaintext candidates against them.
//
// Scheme:
//
//	encoded = Hash(password)          fresh random salt on every call
//	ok      = Verify(password, encoded)  salt and cost read back from encoded
type PasswordHasher interface {
	// Hash derives a self-describing hash of plaintext. Two calls with the
	// same plaintext never return the same value.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches encoded. A malformed encoded
	// value yields false, never an error.
	Verify(plaintext, encoded string) bool
}
