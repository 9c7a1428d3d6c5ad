package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// passlib pbkdf2_sha256 defaults, rows hashed by the earlier deployment use them
	pbkdf2Rounds  = 29000
	pbkdf2SaltLen = 16
	pbkdf2KeyLen  = 32

	passlibPrefix = "$pbkdf2-sha256$"
	djangoPrefix  = "pbkdf2_sha256$"
)

// dummyHash is verified against when the user does not exist so the
// response time does not leak which usernames are registered
var dummyHash = passlibPrefix + "29000$N2bsvfd.r/W.d855Lj3WKg$YXNcs52kJNfNWRvm2LSDpgM2L/4VmvhMLr66mewXEeY"

// HashPassword creates a salted PBKDF2-SHA256 digest of the given plaintext.
// Output format: $pbkdf2-sha256$<rounds>$<salt>$<checksum>, both parts in
// passlib's adapted base64.
func HashPassword(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Rounds, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("%s%d$%s$%s", passlibPrefix, pbkdf2Rounds, ab64Encode(salt), ab64Encode(key)), nil
}

// VerifyPassword checks the plaintext against a stored digest.
// Accepts passlib pbkdf2-sha256, Django pbkdf2_sha256 and bcrypt digests.
// Any malformed digest yields false.
func VerifyPassword(password, hashedPassword string) bool {
	switch {
	case strings.HasPrefix(hashedPassword, passlibPrefix):
		return verifyPasslib(password, strings.TrimPrefix(hashedPassword, passlibPrefix))
	case strings.HasPrefix(hashedPassword, djangoPrefix):
		return verifyDjango(password, strings.TrimPrefix(hashedPassword, djangoPrefix))
	case strings.HasPrefix(hashedPassword, "$2a$"),
		strings.HasPrefix(hashedPassword, "$2b$"),
		strings.HasPrefix(hashedPassword, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
	default:
		return false
	}
}

// DummyVerify spends the same work as a real verification and discards the result.
func DummyVerify(password string) {
	VerifyPassword(password, dummyHash)
}

func verifyPasslib(password, rest string) bool {
	parts := strings.Split(rest, "$")
	if len(parts) != 3 {
		return false
	}
	rounds, err := strconv.Atoi(parts[0])
	if err != nil || rounds < 1 {
		return false
	}
	salt, err := ab64Decode(parts[1])
	if err != nil {
		return false
	}
	want, err := ab64Decode(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// Django stores the salt as text and the key in padded standard base64.
func verifyDjango(password, rest string) bool {
	parts := strings.Split(rest, "$")
	if len(parts) != 3 || parts[1] == "" {
		return false
	}
	rounds, err := strconv.Atoi(parts[0])
	if err != nil || rounds < 1 {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(parts[1]), rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// adapted base64: standard alphabet with '.' for '+', no padding
func ab64Encode(b []byte) string {
	return strings.ReplaceAll(base64.RawStdEncoding.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	s = strings.TrimRight(strings.ReplaceAll(s, ".", "+"), "=")
	return base64.RawStdEncoding.DecodeString(s)
}
