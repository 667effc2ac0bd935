package auth

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// HashPassword hashes plaintext using bcrypt at the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored hash. Besides bcrypt it accepts
// the Werkzeug format "pbkdf2:<digest>:<iterations>$<salt>$<hex>" used by accounts
// created before the bcrypt switch.
func CheckPassword(stored, plain string) bool {
	if strings.HasPrefix(stored, "pbkdf2:") {
		return checkPBKDF2(stored, plain)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

func checkPBKDF2(stored, plain string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	fields := strings.Split(method, ":")
	if len(fields) != 3 {
		return false
	}
	iterations, err := strconv.Atoi(fields[2])
	if err != nil || iterations <= 0 {
		return false
	}

	var newHash func() hash.Hash
	var size int
	switch fields[1] {
	case "sha256":
		newHash, size = sha256.New, sha256.Size
	case "sha512":
		newHash, size = sha512.New, sha512.Size
	default:
		return false
	}

	expected, err := hex.DecodeString(want)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(plain), []byte(salt), iterations, size, newHash)
	return subtle.ConstantTimeCompare(got, expected) == 1
}
