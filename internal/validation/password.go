package validation

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordModePlain  = "plain"
	PasswordModeBcrypt = "bcrypt"
)

// PasswordMatcher hashes passwords for storage and checks supplied ones.
type PasswordMatcher interface {
	Hash(plain string) (string, error)
	Matches(stored, supplied string) bool
}

// PlainMatcher stores passwords as given and compares them by exact string
// equality. Kept for compatibility with rows written before hashing existed.
type PlainMatcher struct{}

func (PlainMatcher) Hash(plain string) (string, error) { return plain, nil }

func (PlainMatcher) Matches(stored, supplied string) bool { return stored == supplied }

// BcryptMatcher stores bcrypt hashes.
type BcryptMatcher struct {
	Cost int
}

func (m BcryptMatcher) Hash(plain string) (string, error) {
	cost := m.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptMatcher) Matches(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// NewPasswordMatcher returns the matcher for mode. An empty mode means plain.
func NewPasswordMatcher(mode string) (PasswordMatcher, error) {
	switch mode {
	case "", PasswordModePlain:
		return PlainMatcher{}, nil
	case PasswordModeBcrypt:
		return BcryptMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}
