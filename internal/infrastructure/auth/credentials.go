// Package auth holds the password storage schemes.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vyom/tryon-store/internal/core/ports"
)

const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// PlainCredentials stores passwords unchanged and compares them with exact
// string equality.
type PlainCredentials struct{}

func (PlainCredentials) Seal(password string) (string, error) {
	return password, nil
}

func (PlainCredentials) Matches(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptCredentials stores bcrypt hashes.
type BcryptCredentials struct {
	Cost int
}

func (b BcryptCredentials) Seal(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptCredentials) Matches(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// NewCredentials resolves a scheme name from configuration.
func NewCredentials(scheme string) (ports.Credentials, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemePlain:
		return PlainCredentials{}, nil
	case SchemeBcrypt:
		return BcryptCredentials{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
