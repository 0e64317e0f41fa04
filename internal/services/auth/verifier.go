package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/subhajit/appointment-booking/internal/model"
)

// Verifier checks a credential pair and resolves it to an identity.
// Any mismatch is reported as model.ErrInvalidCredentials.
type Verifier interface {
	Verify(ctx context.Context, creds model.Credentials) (*model.Identity, error)
}

// StaticVerifier accepts exactly one fixed username/password pair
type StaticVerifier struct {
	username []byte
	password []byte
}

var _ Verifier = (*StaticVerifier)(nil)

// NewStaticVerifier creates a verifier for a single literal pair
func NewStaticVerifier(username, password string) *StaticVerifier {
	return &StaticVerifier{
		username: []byte(username),
		password: []byte(password),
	}
}

// Verify compares both fields exactly and case-sensitively.
// Both comparisons always run so the result does not reveal which field was wrong.
func (v *StaticVerifier) Verify(_ context.Context, creds model.Credentials) (*model.Identity, error) {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), v.username)
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), v.password)

	if len(v.username) == 0 || userOK&passOK != 1 {
		return nil, model.ErrInvalidCredentials
	}
	return &model.Identity{Username: creds.Username}, nil
}

// BcryptVerifier accepts one fixed username whose password is known only by its bcrypt hash
type BcryptVerifier struct {
	username []byte
	hash     []byte
}

var _ Verifier = (*BcryptVerifier)(nil)

// NewBcryptVerifier creates a verifier from a username and a bcrypt hash
func NewBcryptVerifier(username, hash string) (*BcryptVerifier, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &BcryptVerifier{
		username: []byte(username),
		hash:     []byte(hash),
	}, nil
}

// Verify checks the username exactly and the password against the hash
func (v *BcryptVerifier) Verify(_ context.Context, creds model.Credentials) (*model.Identity, error) {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), v.username)
	hashErr := bcrypt.CompareHashAndPassword(v.hash, []byte(creds.Password))

	if len(v.username) == 0 || userOK != 1 || hashErr != nil {
		return nil, model.ErrInvalidCredentials
	}
	return &model.Identity{Username: creds.Username}, nil
}
