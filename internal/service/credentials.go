package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"feedback-survey/internal/models"
	"feedback-survey/internal/repository"
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 6

// Signup messages shown to the client.
const (
	MsgAllFieldsRequired  = "All fields are required."
	MsgPasswordMismatch   = "Passwords do not match."
	MsgPasswordTooShort   = "Password must be at least 6 characters."
	MsgEmailRegistered    = "Email already registered. Please login."
	MsgCredentialsMissing = "Email and password are required."
	MsgInvalidCredentials = "Invalid email or password."
)

type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Credentials creates and authenticates users against a UserStore.
type Credentials struct {
	users repository.UserStore
	cost  int
}

func NewCredentials(users repository.UserStore, bcryptCost int) *Credentials {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Credentials{users: users, cost: bcryptCost}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser validates the signup input, stores a bcrypt digest of the password
// and returns the new user.
func (c *Credentials) CreateUser(ctx context.Context, in SignupInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)

	if name == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, invalid(MissingField, "", MsgAllFieldsRequired)
	}
	if in.Password != in.ConfirmPassword {
		return nil, invalid(PasswordMismatch, "confirm_password", MsgPasswordMismatch)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return nil, invalid(PasswordTooShort, "password", MsgPasswordTooShort)
	}

	existing, err := c.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	digest, err := bcrypt.GenerateFromPassword(passwordKey(in.Password), c.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(digest)}
	if err := c.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user matching email and password, or ErrAuthFailure.
func (c *Credentials) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid(MissingField, "", MsgCredentialsMissing)
	}

	user, err := c.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAuthFailure
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordKey(password)); err != nil {
		return nil, ErrAuthFailure
	}
	return user, nil
}

// passwordKey derives the fixed-length bcrypt input for a password of any
// length; bcrypt itself rejects inputs over 72 bytes.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	key := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(key, sum[:])
	return key
}

// User looks a user up by id; a missing user is (nil, nil).
func (c *Credentials) User(ctx context.Context, id int64) (*models.User, error) {
	return c.users.FindByID(ctx, id)
}
