package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minGuardianAge = 25

// Service contains business logic for guardian accounts.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Signup registers a new guardian. Passwords are bcrypt-hashed; the
// guardian must be at least 25 years old.
func (s *Service) Signup(ctx context.Context, name, email, password, confirm string, dateOfBirth time.Time) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" || dateOfBirth.IsZero() {
		return User{}, ErrInvalidInput
	}
	if password != confirm {
		return User{}, ErrPasswordMismatch
	}
	if age(dateOfBirth, s.now().UTC()) < minGuardianAge {
		return User{}, ErrUnderage
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		DateOfBirth:  dateOfBirth,
		CreatedAt:    s.now().UTC(),
	}
	id, err := s.Repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.ID = id
	return user, nil
}

// Login checks credentials and returns the matching user. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// age computes whole years elapsed, counting the birthday itself.
func age(dateOfBirth, now time.Time) int {
	years := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		years--
	}
	return years
}
