package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/admitdesk/admitdesk/internal/platform/auth"
	"github.com/admitdesk/admitdesk/internal/platform/validate"
)

var ErrBadCredentials = errors.New("invalid email or password")

const minPasswordLen = 6

type Service struct {
	repo Repository
	jwt  auth.JWTConfig
}

func NewService(repo Repository, jwt auth.JWTConfig) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Signup registers a student account. The email must not already be on the
// roster.
func (s *Service) Signup(input SignupInput) (*User, error) {
	return s.register(input, auth.RoleStudent)
}

// CreateAdmin registers an admin account, used by the CLI.
func (s *Service) CreateAdmin(input SignupInput) (*User, error) {
	return s.register(input, auth.RoleAdmin)
}

func (s *Service) register(input SignupInput, role string) (*User, error) {
	if err := validate.Required("name", input.Name); err != nil {
		return nil, err
	}
	if err := validate.Email(input.Email); err != nil {
		return nil, err
	}
	if input.Phone != "" {
		if err := validate.Phone(input.Phone); err != nil {
			return nil, err
		}
	}
	if len(input.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters",
			validate.ErrValidation, minPasswordLen)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	return s.repo.Add(&User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
}

// Login checks credentials and issues a session token. The signed-in
// account is persisted for parity with the legacy layout.
func (s *Service) Login(email, password string) (*User, string, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrBadCredentials
	}

	token, err := auth.IssueToken(s.jwt, u.ID, u.Name, u.Role)
	if err != nil {
		return nil, "", err
	}
	if err := s.repo.SetCurrent(u); err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout clears the persisted signed-in account. Tokens already issued
// simply expire.
func (s *Service) Logout() error {
	return s.repo.ClearCurrent()
}

func (s *Service) Get(id string) (*User, error) {
	return s.repo.Get(id)
}

// UpdateProfile changes the owner-editable fields, leaving credentials and
// role untouched.
func (s *Service) UpdateProfile(id string, update ProfileUpdate) (*User, error) {
	u, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if update.Name != "" {
		u.Name = update.Name
	}
	if update.Phone != "" {
		if err := validate.Phone(update.Phone); err != nil {
			return nil, err
		}
		u.Phone = update.Phone
	}
	return s.repo.Update(u)
}
