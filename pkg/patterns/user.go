package patterns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInvalidUser    = errors.New("invalid user")
)

// User is the domain model stored by a UserRepository.
// A zero ID means the user has not been saved yet.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

// NewUser creates an unsaved user stamped with the current time.
func NewUser(name, email string) *User {
	return &User{Name: name, Email: email, CreatedAt: time.Now()}
}

// UserRepository stores users.
//
// Save assigns an ID to users with a zero ID and updates the others.
// Emails are unique; saving a second user with a known email returns
// ErrDuplicateEmail. Lookups of a single user return ErrUserNotFound.
type UserRepository interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByName(ctx context.Context, name string) ([]User, error)
	FindAll(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserService applies the registration rules on top of a repository.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func validateUser(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidUser)
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("%w: invalid email format", ErrInvalidUser)
	}
	return nil
}

// RegisterUser validates and stores a new user. The name is trimmed and the
// email lower-cased. A nil user with a nil error means the email is taken.
func (s *UserService) RegisterUser(ctx context.Context, name, email string) (*User, error) {
	if err := validateUser(name, email); err != nil {
		return nil, err
	}
	email = strings.ToLower(email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u := NewUser(strings.TrimSpace(name), email)
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser changes the name and/or email of an existing user.
// Empty arguments leave the field unchanged.
func (s *UserService) UpdateUser(ctx context.Context, id int64, name, email string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidUser)
		}
		u.Name = strings.TrimSpace(name)
	}
	if email != "" {
		if err := validateUser(u.Name, email); err != nil {
			return nil, err
		}
		email = strings.ToLower(email)
		if other, err := s.repo.FindByEmail(ctx, email); err == nil && other.ID != id {
			return nil, ErrDuplicateEmail
		}
		u.Email = email
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(email))
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) SearchByName(ctx context.Context, name string) ([]User, error) {
	return s.repo.FindByName(ctx, name)
}

// Timestamps are written as RFC 3339. The other layouts cover naive
// timestamps and the SQLite CURRENT_TIMESTAMP default.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
