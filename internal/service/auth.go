package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	pkg_hash "github.com/Skotchmaster/coffee_shop/pkg/hash"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

const minPasswordLen = 6

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	AccessTTL time.Duration
	Now       func() time.Time
}

type LoginResult struct {
	AccessToken string
	AccessExp   time.Time
	User        *models.User
}

func (s *AuthService) CreateAccessToken(user *models.User, exp time.Time) (string, error) {
	return tokens.NewAccessToken(s.JWTSecret, strconv.FormatUint(uint64(user.ID), 10), string(user.Role), user.Name, exp)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "wrong password", "user_id", user.ID)
		return nil, ErrBadCredentials
	}

	exp := nowFunc(s.Now).Add(s.AccessTTL)
	token, err := s.CreateAccessToken(user, exp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, AccessExp: exp, User: user}, nil
}

func (s *AuthService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	role := models.RoleCustomer
	if req.Role != "" {
		r, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		role = r
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: name, Email: email, PasswordHash: pwHash, Role: role}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("%w: user %s", ErrDuplicate, email)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// EnsureAdmin creates the bootstrap admin account when credentials are
// configured and no account with that email exists yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.CreateUser(ctx, transport.CreateUserRequest{
		Name:     "Admin",
		Email:    email,
		Password: password,
		Role:     string(models.RoleAdmin),
	})
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}

// CallerFromClaims turns verified token fields into a Caller. Unknown roles
// are rejected.
func CallerFromClaims(subject, role, name string) (Caller, error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return Caller{}, fmt.Errorf("%w: %v", ErrForbidden, err)
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return Caller{}, fmt.Errorf("%w: bad subject", ErrForbidden)
	}
	uid := uint(id)
	return Caller{UserID: &uid, Role: r, Name: name}, nil
}
