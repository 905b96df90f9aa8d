package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/sweet_shop/internal/hash"
	"github.com/Skotchmaster/sweet_shop/internal/logging"
	"github.com/Skotchmaster/sweet_shop/internal/metrics"
	"github.com/Skotchmaster/sweet_shop/internal/models"
	"github.com/Skotchmaster/sweet_shop/internal/repo"
	"github.com/Skotchmaster/sweet_shop/internal/tokens"
)

var validate = validator.New()

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Issuer
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.PublicUser
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	verr := &ValidationError{}
	if validate.Var(email, "required,email") != nil {
		verr.add("email", "Please provide a valid email")
	}
	if password == "" {
		verr.add("password", "Password is required")
	}
	if name == "" {
		verr.add("name", "Name is required")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		Name:         name,
		Role:         models.RoleUser,
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 400, "reason", "user already exist")
			return nil, ErrConflict
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(&user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.TrimSpace(email)

	verr := &ValidationError{}
	if validate.Var(email, "required,email") != nil {
		verr.add("email", "Please provide a valid email")
	}
	if password == "" {
		verr.add("password", "Password is required")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
		return nil, ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: exp,
		User:      user.Public(),
	}, nil
}
