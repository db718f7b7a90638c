package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"go.uber.org/zap"
)

type AuthService struct {
	users repositories.UserRepositoryImpl
	log   *zap.Logger
}

func NewAuthService(users repositories.UserRepositoryImpl, log *zap.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// SignIn checks the credentials and returns the admin user. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.AdminUser, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		s.log.Info("admin sign in rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	s.log.Info("admin signed in", zap.String("id", user.ID))
	return user, nil
}

// CreateAdmin registers a new admin account.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*models.AdminUser, error) {
	if !helpers.IsLeadEmail(strings.TrimSpace(email)) {
		return nil, &ValidationError{Fields: map[string]string{"email": "Please enter a valid email address."}}
	}
	if len(password) < 8 {
		return nil, &ValidationError{Fields: map[string]string{"password": "Password must be at least 8 characters."}}
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}

	user := &models.AdminUser{Name: strings.TrimSpace(name), Email: email, Password: password}
	if err := s.users.Create(ctx, user); err != nil {
		if repositories.IsDuplicateKeyErr(err) {
			return nil, &ValidationError{Fields: map[string]string{"email": "An admin with this email already exists."}}
		}
		return nil, err
	}
	return user, nil
}
