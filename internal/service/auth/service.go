package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	jwt.Service
	adminEmail        string
	adminPasswordHash []byte
}

func NewAuthService(jwtService jwt.Service, adminEmail string, adminPasswordHash string) auth.AuthService {
	return &AuthServiceImpl{
		Service:           jwtService,
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPasswordHash: []byte(adminPasswordHash),
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.AccessTokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	email := strings.ToLower(loginReq.Email)
	emailMatches := subtle.ConstantTimeCompare([]byte(email), []byte(a.adminEmail)) == 1

	// always run bcrypt, even for an unknown email
	pwErr := bcrypt.CompareHashAndPassword(a.adminPasswordHash, []byte(loginReq.Password))
	if !emailMatches || pwErr != nil {
		slog.Warn("Rejected login attempt", "email", email)
		return auth.AccessTokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken("admin", a.adminEmail)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}
