package auth

import (
	"context"
)

type AuthService interface {
	// Login checks the administrator credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (AccessTokenResponse, error)
}
