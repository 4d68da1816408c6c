package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/streamlinehq/streamline/internal/server"
)

// AuthService initializes the Clerk SDK with the configured secret
// key. Token verification itself happens in the auth middleware.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
