package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"quantumfinance/internal/dto"
	"quantumfinance/pkg/auth"
	"quantumfinance/pkg/config"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues tokens to the single configured dashboard operator.
type AuthService struct {
	cfg        config.AuthConfig
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(cfg config.AuthConfig, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		cfg:        cfg,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// an empty hash disables password login altogether
	if s.cfg.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) != 1 {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, s.cfg.PasswordHash) {
		s.logger.Warn("Failed login attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	return s.issue(s.cfg.Username)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.TokenType != auth.TokenTypeRefresh || claims.Username != s.cfg.Username {
		return nil, ErrInvalidCredentials
	}

	return s.issue(claims.Username)
}

func (s *AuthService) issue(username string) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}
