package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/config"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/jwt"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/password"
)

// AuthService handles authentication business logic
type AuthService struct {
	usuarioRepo      repositories.UsuarioRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	usuarioRepo repositories.UsuarioRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		usuarioRepo:      usuarioRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Usuario      *models.UsuarioResponse `json:"usuario"`
	AccessToken  string                  `json:"access_token"`
	RefreshToken string                  `json:"refresh_token"`
}

// Login authenticates a usuario by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// 1. Find usuario by email
	usuario, err := s.usuarioRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password before revealing anything about the account
	if !password.Verify(input.Password, usuario.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Check if usuario is active
	if !usuario.Activo {
		return nil, domain.ErrAccountInactive
	}

	// 4. Issue and store tokens
	resp, err := s.issue(ctx, usuario)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", usuario.Email).Msg("usuario logged in")
	return resp, nil
}

// RefreshToken rotates a refresh token: the old one is revoked and a new pair issued
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	// 2. Find the stored, non-revoked token by hash
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}
	if storedToken.UsuarioID != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}

	// 3. Get usuario
	usuario, err := s.usuarioRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, translate(err, domain.ErrTokenInvalid)
	}
	if !usuario.Activo {
		return nil, domain.ErrAccountInactive
	}

	// 4. Revoke old refresh token (token rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	resp, err := s.issue(ctx, usuario)
	if err != nil {
		return nil, err
	}

	log.Debug().Uint("usuario_id", usuario.ID).Msg("token refreshed")
	return resp, nil
}

// Logout revokes the refresh token. Unknown or already revoked tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return err
	}

	log.Info().Uint("usuario_id", storedToken.UsuarioID).Msg("usuario logged out")
	return nil
}

// LogoutAll revokes all refresh tokens of a usuario
func (s *AuthService) LogoutAll(ctx context.Context, usuarioID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUsuarioID(ctx, usuarioID); err != nil {
		return err
	}

	log.Info().Uint("usuario_id", usuarioID).Msg("all sessions revoked")
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUsuarioByID gets the authenticated usuario
func (s *AuthService) GetUsuarioByID(ctx context.Context, usuarioID uint) (*models.UsuarioResponse, error) {
	usuario, err := s.usuarioRepo.GetByID(ctx, usuarioID)
	if err != nil {
		return nil, translate(err, domain.ErrUsuarioNotFound)
	}
	return usuario.ToResponse(), nil
}

// issue generates a token pair and stores the hashed refresh token
func (s *AuthService) issue(ctx context.Context, usuario *models.Usuario) (*AuthResponse, error) {
	tokens, err := s.generateTokens(usuario)
	if err != nil {
		return nil, err
	}

	token := &models.RefreshToken{
		UsuarioID: usuario.ID,
		TokenHash: password.HashToken(tokens.RefreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Usuario:      usuario.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(usuario *models.Usuario) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		usuario.ID,
		usuario.Email,
		usuario.Rol,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		usuario.ID,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
