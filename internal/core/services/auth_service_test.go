package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/config"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
)

func newAuthService(f *fixture) *services.AuthService {
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "access-secret",
			RefreshSecret:    "refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return services.NewAuthService(
		repositories.NewUsuarioRepository(f.db),
		repositories.NewRefreshTokenRepository(f.db),
		cfg,
	)
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	u := f.usuario("staff@biblioteca.edu", domain.RoleBibliotecario)

	resp, err := svc.Login(f.ctx, &services.LoginInput{Email: " STAFF@biblioteca.edu", Password: "biblio2024"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.Usuario.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(1), f.count(&models.RefreshToken{}))

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, string(domain.RoleBibliotecario), claims.Role)

	_, err = svc.Login(f.ctx, &services.LoginInput{Email: "staff@biblioteca.edu", Password: "otra-clave1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(f.ctx, &services.LoginInput{Email: "nadie@biblioteca.edu", Password: "biblio2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	f.deactivate(&models.Usuario{}, u.ID)
	_, err = svc.Login(f.ctx, &services.LoginInput{Email: "staff@biblioteca.edu", Password: "biblio2024"})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthService_RefreshRotates(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	f.usuario("staff@biblioteca.edu", domain.RoleBibliotecario)

	login, err := svc.Login(f.ctx, &services.LoginInput{Email: "staff@biblioteca.edu", Password: "biblio2024"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(f.ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// the rotated token is spent
	_, err = svc.RefreshToken(f.ctx, login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.RefreshToken(f.ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// an access token is not a refresh token
	_, err = svc.RefreshToken(f.ctx, refreshed.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	u := f.usuario("staff@biblioteca.edu", domain.RoleBibliotecario)

	first, err := svc.Login(f.ctx, &services.LoginInput{Email: "staff@biblioteca.edu", Password: "biblio2024"})
	require.NoError(t, err)
	second, err := svc.Login(f.ctx, &services.LoginInput{Email: "staff@biblioteca.edu", Password: "biblio2024"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(f.ctx, first.RefreshToken))
	_, err = svc.RefreshToken(f.ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// unknown tokens are ignored
	assert.NoError(t, svc.Logout(f.ctx, "unknown"))

	require.NoError(t, svc.LogoutAll(f.ctx, u.ID))
	_, err = svc.RefreshToken(f.ctx, second.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	me, err := svc.GetUsuarioByID(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "staff@biblioteca.edu", me.Email)

	_, err = svc.GetUsuarioByID(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}
