package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/social-metrics-api/internal/config"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewService(config.Auth{
		Secret:            "segredo-de-teste",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		TokenTTL:          time.Hour,
	})
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "Credenciais corretas emitem token", username: "admin", password: "senha-forte"},
		{name: "Senha incorreta", username: "admin", password: "errada", wantErr: ErrInvalidCredentials},
		{name: "Usuário incorreto", username: "outro", password: "senha-forte", wantErr: ErrInvalidCredentials},
		{name: "Campos vazios", username: " ", password: "", wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t)

			token, err := s.Login(tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsCredentialsError(err))
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			claims, err := s.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.Username)
			assert.True(t, claims.IsAdmin())
		})
	}
}

func TestService_LoginNotConfigured(t *testing.T) {
	s := NewService(config.Auth{Secret: "x", AdminUsername: "admin"})

	_, err := s.Login("admin", "qualquer")

	assert.ErrorIs(t, err, ErrAuthNotConfigured)
	assert.Equal(t, 24*time.Hour, s.cfg.TokenTTL)
}

func TestService_ValidateToken(t *testing.T) {
	s := newTestService(t)
	issuedAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issuedAt }

	token, err := s.Login("admin", "senha-forte")
	require.NoError(t, err)

	t.Run("Token expirado", func(t *testing.T) {
		s.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
		defer func() { s.now = func() time.Time { return issuedAt } }()

		_, err := s.ValidateToken(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsTokenError(err))
	})

	t.Run("Assinatura com outro segredo", func(t *testing.T) {
		other := newTestService(t)
		other.cfg.Secret = "outro-segredo"
		other.now = s.now

		_, err := other.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, err := s.ValidateToken("abc.def")

		var authErr *AuthError
		require.True(t, errors.As(err, &authErr))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token válido", func(t *testing.T) {
		claims, err := s.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, claims.RoleID)
		assert.Equal(t, issuedAt.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	})
}
