package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.Credentials

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.Login(req.Username, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		switch {
		case errors.Is(err, authenticating.ErrMissingCredentials):
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios", nil)
		case errors.Is(err, authenticating.ErrInvalidCredentials):
			apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Usuário ou senha inválidos", nil)
		default:
			logrus.WithError(err).Error("Erro no login")
			apiErrors.WriteError(w, authErr.Code, "Não foi possível autenticar", nil)
		}
		return
	}

	logrus.WithError(err).Error("Erro não tratado no login")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
}
