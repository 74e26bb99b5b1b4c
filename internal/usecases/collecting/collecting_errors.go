package collecting

import "errors"

var (
	ErrPlatformNotConfigured = errors.New("plataforma não configurada para coleta")
	ErrSnapshotNotFound      = errors.New("nenhum snapshot encontrado para a plataforma")
	ErrInvalidSnapshot       = errors.New("snapshot inválido")
	ErrInvalidRange          = errors.New("intervalo de datas inválido")
)
