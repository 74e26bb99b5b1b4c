package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera ids curtos para execuções de coleta e dados de exemplo
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 12)
}

// NewSnapshotID gera o identificador persistido de um snapshot
func NewSnapshotID() string {
	return uuid.NewString()
}
