package domain

import (
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
)

// AllPlatforms lista as plataformas na ordem padrão de coleta
var AllPlatforms = []Platform{
	PlatformTikTok,
	PlatformFacebook,
	PlatformInstagram,
	PlatformTwitter,
}

func (p Platform) String() string {
	return string(p)
}

func (p Platform) IsValid() bool {
	switch p {
	case PlatformTikTok, PlatformFacebook, PlatformInstagram, PlatformTwitter:
		return true
	}
	return false
}

// ParsePlatform converte o nome recebido (case insensitive) para uma plataforma conhecida
func ParsePlatform(name string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	if !p.IsValid() {
		return "", fmt.Errorf("plataforma inválida: %q", name)
	}
	return p, nil
}

// ParsePlatforms converte uma lista de nomes ignorando entradas vazias e duplicadas
func ParsePlatforms(names []string) ([]Platform, error) {
	platforms := make([]Platform, 0, len(names))
	seen := make(map[Platform]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		p, err := ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}
	return platforms, nil
}
