package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadomain "github.com/vfg2006/social-metrics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "Sem hashtags", text: "bom dia", expected: []string{}},
		{name: "Acentos e sublinhado", text: "Olá #Verão e #Praia_2024!", expected: []string{"verão", "praia_2024"}},
		{name: "Hashtags coladas", text: "#a#b", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractHashtags(tt.text))
		})
	}
}

func TestPercentages(t *testing.T) {
	assert.Empty(t, Percentages(map[string]float64{}))
	assert.Empty(t, Percentages(map[string]float64{"BR": 0}))

	got := Percentages(map[string]float64{"BR": 1, "PT": 2})
	assert.Equal(t, 33.33, got["BR"])
	assert.Equal(t, 66.67, got["PT"])
}

func TestSplitGenderAge(t *testing.T) {
	gender, age := SplitGenderAge(map[string]float64{
		"F.18-24": 20,
		"F.25-34": 30,
		"M.18-24": 40,
		"U.25-34": 10,
		"invalido": 999,
	})

	assert.InDelta(t, 50, gender["female"], 0.001)
	assert.InDelta(t, 40, gender["male"], 0.001)
	assert.InDelta(t, 10, gender["unknown"], 0.001)
	assert.InDelta(t, 60, age["18-24"], 0.001)
	assert.InDelta(t, 40, age["25-34"], 0.001)
}

func TestParseAdInsight(t *testing.T) {
	metric := ParseAdInsight(domain.PlatformFacebook, metadomain.AdInsight{
		AdID:         "a1",
		CampaignName: "Black Friday",
		Impressions:  "2500",
		Clicks:       "abc",
		Spend:        "99.90",
		Actions: []metadomain.Action{
			{ActionType: "purchase", Value: "3"},
			{ActionType: "link_click", Value: ""},
		},
	})

	assert.Equal(t, "a1", metric.AdID)
	assert.Equal(t, int64(2500), metric.Impressions)
	assert.Equal(t, int64(0), metric.Clicks)
	assert.Equal(t, 99.9, metric.Spend)
	require.Len(t, metric.Actions, 2)
	assert.Equal(t, 3.0, metric.Actions[0].Value)
	assert.Equal(t, 0.0, metric.Actions[1].Value)
}

func TestParseError(t *testing.T) {
	expired := metadomain.ParseError(`{"error": {"message": "Session has expired", "type": "OAuthException", "code": 190, "fbtrace_id": "x"}}`)
	require.NotNil(t, expired)
	assert.True(t, expired.IsTokenExpired())
	assert.False(t, expired.IsRateLimited())

	throttled := metadomain.ParseError(`{"error": {"message": "Application request limit reached", "code": 4}}`)
	require.NotNil(t, throttled)
	assert.True(t, throttled.IsRateLimited())

	assert.Nil(t, metadomain.ParseError(`<html>502</html>`))
	assert.Nil(t, metadomain.ParseError(`{"error": "texto"}`))
}
