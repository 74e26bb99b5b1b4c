package metadomain

import (
	"time"
)

// GraphTimeLayout é o formato de data usado em created_time e timestamp
const GraphTimeLayout = "2006-01-02T15:04:05-0700"

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

type Summary struct {
	TotalCount int64 `json:"total_count"`
}

type SummaryEdge struct {
	Summary Summary `json:"summary"`
}

type InsightsResponse struct {
	Data   []Insight `json:"data"`
	Paging Paging    `json:"paging"`
}

type Insight struct {
	Name   string         `json:"name"`
	Period string         `json:"period"`
	Values []InsightValue `json:"values"`
}

// InsightValue pode ser um número ou um objeto (breakdowns como gender_age)
type InsightValue struct {
	Value   any    `json:"value"`
	EndTime string `json:"end_time"`
}

// Number retorna o valor mais recente da métrica como inteiro
func (i Insight) Number() int64 {
	if len(i.Values) == 0 {
		return 0
	}
	switch v := i.Values[len(i.Values)-1].Value.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Breakdown retorna o valor mais recente da métrica como mapa categoria -> total
func (i Insight) Breakdown() map[string]float64 {
	out := map[string]float64{}
	if len(i.Values) == 0 {
		return out
	}
	raw, ok := i.Values[len(i.Values)-1].Value.(map[string]any)
	if !ok {
		return out
	}
	for k, v := range raw {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	return out
}

// ByName indexa as métricas pelo nome
func (r InsightsResponse) ByName() map[string]Insight {
	out := make(map[string]Insight, len(r.Data))
	for _, i := range r.Data {
		out[i.Name] = i
	}
	return out
}

// ParseGraphTime retorna o zero de time.Time para valores vazios ou inválidos
func ParseGraphTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(GraphTimeLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// Action é um par action_type/value das insights de anúncio. Value vem como string.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type AdInsightsResponse struct {
	Data   []AdInsight `json:"data"`
	Paging Paging      `json:"paging"`
}

type AdInsight struct {
	AdID         string   `json:"ad_id"`
	AdName       string   `json:"ad_name"`
	CampaignName string   `json:"campaign_name"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Spend        string   `json:"spend"`
	Actions      []Action `json:"actions"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
}
