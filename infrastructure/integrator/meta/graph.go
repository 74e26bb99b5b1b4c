package meta

import (
	"errors"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/social-metrics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// ExtractHashtags retorna as hashtags de um texto, em minúsculas e sem o #
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1]))
	}
	return tags
}

// LogGraphError registra os detalhes do erro da Graph API quando o corpo da resposta os contém
func LogGraphError(platform domain.Platform, operation string, err error) {
	fields := logrus.Fields{
		"platform":  platform,
		"operation": operation,
		"error":     err.Error(),
	}

	var upstream *social.UpstreamError
	if errors.As(err, &upstream) {
		if graphErr := metadomain.ParseError(upstream.Body); graphErr != nil {
			fields["graph_code"] = graphErr.Error.Code
			fields["graph_type"] = graphErr.Error.Type
			fields["graph_message"] = graphErr.Error.Message
			fields["fbtrace_id"] = graphErr.Error.FBTraceID
			fields["token_expired"] = graphErr.IsTokenExpired()
			fields["rate_limited"] = graphErr.IsRateLimited()
		}
	}

	logrus.WithFields(fields).Error("insights: failed to call graph api")
}

// Percentages converte totais por categoria em percentuais do total geral
func Percentages(totals map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(totals))
	var sum float64
	for _, v := range totals {
		sum += v
	}
	if sum == 0 {
		return out
	}
	for k, v := range totals {
		out[k] = utils.RoundWithTwoDecimalPlace(v / sum * 100)
	}
	return out
}

// SplitGenderAge separa o breakdown "F.18-24" em percentuais por gênero e por faixa etária
func SplitGenderAge(breakdown map[string]float64) (gender, age map[string]float64) {
	genderTotals := map[string]float64{}
	ageTotals := map[string]float64{}

	for key, v := range breakdown {
		g, a, ok := strings.Cut(key, ".")
		if !ok {
			continue
		}
		genderTotals[genderName(g)] += v
		ageTotals[a] += v
	}

	return Percentages(genderTotals), Percentages(ageTotals)
}

func genderName(code string) string {
	switch strings.ToUpper(code) {
	case "F":
		return "female"
	case "M":
		return "male"
	}
	return "unknown"
}

// ParseAdInsight converte os valores em string das insights de anúncio
func ParseAdInsight(platform domain.Platform, insight metadomain.AdInsight) domain.FacebookAdMetric {
	actions := make([]domain.AdAction, 0, len(insight.Actions))
	for _, a := range insight.Actions {
		actions = append(actions, domain.AdAction{
			ActionType: a.ActionType,
			Value:      social.ParseGraphFloat(platform, "actions."+a.ActionType, a.Value),
		})
	}

	return domain.FacebookAdMetric{
		AdID:         insight.AdID,
		CampaignName: insight.CampaignName,
		Impressions:  social.ParseGraphInt(platform, "impressions", insight.Impressions),
		Clicks:       social.ParseGraphInt(platform, "clicks", insight.Clicks),
		Spend:        social.ParseGraphFloat(platform, "spend", insight.Spend),
		Actions:      actions,
	}
}
