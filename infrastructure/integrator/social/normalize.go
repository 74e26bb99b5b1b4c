package social

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

const (
	maxTopHashtags    = 10
	maxBestTimes      = 5
	EngagementSampleN = 50
)

// EngagementRate = total / posts / followers x 100. Sem posts ou sem seguidores retorna 0.
func EngagementRate(totalEngagement int64, posts int, followers int64) float64 {
	if posts <= 0 || followers <= 0 {
		return 0
	}
	avg := float64(totalEngagement) / float64(posts)
	return avg / float64(followers) * 100
}

// HashtagAccumulator agrega uso, engajamento e alcance por hashtag
type HashtagAccumulator struct {
	order []string
	stats map[string]*hashtagTotals
}

type hashtagTotals struct {
	count       int
	engagement  int64
	reach       int64
	impressions int64
}

func NewHashtagAccumulator() *HashtagAccumulator {
	return &HashtagAccumulator{stats: make(map[string]*hashtagTotals)}
}

func (a *HashtagAccumulator) Add(tag string, engagement, reach, impressions int64) {
	tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return
	}
	t, ok := a.stats[tag]
	if !ok {
		t = &hashtagTotals{}
		a.stats[tag] = t
		a.order = append(a.order, tag)
	}
	t.count++
	t.engagement += engagement
	t.reach += reach
	t.impressions += impressions
}

// Top retorna as 10 hashtags de maior engajamento médio
func (a *HashtagAccumulator) Top() []domain.HashtagStat {
	out := make([]domain.HashtagStat, 0, len(a.order))
	for _, tag := range a.order {
		t := a.stats[tag]
		out = append(out, domain.HashtagStat{
			Tag:            tag,
			Usage:          t.count,
			AvgEngagement:  float64(t.engagement) / float64(t.count),
			TotalReach:     t.reach,
			AvgImpressions: float64(t.impressions) / float64(t.count),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgEngagement > out[j].AvgEngagement
	})

	if len(out) > maxTopHashtags {
		out = out[:maxTopHashtags]
	}
	return out
}

// TimeSlotAccumulator agrega posts por hora do dia ("H:00")
type TimeSlotAccumulator struct {
	location *time.Location
	order    []string
	slots    map[string]*slotTotals
}

type slotTotals struct {
	count       int
	value       int64
	impressions int64
}

// NewTimeSlotAccumulator usa time.Local quando loc é nil
func NewTimeSlotAccumulator(loc *time.Location) *TimeSlotAccumulator {
	if loc == nil {
		loc = time.Local
	}
	return &TimeSlotAccumulator{location: loc, slots: make(map[string]*slotTotals)}
}

func TimeSlot(t time.Time) string {
	return fmt.Sprintf("%d:00", t.Hour())
}

// Add soma value (views ou engajamento, conforme a plataforma) ao horário do post
func (a *TimeSlotAccumulator) Add(postedAt time.Time, value, impressions int64) {
	if postedAt.IsZero() {
		return
	}
	slot := TimeSlot(postedAt.In(a.location))
	s, ok := a.slots[slot]
	if !ok {
		s = &slotTotals{}
		a.slots[slot] = s
		a.order = append(a.order, slot)
	}
	s.count++
	s.value += value
	s.impressions += impressions
}

// Best retorna até 5 horários ordenados pela média de value
func (a *TimeSlotAccumulator) Best() []string {
	ranked := a.Ranked()
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Time)
	}
	return out
}

// Ranked retorna os mesmos horários de Best com as médias calculadas
func (a *TimeSlotAccumulator) Ranked() []domain.PostingTimeStat {
	out := make([]domain.PostingTimeStat, 0, len(a.order))
	for _, slot := range a.order {
		s := a.slots[slot]
		out = append(out, domain.PostingTimeStat{
			Time:           slot,
			EngagementRate: utils.RoundWithTwoDecimalPlace(float64(s.value) / float64(s.count)),
			AvgImpressions: int64(math.Round(float64(s.impressions) / float64(s.count))),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EngagementRate > out[j].EngagementRate
	})

	if len(out) > maxBestTimes {
		out = out[:maxBestTimes]
	}
	return out
}

// ParseGraphInt converte os números em string da Graph API. Valores inválidos viram 0.
func ParseGraphInt(platform domain.Platform, field, raw string) int64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"field":    field,
			"value":    raw,
		}).Warn("Erro ao converter valor numérico, usando 0")
		return 0
	}
	return v
}

func ParseGraphFloat(platform domain.Platform, field, raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"field":    field,
			"value":    raw,
		}).Warn("Erro ao converter valor numérico, usando 0")
		return 0
	}
	return v
}

// Ratio retorna part/total x 100, ou 0 quando total é 0
func Ratio(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

func Average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
