// Package reporting transforma o log bruto de eventos de interação em
// relatórios semanais com métricas e rankings.
package reporting

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/wellness-reporting-api/internal/domain"
	"github.com/vfg2006/wellness-reporting-api/pkg/utils"
)

// ErrInvalidLimit indica um limite negativo passado aos rankings, o que é um
// erro de programação do chamador e não dado ruim de usuário
var ErrInvalidLimit = errors.New("limite de ranking não pode ser negativo")

const defaultTopLimit = 5

// Reporter define a interface consumida pelos handlers e pelo agendador
type Reporter interface {
	GenerateWeeklyReport(events []domain.Event, reference time.Time) (*domain.WeeklyReport, error)
}

type Service struct {
	topLimit int
}

func NewService(topLimit int) *Service {
	if topLimit <= 0 {
		topLimit = defaultTopLimit
	}
	return &Service{topLimit: topLimit}
}

// FilterByDateRange retém os eventos cujo campo Date está dentro do intervalo
// [startDate, endDate] inclusivo. A comparação lexicográfica é válida porque
// as datas são ISO com zeros à esquerda.
func (s *Service) FilterByDateRange(events []domain.Event, startDate, endDate string) []domain.Event {
	filtered := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if event.Date >= startDate && event.Date <= endDate {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// CurrentWeekWindow calcula a segunda-feira e o domingo da semana que contém
// o instante de referência. Convenção fixa com semana iniciando na segunda
// (domingo pertence à semana da segunda anterior), independente de locale.
func CurrentWeekWindow(reference time.Time) (time.Time, time.Time) {
	weekday := int(reference.Weekday())

	diff := reference.Day() - weekday
	if weekday == 0 {
		diff -= 6
	} else {
		diff++
	}

	// time.Date normaliza dias fora do intervalo do mês
	monday := time.Date(reference.Year(), reference.Month(), diff, 0, 0, 0, 0, reference.Location())
	sunday := monday.AddDate(0, 0, 6)

	return monday, sunday
}

// Classify conta os eventos por tipo em uma única passada. Tipos
// desconhecidos são ignorados para manter compatibilidade com produtores
// mais novos.
func (s *Service) Classify(events []domain.Event) map[domain.EventType]int {
	counts := map[domain.EventType]int{
		domain.EventTypeView:         0,
		domain.EventTypeLike:         0,
		domain.EventTypeComment:      0,
		domain.EventTypeShare:        0,
		domain.EventTypeAdImpression: 0,
		domain.EventTypeAdClick:      0,
	}

	for _, event := range events {
		if _, known := counts[event.Type]; known {
			counts[event.Type]++
		}
	}

	return counts
}

// ComputeMetrics calcula as contagens e as duas taxas derivadas. As taxas
// valem 0 quando o denominador é zero e são arredondadas para duas casas
// decimais depois da conversão para percentual.
func (s *Service) ComputeMetrics(events []domain.Event) *domain.Metrics {
	counts := s.Classify(events)

	metrics := &domain.Metrics{
		TotalViews:         counts[domain.EventTypeView],
		TotalLikes:         counts[domain.EventTypeLike],
		TotalComments:      counts[domain.EventTypeComment],
		TotalShares:        counts[domain.EventTypeShare],
		TotalAdImpressions: counts[domain.EventTypeAdImpression],
		TotalAdClicks:      counts[domain.EventTypeAdClick],
	}

	if metrics.TotalViews > 0 {
		rate := float64(metrics.TotalLikes+metrics.TotalComments) / float64(metrics.TotalViews) * 100
		metrics.EngagementRate = utils.RoundWithTwoDecimalPlace(rate)
	}

	if metrics.TotalAdImpressions > 0 {
		rate := float64(metrics.TotalAdClicks) / float64(metrics.TotalAdImpressions) * 100
		metrics.AdClickThroughRate = utils.RoundWithTwoDecimalPlace(rate)
	}

	return metrics
}

// TopMemories agrupa os eventos de view/like/comment por memória e ordena
// por engajamento total decrescente. Empates preservam a ordem de primeira
// ocorrência no log.
func (s *Service) TopMemories(events []domain.Event, limit int) ([]domain.MemoryEngagement, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	byMemory := make(map[string]*domain.MemoryEngagement)
	order := make([]string, 0)

	for _, event := range events {
		if event.TargetID == "" || event.TargetType == domain.TargetTypeAd {
			continue
		}

		var entry *domain.MemoryEngagement
		switch event.Type {
		case domain.EventTypeView, domain.EventTypeLike, domain.EventTypeComment:
			entry = byMemory[event.TargetID]
			if entry == nil {
				entry = &domain.MemoryEngagement{MemoryID: event.TargetID}
				byMemory[event.TargetID] = entry
				order = append(order, event.TargetID)
			}
		default:
			continue
		}

		switch event.Type {
		case domain.EventTypeView:
			entry.Views++
		case domain.EventTypeLike:
			entry.Likes++
		case domain.EventTypeComment:
			entry.Comments++
		}
	}

	ranking := make([]domain.MemoryEngagement, 0, len(order))
	for _, id := range order {
		ranking = append(ranking, *byMemory[id])
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Total() > ranking[j].Total()
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	return ranking, nil
}

// TopAds agrupa impressões e cliques por anúncio e ordena por CTR
// decrescente, com a mesma regra de estabilidade do ranking de memórias.
func (s *Service) TopAds(events []domain.Event, limit int) ([]domain.AdPerformance, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	byAd := make(map[string]*domain.AdPerformance)
	order := make([]string, 0)

	for _, event := range events {
		if event.TargetID == "" || event.TargetType != domain.TargetTypeAd {
			continue
		}

		if event.Type != domain.EventTypeAdImpression && event.Type != domain.EventTypeAdClick {
			continue
		}

		entry := byAd[event.TargetID]
		if entry == nil {
			entry = &domain.AdPerformance{AdID: event.TargetID}
			byAd[event.TargetID] = entry
			order = append(order, event.TargetID)
		}

		if event.Type == domain.EventTypeAdImpression {
			entry.Impressions++
		} else {
			entry.Clicks++
		}
	}

	ranking := make([]domain.AdPerformance, 0, len(order))
	for _, id := range order {
		entry := *byAd[id]
		if entry.Impressions > 0 {
			entry.ClickThroughRate = utils.RoundWithTwoDecimalPlace(float64(entry.Clicks) / float64(entry.Impressions) * 100)
		}
		ranking = append(ranking, entry)
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].ClickThroughRate > ranking[j].ClickThroughRate
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	return ranking, nil
}

// GenerateWeeklyReport compõe a janela semanal, o filtro por data, as
// métricas e os rankings em um relatório completo
func (s *Service) GenerateWeeklyReport(events []domain.Event, reference time.Time) (*domain.WeeklyReport, error) {
	monday, sunday := CurrentWeekWindow(reference)

	startDate := monday.Format(time.DateOnly)
	endDate := sunday.Format(time.DateOnly)

	weekEvents := s.FilterByDateRange(events, startDate, endDate)

	topMemories, err := s.TopMemories(weekEvents, s.topLimit)
	if err != nil {
		return nil, err
	}

	topAds, err := s.TopAds(weekEvents, s.topLimit)
	if err != nil {
		return nil, err
	}

	return &domain.WeeklyReport{
		WeekLabel:   fmt.Sprintf("Semana de %s a %s", monday.Format("02/01/2006"), sunday.Format("02/01/2006")),
		StartDate:   startDate,
		EndDate:     endDate,
		Metrics:     s.ComputeMetrics(weekEvents),
		TopMemories: topMemories,
		TopAds:      topAds,
	}, nil
}
