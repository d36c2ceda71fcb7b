package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/wellness-reporting-api/internal/domain"
)

func TestCurrentWeekWindow(t *testing.T) {
	tests := []struct {
		name           string
		reference      time.Time
		expectedMonday time.Time
		expectedSunday time.Time
	}{
		{
			name:           "Quarta-feira deve retornar a segunda da mesma semana",
			reference:      time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC),
			expectedMonday: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			expectedSunday: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "Segunda-feira deve retornar ela mesma",
			reference:      time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			expectedMonday: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			expectedSunday: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "Domingo pertence à semana da segunda anterior",
			reference:      time.Date(2024, 1, 14, 23, 59, 0, 0, time.UTC),
			expectedMonday: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			expectedSunday: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "Semana cruzando virada de mês",
			reference:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			expectedMonday: time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
			expectedSunday: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "Semana cruzando virada de ano",
			reference:      time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			expectedMonday: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			expectedSunday: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "Domingo no primeiro dia do mês volta para o mês anterior",
			reference:      time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC),
			expectedMonday: time.Date(2024, 8, 26, 0, 0, 0, 0, time.UTC),
			expectedSunday: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, sunday := CurrentWeekWindow(tt.reference)
			assert.Equal(t, tt.expectedMonday, monday)
			assert.Equal(t, tt.expectedSunday, sunday)
		})
	}
}

func TestService_FilterByDateRange(t *testing.T) {
	service := NewService(5)

	events := []domain.Event{
		{ID: "E1", Date: "2024-01-07"},
		{ID: "E2", Date: "2024-01-08"},
		{ID: "E3", Date: "2024-01-10"},
		{ID: "E4", Date: "2024-01-14"},
		{ID: "E5", Date: "2024-01-15"},
	}

	tests := []struct {
		name      string
		startDate string
		endDate   string
		expected  []string
	}{
		{
			name:      "Intervalo inclusivo nas duas pontas",
			startDate: "2024-01-08",
			endDate:   "2024-01-14",
			expected:  []string{"E2", "E3", "E4"},
		},
		{
			name:      "Intervalo sem eventos",
			startDate: "2024-02-01",
			endDate:   "2024-02-07",
			expected:  []string{},
		},
		{
			name:      "Intervalo de um único dia",
			startDate: "2024-01-10",
			endDate:   "2024-01-10",
			expected:  []string{"E3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := service.FilterByDateRange(events, tt.startDate, tt.endDate)

			ids := make([]string, 0, len(filtered))
			for _, event := range filtered {
				ids = append(ids, event.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestService_Classify(t *testing.T) {
	service := NewService(5)

	events := []domain.Event{
		{Type: domain.EventTypeView},
		{Type: domain.EventTypeView},
		{Type: domain.EventTypeLike},
		{Type: domain.EventTypeComment},
		{Type: "tipo-desconhecido"},
		{Type: domain.EventTypeAdImpression},
	}

	counts := service.Classify(events)

	assert.Equal(t, 2, counts[domain.EventTypeView])
	assert.Equal(t, 1, counts[domain.EventTypeLike])
	assert.Equal(t, 1, counts[domain.EventTypeComment])
	assert.Equal(t, 0, counts[domain.EventTypeShare])
	assert.Equal(t, 1, counts[domain.EventTypeAdImpression])
	assert.Equal(t, 0, counts[domain.EventTypeAdClick])

	// Tipos desconhecidos não entram no mapa
	assert.Len(t, counts, 6)
}

func TestService_ComputeMetrics(t *testing.T) {
	service := NewService(5)

	tests := []struct {
		name     string
		events   []domain.Event
		expected *domain.Metrics
	}{
		{
			name: "View e like geram engajamento de 100%",
			events: []domain.Event{
				{Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory, Date: "2024-01-02"},
				{Type: domain.EventTypeLike, TargetID: "m1", TargetType: domain.TargetTypeMemory, Date: "2024-01-02"},
			},
			expected: &domain.Metrics{
				TotalViews:     1,
				TotalLikes:     1,
				EngagementRate: 100.00,
			},
		},
		{
			name: "Sem views o engajamento é zero",
			events: []domain.Event{
				{Type: domain.EventTypeLike, TargetID: "m1", TargetType: domain.TargetTypeMemory},
				{Type: domain.EventTypeComment, TargetID: "m1", TargetType: domain.TargetTypeMemory},
			},
			expected: &domain.Metrics{
				TotalLikes:     1,
				TotalComments:  1,
				EngagementRate: 0,
			},
		},
		{
			name: "Sem impressões o CTR é zero",
			events: []domain.Event{
				{Type: domain.EventTypeAdClick, TargetID: "a1", TargetType: domain.TargetTypeAd},
			},
			expected: &domain.Metrics{
				TotalAdClicks:      1,
				AdClickThroughRate: 0,
			},
		},
		{
			name: "Taxas arredondadas para duas casas depois do percentual",
			events: []domain.Event{
				{Type: domain.EventTypeView, TargetID: "m1"},
				{Type: domain.EventTypeView, TargetID: "m1"},
				{Type: domain.EventTypeView, TargetID: "m1"},
				{Type: domain.EventTypeLike, TargetID: "m1"},
				{Type: domain.EventTypeAdImpression, TargetID: "a1", TargetType: domain.TargetTypeAd},
				{Type: domain.EventTypeAdImpression, TargetID: "a1", TargetType: domain.TargetTypeAd},
				{Type: domain.EventTypeAdImpression, TargetID: "a1", TargetType: domain.TargetTypeAd},
				{Type: domain.EventTypeAdClick, TargetID: "a1", TargetType: domain.TargetTypeAd},
			},
			expected: &domain.Metrics{
				TotalViews:         3,
				TotalLikes:         1,
				TotalAdImpressions: 3,
				TotalAdClicks:      1,
				EngagementRate:     33.33,
				AdClickThroughRate: 33.33,
			},
		},
		{
			name:     "Lista vazia gera métricas zeradas",
			events:   []domain.Event{},
			expected: &domain.Metrics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := service.ComputeMetrics(tt.events)
			assert.Equal(t, tt.expected, metrics)
		})
	}
}

func TestService_TopMemories(t *testing.T) {
	service := NewService(5)

	t.Run("Ordena por engajamento total decrescente", func(t *testing.T) {
		events := []domain.Event{
			{Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeView, TargetID: "m2", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeLike, TargetID: "m2", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeComment, TargetID: "m2", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeView, TargetID: "m3", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeLike, TargetID: "m3", TargetType: domain.TargetTypeMemory},
		}

		ranking, err := service.TopMemories(events, 5)
		assert.NoError(t, err)
		assert.Len(t, ranking, 3)
		assert.Equal(t, "m2", ranking[0].MemoryID)
		assert.Equal(t, 3, ranking[0].Total())
		assert.Equal(t, "m3", ranking[1].MemoryID)
		assert.Equal(t, "m1", ranking[2].MemoryID)
	})

	t.Run("Empates preservam a ordem de primeira ocorrência", func(t *testing.T) {
		events := []domain.Event{
			{Type: domain.EventTypeView, TargetID: "mB", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeView, TargetID: "mA", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeView, TargetID: "mC", TargetType: domain.TargetTypeMemory},
		}

		ranking, err := service.TopMemories(events, 5)
		assert.NoError(t, err)
		assert.Len(t, ranking, 3)
		assert.Equal(t, "mB", ranking[0].MemoryID)
		assert.Equal(t, "mA", ranking[1].MemoryID)
		assert.Equal(t, "mC", ranking[2].MemoryID)
	})

	t.Run("Trunca no limite informado", func(t *testing.T) {
		events := []domain.Event{
			{Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeView, TargetID: "m2", TargetType: domain.TargetTypeMemory},
			{Type: domain.EventTypeView, TargetID: "m3", TargetType: domain.TargetTypeMemory},
		}

		ranking, err := service.TopMemories(events, 2)
		assert.NoError(t, err)
		assert.Len(t, ranking, 2)
	})

	t.Run("Limite zero retorna lista vazia", func(t *testing.T) {
		events := []domain.Event{
			{Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory},
		}

		ranking, err := service.TopMemories(events, 0)
		assert.NoError(t, err)
		assert.Empty(t, ranking)
	})

	t.Run("Limite negativo retorna erro", func(t *testing.T) {
		ranking, err := service.TopMemories(nil, -1)
		assert.ErrorIs(t, err, ErrInvalidLimit)
		assert.Nil(t, ranking)
	})

	t.Run("Eventos de anúncio e de share não entram no ranking", func(t *testing.T) {
		events := []domain.Event{
			{Type: domain.EventTypeAdImpression, TargetID: "a1", TargetType: domain.TargetTypeAd},
			{Type: domain.EventTypeShare, TargetID: "m1", TargetType: domain.TargetTypeMemory},
		}

		ranking, err := service.TopMemories(events, 5)
		assert.NoError(t, err)
		assert.Empty(t, ranking)
	})
}

func TestService_TopAds(t *testing.T) {
	service := NewService(5)

	t.Run("Ordena por CTR decrescente com zero impressões valendo zero", func(t *testing.T) {
		events := make([]domain.Event, 0)
		for i := 0; i < 100; i++ {
			events = append(events, domain.Event{Type: domain.EventTypeAdImpression, TargetID: "A", TargetType: domain.TargetTypeAd})
		}
		for i := 0; i < 10; i++ {
			events = append(events, domain.Event{Type: domain.EventTypeAdClick, TargetID: "A", TargetType: domain.TargetTypeAd})
		}
		// B só tem clique, sem impressão: CTR 0
		events = append(events, domain.Event{Type: domain.EventTypeAdClick, TargetID: "B", TargetType: domain.TargetTypeAd})

		ranking, err := service.TopAds(events, 5)
		assert.NoError(t, err)
		assert.Len(t, ranking, 2)
		assert.Equal(t, "A", ranking[0].AdID)
		assert.Equal(t, 10.00, ranking[0].ClickThroughRate)
		assert.Equal(t, "B", ranking[1].AdID)
		assert.Equal(t, 0.0, ranking[1].ClickThroughRate)
	})

	t.Run("Empates de CTR preservam a ordem de primeira ocorrência", func(t *testing.T) {
		events := []domain.Event{
			{Type: domain.EventTypeAdImpression, TargetID: "X", TargetType: domain.TargetTypeAd},
			{Type: domain.EventTypeAdClick, TargetID: "X", TargetType: domain.TargetTypeAd},
			{Type: domain.EventTypeAdImpression, TargetID: "Y", TargetType: domain.TargetTypeAd},
			{Type: domain.EventTypeAdClick, TargetID: "Y", TargetType: domain.TargetTypeAd},
		}

		ranking, err := service.TopAds(events, 5)
		assert.NoError(t, err)
		assert.Len(t, ranking, 2)
		assert.Equal(t, "X", ranking[0].AdID)
		assert.Equal(t, "Y", ranking[1].AdID)
	})

	t.Run("Eventos de memória não entram no ranking de anúncios", func(t *testing.T) {
		events := []domain.Event{
			{Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory},
		}

		ranking, err := service.TopAds(events, 5)
		assert.NoError(t, err)
		assert.Empty(t, ranking)
	})

	t.Run("Limite negativo retorna erro", func(t *testing.T) {
		ranking, err := service.TopAds(nil, -3)
		assert.ErrorIs(t, err, ErrInvalidLimit)
		assert.Nil(t, ranking)
	})
}

func TestService_GenerateWeeklyReport(t *testing.T) {
	service := NewService(5)

	// Quarta-feira, 10 de janeiro de 2024: semana de 08/01 a 14/01
	reference := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	events := []domain.Event{
		{ID: "E1", Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory, UserEmail: "ana@example.com", Date: "2024-01-08"},
		{ID: "E2", Type: domain.EventTypeLike, TargetID: "m1", TargetType: domain.TargetTypeMemory, UserEmail: "ana@example.com", Date: "2024-01-09"},
		{ID: "E3", Type: domain.EventTypeAdImpression, TargetID: "a1", TargetType: domain.TargetTypeAd, UserEmail: "ana@example.com", Date: "2024-01-10"},
		{ID: "E4", Type: domain.EventTypeAdClick, TargetID: "a1", TargetType: domain.TargetTypeAd, UserEmail: "ana@example.com", Date: "2024-01-10"},
		// Fora da janela: semana anterior e semana seguinte
		{ID: "E5", Type: domain.EventTypeView, TargetID: "m2", TargetType: domain.TargetTypeMemory, UserEmail: "ana@example.com", Date: "2024-01-07"},
		{ID: "E6", Type: domain.EventTypeView, TargetID: "m3", TargetType: domain.TargetTypeMemory, UserEmail: "ana@example.com", Date: "2024-01-15"},
	}

	report, err := service.GenerateWeeklyReport(events, reference)
	assert.NoError(t, err)

	assert.Equal(t, "Semana de 08/01/2024 a 14/01/2024", report.WeekLabel)
	assert.Equal(t, "2024-01-08", report.StartDate)
	assert.Equal(t, "2024-01-14", report.EndDate)

	assert.Equal(t, 1, report.Metrics.TotalViews)
	assert.Equal(t, 1, report.Metrics.TotalLikes)
	assert.Equal(t, 1, report.Metrics.TotalAdImpressions)
	assert.Equal(t, 1, report.Metrics.TotalAdClicks)
	assert.Equal(t, 100.00, report.Metrics.EngagementRate)
	assert.Equal(t, 100.00, report.Metrics.AdClickThroughRate)

	assert.Len(t, report.TopMemories, 1)
	assert.Equal(t, "m1", report.TopMemories[0].MemoryID)

	assert.Len(t, report.TopAds, 1)
	assert.Equal(t, "a1", report.TopAds[0].AdID)
}

func TestNewService_DefaultLimit(t *testing.T) {
	tests := []struct {
		name     string
		topLimit int
		expected int
	}{
		{name: "Limite válido é mantido", topLimit: 3, expected: 3},
		{name: "Zero cai no padrão", topLimit: 0, expected: defaultTopLimit},
		{name: "Negativo cai no padrão", topLimit: -10, expected: defaultTopLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.topLimit)
			assert.Equal(t, tt.expected, service.topLimit)
		})
	}
}
