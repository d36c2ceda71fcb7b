package domain

// Metrics é um retrato imutável calculado sobre um conjunto de eventos.
// As taxas são percentuais arredondados para duas casas decimais e valem 0
// quando o denominador é zero.
type Metrics struct {
	TotalViews         int     `json:"totalViews"`
	TotalLikes         int     `json:"totalLikes"`
	TotalComments      int     `json:"totalComments"`
	TotalShares        int     `json:"totalShares"`
	TotalAdImpressions int     `json:"totalAdImpressions"`
	TotalAdClicks      int     `json:"totalAdClicks"`
	EngagementRate     float64 `json:"engagementRate"`
	AdClickThroughRate float64 `json:"adClickThroughRate"`
}

// MemoryEngagement acumula as interações de uma memória específica
type MemoryEngagement struct {
	MemoryID string `json:"memoryId"`
	Views    int    `json:"views"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

// Total é o critério de ordenação do ranking de memórias
func (m MemoryEngagement) Total() int {
	return m.Views + m.Likes + m.Comments
}

// AdPerformance acumula impressões e cliques de um anúncio específico
type AdPerformance struct {
	AdID             string  `json:"adId"`
	Impressions      int     `json:"impressions"`
	Clicks           int     `json:"clicks"`
	ClickThroughRate float64 `json:"clickThroughRate"`
}
