package domain

// WeeklyReport é o agregado derivado de uma janela segunda-domingo.
// É recalculado a cada chamada e nunca persistido.
type WeeklyReport struct {
	WeekLabel   string             `json:"weekLabel"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Metrics     *Metrics           `json:"metrics"`
	TopMemories []MemoryEngagement `json:"topMemories"`
	TopAds      []AdPerformance    `json:"topAds"`
}

// SendReportRequest é o payload recebido pelo endpoint de envio de relatório
type SendReportRequest struct {
	UserEmail string        `json:"userEmail"`
	Report    *WeeklyReport `json:"report"`
}
