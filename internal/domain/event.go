package domain

// EventType identifica o tipo de interação registrada pelo aplicativo
type EventType string

const (
	EventTypeView         EventType = "view"
	EventTypeLike         EventType = "like"
	EventTypeComment      EventType = "comment"
	EventTypeShare        EventType = "share"
	EventTypeAdImpression EventType = "ad-impression"
	EventTypeAdClick      EventType = "ad-click"
)

// TargetType identifica o alvo da interação
type TargetType string

const (
	TargetTypeMemory TargetType = "memory"
	TargetTypeAd     TargetType = "ad"
)

// Event representa uma interação do usuário registrada pelo aplicativo.
// O campo Date é fornecido pelo produtor do evento (formato YYYY-MM-DD) e é
// usado para o agrupamento por período; a consistência com Timestamp é
// responsabilidade do produtor.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	TargetID   string         `json:"targetId"`
	TargetType TargetType     `json:"targetType"`
	UserEmail  string         `json:"userEmail"`
	Timestamp  string         `json:"timestamp"`
	Date       string         `json:"date"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// IsValidEventType verifica se o tipo informado é um dos seis tipos conhecidos
func IsValidEventType(t EventType) bool {
	switch t {
	case EventTypeView, EventTypeLike, EventTypeComment, EventTypeShare,
		EventTypeAdImpression, EventTypeAdClick:
		return true
	}
	return false
}
