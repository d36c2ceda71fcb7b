package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/wellness-reporting-api/infrastructure/database/postgres"
	"github.com/vfg2006/wellness-reporting-api/internal/domain"
)

const (
	eventsTable = "events e"
)

//go:generate mockgen -source=event.go -destination=mocks/event.go -package=mocks

// EventRepository é o log de eventos de interação. Eventos são imutáveis:
// só existem inserção, leitura por período e poda por retenção.
type EventRepository interface {
	Save(event *domain.Event) error
	GetByDateRange(startDate, endDate string) ([]domain.Event, error)
	GetByUserAndDateRange(userEmail, startDate, endDate string) ([]domain.Event, error)
	DeleteOlderThan(days int) (int64, error)
}

type eventRepository struct {
	conn *postgres.Connection
}

func NewEventRepository(conn *postgres.Connection) EventRepository {
	return &eventRepository{
		conn: conn,
	}
}

func (r *eventRepository) Save(event *domain.Event) error {
	var metadata []byte
	if event.Metadata != nil {
		encoded, err := json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("erro ao serializar metadata do evento: %w", err)
		}
		metadata = encoded
	}

	query, args, err := squirrel.
		Insert("events").
		Columns("id", "type", "target_id", "target_type", "user_email", "ts", "date", "metadata").
		Values(event.ID, event.Type, event.TargetID, event.TargetType, event.UserEmail, event.Timestamp, event.Date, metadata).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao inserir evento: %w", err)
	}

	return nil
}

func (r *eventRepository) GetByDateRange(startDate, endDate string) ([]domain.Event, error) {
	builder := squirrel.
		Select("e.id, e.type, e.target_id, e.target_type, e.user_email, e.ts, e.date, e.metadata").
		From(eventsTable).
		Where(squirrel.GtOrEq{"e.date": startDate}).
		Where(squirrel.LtOrEq{"e.date": endDate}).
		OrderBy("e.ts ASC")

	return r.queryEvents(builder)
}

func (r *eventRepository) GetByUserAndDateRange(userEmail, startDate, endDate string) ([]domain.Event, error) {
	builder := squirrel.
		Select("e.id, e.type, e.target_id, e.target_type, e.user_email, e.ts, e.date, e.metadata").
		From(eventsTable).
		Where(squirrel.Eq{"e.user_email": userEmail}).
		Where(squirrel.GtOrEq{"e.date": startDate}).
		Where(squirrel.LtOrEq{"e.date": endDate}).
		OrderBy("e.ts ASC")

	return r.queryEvents(builder)
}

func (r *eventRepository) queryEvents(builder squirrel.SelectBuilder) ([]domain.Event, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar eventos: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear evento: %w", err)
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func scanEvent(rows *sql.Rows) (*domain.Event, error) {
	var event domain.Event
	var ts time.Time
	var date time.Time
	var metadata []byte

	if err := rows.Scan(
		&event.ID,
		&event.Type,
		&event.TargetID,
		&event.TargetType,
		&event.UserEmail,
		&ts,
		&date,
		&metadata,
	); err != nil {
		return nil, err
	}

	event.Timestamp = ts.UTC().Format(time.RFC3339)
	event.Date = date.Format(time.DateOnly)

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
			return nil, fmt.Errorf("erro ao decodificar metadata do evento: %w", err)
		}
	}

	return &event, nil
}

func (r *eventRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("events").
		Where(squirrel.Lt{"date": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover eventos antigos: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
