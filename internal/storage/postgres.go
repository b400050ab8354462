package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"adfilter/internal/domain"
)

type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Save(ctx context.Context, s domain.Suppression) error {
	query := `
		INSERT INTO suppressions (id, message_id, chat_id, chat_title, url, action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.db.ExecContext(ctx, query,
		s.ID,
		s.MessageID,
		s.ChatID,
		s.ChatTitle,
		s.URL,
		s.Action,
		s.CreatedAt,
	)

	return err
}

func (p *Postgres) FindRecent(ctx context.Context, limit int) ([]domain.Suppression, error) {
	query := `
		SELECT id, message_id, chat_id, chat_title, url, action, created_at
		FROM suppressions ORDER BY created_at DESC LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppressions []domain.Suppression
	for rows.Next() {
		var s domain.Suppression
		if err := rows.Scan(
			&s.ID,
			&s.MessageID,
			&s.ChatID,
			&s.ChatTitle,
			&s.URL,
			&s.Action,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		suppressions = append(suppressions, s)
	}

	return suppressions, rows.Err()
}

func (p *Postgres) Stats(ctx context.Context) (Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(DISTINCT chat_id),
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '24 hours')
		FROM suppressions
	`

	var stats Stats
	err := p.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Chats, &stats.Recent24h)
	return stats, err
}
