package knowledgerepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
	apperrors "github.com/yanqian/cafebui-chatbot/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS knowledge_settings (
	venue    TEXT PRIMARY KEY,
	prompt   TEXT NOT NULL,
	defaults TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS knowledge_entries (
	venue    TEXT NOT NULL REFERENCES knowledge_settings (venue) ON DELETE CASCADE,
	position INT  NOT NULL,
	keyword  TEXT NOT NULL,
	answer   TEXT NOT NULL,
	PRIMARY KEY (venue, keyword)
);
`

// PostgresSource loads the knowledge document for one venue using pgx.
type PostgresSource struct {
	pool  *pgxpool.Pool
	venue string
}

// NewPostgresSource constructs the source.
func NewPostgresSource(pool *pgxpool.Pool, venue string) *PostgresSource {
	return &PostgresSource{pool: pool, venue: venue}
}

// EnsureSchema creates the knowledge tables when they are missing.
func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, "create knowledge schema", err)
	}
	return nil
}

// Load implements knowledge.Source.
func (s *PostgresSource) Load(ctx context.Context) (knowledge.Document, error) {
	doc := knowledge.Document{Name: s.venue}
	err := s.pool.QueryRow(ctx, `
		SELECT prompt, defaults
		FROM knowledge_settings
		WHERE venue = $1
	`, s.venue).Scan(&doc.Prompt, &doc.Defaults)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return knowledge.Document{}, apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, fmt.Sprintf("no knowledge settings for venue %q", s.venue), err)
		}
		return knowledge.Document{}, apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, "query knowledge settings", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT keyword, answer
		FROM knowledge_entries
		WHERE venue = $1
		ORDER BY position ASC, keyword ASC
	`, s.venue)
	if err != nil {
		return knowledge.Document{}, apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, "query knowledge entries", err)
	}
	defer rows.Close()
	for rows.Next() {
		var entry knowledge.Entry
		if err := rows.Scan(&entry.Keyword, &entry.Answer); err != nil {
			return knowledge.Document{}, apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, "scan knowledge entry", err)
		}
		doc.Entries = append(doc.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return knowledge.Document{}, apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, "iterate knowledge entries", err)
	}
	return doc, nil
}

// Describe names the source for startup logs.
func (s *PostgresSource) Describe() string {
	return "postgres:" + s.venue
}

// Close releases the pool.
func (s *PostgresSource) Close() {
	s.pool.Close()
}

var _ knowledge.Source = (*PostgresSource)(nil)
