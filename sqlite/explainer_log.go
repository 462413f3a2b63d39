package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/trinav-code/eazyhealth"
)

// Ensure ExplainerLogService implements eazyhealth.ExplainerLogService.
var _ eazyhealth.ExplainerLogService = (*ExplainerLogService)(nil)

// ExplainerLogService implements eazyhealth.ExplainerLogService using SQLite.
type ExplainerLogService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewExplainerLogService creates a new ExplainerLogService.
func NewExplainerLogService(db *DB) *ExplainerLogService {
	return &ExplainerLogService{db: db, Now: time.Now}
}

// CreateExplainerLog stores a new log entry and assigns its ID and CreatedAt.
func (s *ExplainerLogService) CreateExplainerLog(ctx context.Context, l *eazyhealth.ExplainerLog) error {
	if err := l.Validate(); err != nil {
		return err
	}

	sources, err := marshalJSON(l.Sources, "[]")
	if err != nil {
		return err
	}
	output, err := marshalJSON(l.Output, "{}")
	if err != nil {
		return err
	}

	id := uuid.New().String()
	now := s.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO explainer_logs (id, query, source_url, input_excerpt, sources, reading_level, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, l.Query, l.SourceURL, l.InputExcerpt, sources, string(l.ReadingLevel), output, formatTime(now))
	if err != nil {
		return err
	}

	l.ID = id
	l.CreatedAt = now.Truncate(time.Second)
	return nil
}

// FindExplainerLogs retrieves log entries, newest first.
func (s *ExplainerLogService) FindExplainerLogs(ctx context.Context, filter eazyhealth.ExplainerLogFilter) ([]*eazyhealth.ExplainerLog, error) {
	b := sq.Select("id", "query", "source_url", "input_excerpt", "sources", "reading_level", "output", "created_at").
		From("explainer_logs")

	if filter.Query != nil {
		b = b.Where(sq.Eq{"query": *filter.Query})
	}

	b = paginate(b.OrderBy("created_at DESC", "rowid DESC"), filter.Limit, filter.Offset)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*eazyhealth.ExplainerLog
	for rows.Next() {
		l, err := scanExplainerLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan explainer log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func scanExplainerLog(rows *sql.Rows) (*eazyhealth.ExplainerLog, error) {
	var l eazyhealth.ExplainerLog
	var readingLevel, sources, output, createdAt string

	if err := rows.Scan(&l.ID, &l.Query, &l.SourceURL, &l.InputExcerpt, &sources, &readingLevel, &output, &createdAt); err != nil {
		return nil, err
	}

	l.ReadingLevel = eazyhealth.ReadingLevel(readingLevel)

	if err := unmarshalJSON(sources, "sources", &l.Sources); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(output, "output", &l.Output); err != nil {
		return nil, err
	}

	var err error
	l.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &l, nil
}
