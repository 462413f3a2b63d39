package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/dedup"
)

// DefaultLookback is the duplicate-detection history window.
const DefaultLookback = 30 * 24 * time.Hour

// Ensure BriefingService implements eazyhealth.BriefingService.
var _ eazyhealth.BriefingService = (*BriefingService)(nil)

var briefingColumns = []string{
	"id", "title", "slug", "summary", "body", "source_type", "source_urls",
	"source_metadata", "tags", "reading_level", "disclaimer", "content_hash", "created_at",
}

// BriefingService implements eazyhealth.BriefingService using SQLite.
type BriefingService struct {
	db       *DB
	detector *dedup.Detector
	lookback time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewBriefingService creates a new BriefingService. A nil detector disables
// duplicate detection; a non-positive lookback means DefaultLookback.
func NewBriefingService(db *DB, detector *dedup.Detector, lookback time.Duration) *BriefingService {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &BriefingService{
		db:       db,
		detector: detector,
		lookback: lookback,
		Now:      time.Now,
	}
}

// CreateBriefing stores a new briefing. It assigns ID, CreatedAt and
// ContentHash. The history window is read in the same transaction as the
// insert, so two concurrent writers cannot both pass the duplicate check.
func (s *BriefingService) CreateBriefing(ctx context.Context, b *eazyhealth.Briefing) error {
	if err := b.Validate(); err != nil {
		return err
	}

	now := s.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if s.detector != nil {
		history, err := s.history(ctx, tx, b.SourceType, now.Add(-s.lookback))
		if err != nil {
			return err
		}
		if m, ok := s.detector.Check(b.Title, b.Tags, b.SourceType, history); ok {
			return eazyhealth.Errorf(eazyhealth.ECONFLICT,
				"briefing duplicates %q (score %.2f)", m.Briefing.Slug, m.Score)
		}
	}

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM briefings WHERE slug = ?`, b.Slug).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return eazyhealth.Errorf(eazyhealth.ECONFLICT, "briefing slug %q already exists", b.Slug)
	}

	sourceURLs, err := marshalJSON(b.SourceURLs, "[]")
	if err != nil {
		return err
	}
	metadata, err := marshalJSON(b.SourceMetadata, "{}")
	if err != nil {
		return err
	}
	tags, err := marshalJSON(b.Tags, "[]")
	if err != nil {
		return err
	}

	id := uuid.New().String()
	hash := hashContent(b.Body)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO briefings (id, title, slug, summary, body, source_type, source_urls,
			source_metadata, tags, reading_level, disclaimer, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, b.Title, b.Slug, b.Summary, b.Body, string(b.SourceType), sourceURLs,
		metadata, tags, string(b.ReadingLevel), b.Disclaimer, hash, formatTime(now))
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	b.ID = id
	b.CreatedAt = now.Truncate(time.Second)
	b.ContentHash = hash
	return nil
}

// history returns briefings of sourceType created at or after since.
func (s *BriefingService) history(ctx context.Context, tx *sql.Tx, sourceType eazyhealth.SourceType, since time.Time) ([]*eazyhealth.Briefing, error) {
	query, args, err := sq.Select(briefingColumns...).
		From("briefings").
		Where(sq.Eq{"source_type": string(sourceType)}).
		Where(sq.GtOrEq{"created_at": formatTime(since)}).
		OrderBy("created_at DESC", "rowid DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBriefings(rows)
}

// FindBriefingBySlug retrieves a briefing by slug.
// Returns ENOTFOUND if the briefing does not exist.
func (s *BriefingService) FindBriefingBySlug(ctx context.Context, slug string) (*eazyhealth.Briefing, error) {
	query, args, err := sq.Select(briefingColumns...).
		From("briefings").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, err
	}

	b, err := scanBriefing(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "briefing not found")
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// FindBriefings retrieves briefings matching the filter, newest first.
func (s *BriefingService) FindBriefings(ctx context.Context, filter eazyhealth.BriefingFilter) ([]*eazyhealth.Briefing, error) {
	b := sq.Select(briefingColumns...).From("briefings")

	if filter.SourceType != nil {
		b = b.Where(sq.Eq{"source_type": string(*filter.SourceType)})
	}
	if filter.CreatedAfter != nil {
		b = b.Where(sq.GtOrEq{"created_at": formatTime(*filter.CreatedAfter)})
	}
	if filter.Tag != nil {
		b = b.Where(sq.Expr("EXISTS (SELECT 1 FROM json_each(briefings.tags) WHERE value = ?)", *filter.Tag))
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

	return scanBriefings(rows)
}

// DeleteBriefing permanently removes a briefing.
// Returns ENOTFOUND if the briefing does not exist.
func (s *BriefingService) DeleteBriefing(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM briefings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return eazyhealth.Errorf(eazyhealth.ENOTFOUND, "briefing not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBriefing(row scanner) (*eazyhealth.Briefing, error) {
	var b eazyhealth.Briefing
	var sourceType, readingLevel, sourceURLs, metadata, tags, createdAt string

	if err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Summary, &b.Body, &sourceType, &sourceURLs,
		&metadata, &tags, &readingLevel, &b.Disclaimer, &b.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	b.SourceType = eazyhealth.SourceType(sourceType)
	b.ReadingLevel = eazyhealth.ReadingLevel(readingLevel)

	if err := unmarshalJSON(sourceURLs, "source_urls", &b.SourceURLs); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(metadata, "source_metadata", &b.SourceMetadata); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(tags, "tags", &b.Tags); err != nil {
		return nil, err
	}

	var err error
	b.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func scanBriefings(rows *sql.Rows) ([]*eazyhealth.Briefing, error) {
	var briefings []*eazyhealth.Briefing
	for rows.Next() {
		b, err := scanBriefing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan briefing: %w", err)
		}
		briefings = append(briefings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return briefings, nil
}
