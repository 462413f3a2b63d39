package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/dedup"
	"github.com/trinav-code/eazyhealth/sqlite"
)

func newTestBriefing(title string, sourceType eazyhealth.SourceType, tags ...string) *eazyhealth.Briefing {
	return &eazyhealth.Briefing{
		Title:        title,
		Slug:         eazyhealth.Slugify(title),
		Summary:      "Summary of " + title,
		Body:         "## " + title + "\n\nBody text.",
		SourceType:   sourceType,
		Tags:         tags,
		ReadingLevel: eazyhealth.Grade8,
		Disclaimer:   eazyhealth.DefaultDisclaimer,
	}
}

// clock returns a Now func that advances by step on every call.
func clock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(step)
		return t
	}
}

func TestBriefingService_CreateBriefing(t *testing.T) {
	t.Parallel()

	t.Run("creates briefing with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, dedup.NewDetector(), 0)
		ctx := context.Background()

		b := newTestBriefing("Flu Season Outlook", eazyhealth.DataAnalysis, "flu", "vaccination")
		require.NoError(t, svc.CreateBriefing(ctx, b))

		assert.NotEmpty(t, b.ID)
		assert.NotEmpty(t, b.ContentHash)
		assert.False(t, b.CreatedAt.IsZero())
	})

	t.Run("returns EINVALID for invalid briefing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, dedup.NewDetector(), 0)

		err := svc.CreateBriefing(context.Background(), &eazyhealth.Briefing{})
		require.Error(t, err)
		assert.Equal(t, eazyhealth.EINVALID, eazyhealth.ErrorCode(err))
	})

	t.Run("returns ECONFLICT for a duplicate of a recent briefing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, dedup.NewDetector(), 0)
		ctx := context.Background()

		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("Flu Season Outlook", eazyhealth.DataAnalysis, "flu", "vaccination")))

		err := svc.CreateBriefing(ctx, newTestBriefing("Influenza Trends Rising", eazyhealth.DataAnalysis, "Flu", "vaccination"))
		require.Error(t, err)
		assert.Equal(t, eazyhealth.ECONFLICT, eazyhealth.ErrorCode(err))

		list, err := svc.FindBriefings(ctx, eazyhealth.BriefingFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("ignores briefings of another source type", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, dedup.NewDetector(), 0)
		ctx := context.Background()

		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("Flu Season Outlook", eazyhealth.DataAnalysis, "flu", "vaccination")))
		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("Flu Vaccination Coverage", eazyhealth.ArticleSummary, "flu", "vaccination")))
	})

	t.Run("ignores briefings outside the lookback window", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, dedup.NewDetector(), 7*24*time.Hour)
		ctx := context.Background()
		now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

		svc.Now = func() time.Time { return now.Add(-8 * 24 * time.Hour) }
		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("Flu Season Outlook", eazyhealth.DataAnalysis, "flu", "vaccination")))

		svc.Now = func() time.Time { return now }
		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("Flu Season Outlook Again", eazyhealth.DataAnalysis, "flu", "vaccination")))
	})

	t.Run("returns ECONFLICT for an existing slug without a detector", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, nil, 0)
		ctx := context.Background()

		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("Flu Season Outlook", eazyhealth.DataAnalysis, "flu")))

		err := svc.CreateBriefing(ctx, newTestBriefing("Flu Season Outlook", eazyhealth.DataAnalysis, "covid"))
		require.Error(t, err)
		assert.Equal(t, eazyhealth.ECONFLICT, eazyhealth.ErrorCode(err))
	})
}

func TestBriefingService_FindBriefingBySlug(t *testing.T) {
	t.Parallel()

	t.Run("returns stored briefing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, dedup.NewDetector(), 0)
		ctx := context.Background()

		b := newTestBriefing("Measles Cases Climb", eazyhealth.ArticleSummary, "measles", "outbreak")
		b.SourceURLs = []string{"https://www.cdc.gov/measles"}
		b.SourceMetadata = map[string]any{"topic": "measles"}
		require.NoError(t, svc.CreateBriefing(ctx, b))

		got, err := svc.FindBriefingBySlug(ctx, b.Slug)
		require.NoError(t, err)

		assert.Equal(t, b.ID, got.ID)
		assert.Equal(t, "Measles Cases Climb", got.Title)
		assert.Equal(t, b.Summary, got.Summary)
		assert.Equal(t, b.Body, got.Body)
		assert.Equal(t, eazyhealth.ArticleSummary, got.SourceType)
		assert.Equal(t, []string{"https://www.cdc.gov/measles"}, got.SourceURLs)
		assert.Equal(t, map[string]any{"topic": "measles"}, got.SourceMetadata)
		assert.Equal(t, []string{"measles", "outbreak"}, got.Tags)
		assert.Equal(t, eazyhealth.Grade8, got.ReadingLevel)
		assert.Equal(t, eazyhealth.DefaultDisclaimer, got.Disclaimer)
		assert.Equal(t, b.ContentHash, got.ContentHash)
		assert.True(t, b.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("stores nil lists as empty", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, nil, 0)
		ctx := context.Background()

		b := newTestBriefing("Heat Safety", eazyhealth.DataAnalysis)
		require.NoError(t, svc.CreateBriefing(ctx, b))

		got, err := svc.FindBriefingBySlug(ctx, b.Slug)
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
		assert.NotNil(t, got.Tags)
		assert.Empty(t, got.SourceURLs)
	})

	t.Run("returns ENOTFOUND for missing slug", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, nil, 0)

		_, err := svc.FindBriefingBySlug(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, eazyhealth.ENOTFOUND, eazyhealth.ErrorCode(err))
	})
}

func TestBriefingService_FindBriefings(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.BriefingService {
		t.Helper()
		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, nil, 0)
		svc.Now = clock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Hour)
		ctx := context.Background()

		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("First Data Report", eazyhealth.DataAnalysis, "flu")))
		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("Second Article Digest", eazyhealth.ArticleSummary, "covid")))
		require.NoError(t, svc.CreateBriefing(ctx, newTestBriefing("Third Data Report", eazyhealth.DataAnalysis, "covid", "rsv")))
		return svc
	}

	titles := func(list []*eazyhealth.Briefing) []string {
		out := make([]string, 0, len(list))
		for _, b := range list {
			out = append(out, b.Title)
		}
		return out
	}

	t.Run("returns all briefings newest first", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		list, err := svc.FindBriefings(context.Background(), eazyhealth.BriefingFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Third Data Report", "Second Article Digest", "First Data Report"}, titles(list))
	})

	t.Run("filters by source type", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		st := eazyhealth.DataAnalysis
		list, err := svc.FindBriefings(context.Background(), eazyhealth.BriefingFilter{SourceType: &st})
		require.NoError(t, err)
		assert.Equal(t, []string{"Third Data Report", "First Data Report"}, titles(list))
	})

	t.Run("filters by tag", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		tag := "covid"
		list, err := svc.FindBriefings(context.Background(), eazyhealth.BriefingFilter{Tag: &tag})
		require.NoError(t, err)
		assert.Equal(t, []string{"Third Data Report", "Second Article Digest"}, titles(list))
	})

	t.Run("filters by creation time", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		after := time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)
		list, err := svc.FindBriefings(context.Background(), eazyhealth.BriefingFilter{CreatedAfter: &after})
		require.NoError(t, err)
		assert.Equal(t, []string{"Third Data Report", "Second Article Digest"}, titles(list))
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		list, err := svc.FindBriefings(context.Background(), eazyhealth.BriefingFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Second Article Digest"}, titles(list))
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		list, err := svc.FindBriefings(context.Background(), eazyhealth.BriefingFilter{Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"First Data Report"}, titles(list))
	})

	t.Run("returns empty list on empty database", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, nil, 0)
		list, err := svc.FindBriefings(context.Background(), eazyhealth.BriefingFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestBriefingService_DeleteBriefing(t *testing.T) {
	t.Parallel()

	t.Run("removes briefing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, nil, 0)
		ctx := context.Background()

		b := newTestBriefing("Heat Safety", eazyhealth.DataAnalysis, "heat")
		require.NoError(t, svc.CreateBriefing(ctx, b))
		require.NoError(t, svc.DeleteBriefing(ctx, b.ID))

		_, err := svc.FindBriefingBySlug(ctx, b.Slug)
		assert.Equal(t, eazyhealth.ENOTFOUND, eazyhealth.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing briefing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewBriefingService(db, nil, 0)

		err := svc.DeleteBriefing(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, eazyhealth.ENOTFOUND, eazyhealth.ErrorCode(err))
	})
}
