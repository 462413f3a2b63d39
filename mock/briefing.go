package mock

import (
	"context"

	"github.com/trinav-code/eazyhealth"
)

var (
	_ eazyhealth.BriefingService     = (*BriefingService)(nil)
	_ eazyhealth.ExplainerLogService = (*ExplainerLogService)(nil)
)

// BriefingService is a mock implementation of eazyhealth.BriefingService.
type BriefingService struct {
	CreateBriefingFn     func(ctx context.Context, b *eazyhealth.Briefing) error
	FindBriefingBySlugFn func(ctx context.Context, slug string) (*eazyhealth.Briefing, error)
	FindBriefingsFn      func(ctx context.Context, filter eazyhealth.BriefingFilter) ([]*eazyhealth.Briefing, error)
	DeleteBriefingFn     func(ctx context.Context, id string) error
}

func (s *BriefingService) CreateBriefing(ctx context.Context, b *eazyhealth.Briefing) error {
	return s.CreateBriefingFn(ctx, b)
}

func (s *BriefingService) FindBriefingBySlug(ctx context.Context, slug string) (*eazyhealth.Briefing, error) {
	return s.FindBriefingBySlugFn(ctx, slug)
}

func (s *BriefingService) FindBriefings(ctx context.Context, filter eazyhealth.BriefingFilter) ([]*eazyhealth.Briefing, error) {
	return s.FindBriefingsFn(ctx, filter)
}

func (s *BriefingService) DeleteBriefing(ctx context.Context, id string) error {
	return s.DeleteBriefingFn(ctx, id)
}

// ExplainerLogService is a mock implementation of eazyhealth.ExplainerLogService.
type ExplainerLogService struct {
	CreateExplainerLogFn func(ctx context.Context, log *eazyhealth.ExplainerLog) error
	FindExplainerLogsFn  func(ctx context.Context, filter eazyhealth.ExplainerLogFilter) ([]*eazyhealth.ExplainerLog, error)
}

func (s *ExplainerLogService) CreateExplainerLog(ctx context.Context, log *eazyhealth.ExplainerLog) error {
	return s.CreateExplainerLogFn(ctx, log)
}

func (s *ExplainerLogService) FindExplainerLogs(ctx context.Context, filter eazyhealth.ExplainerLogFilter) ([]*eazyhealth.ExplainerLog, error) {
	return s.FindExplainerLogsFn(ctx, filter)
}
