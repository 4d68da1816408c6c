package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/lib/job"
	"github.com/streamlinehq/streamline/internal/lib/leadscore"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// LeadService manages the sales pipeline and the heuristic lead
// scorer.
type LeadService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewLeadService(s *server.Server, repos *repository.Repositories) *LeadService {
	return &LeadService{server: s, repos: repos}
}

// Scoring runs per-lead queries; keep the fan-out modest so a rescore
// cannot drain the connection pool.
const rescoreConcurrency = 8

// scoreCacheTTL bounds staleness of the cached score lookups used by
// pipeline list views.
const scoreCacheTTL = time.Hour

func scoreCacheKey(leadID string) string {
	return "leadscore:" + leadID
}

// Create stores a lead and scores it immediately.
func (s *LeadService) Create(ctx context.Context, actorClerkID string, l *domain.Lead) (*domain.Lead, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if l.Stage == "" {
		l.Stage = domain.LeadStageNew
	}
	if !domain.ValidLeadStage(l.Stage) {
		return nil, errs.NewBadRequestError("Unknown pipeline stage.", true, nil, nil, nil)
	}
	if _, err := s.repos.Contacts.GetByID(ctx, l.ContactID); err != nil {
		return nil, err
	}

	result := leadscore.Score(leadscore.Input{
		Source:          l.Source,
		EstimatedValue:  l.EstimatedValue,
		Message:         l.Message,
		LastContactedAt: l.LastContactedAt,
		CreatedAt:       time.Now().UTC(),
	}, time.Now().UTC())
	l.Score = result.Score
	l.ScoreBand = result.Band

	created, err := s.repos.Leads.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	s.cacheScore(ctx, created.ID, created.Score)
	return created, nil
}

// Get fetches one lead.
func (s *LeadService) Get(ctx context.Context, actorClerkID, id string) (*domain.Lead, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	return s.repos.Leads.GetByID(ctx, id)
}

// List returns leads, optionally filtered by stage, hottest first.
func (s *LeadService) List(ctx context.Context, actorClerkID string, stage domain.LeadStage, limit, offset int) ([]domain.Lead, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if stage != "" && !domain.ValidLeadStage(stage) {
		return nil, errs.NewBadRequestError("Unknown pipeline stage.", true, nil, nil, nil)
	}
	return s.repos.Leads.List(ctx, stage, clampLimit(limit), offset)
}

// Update overwrites a lead's fields and rescores it, since every
// scored attribute may have changed.
func (s *LeadService) Update(ctx context.Context, actorClerkID string, l *domain.Lead) (*domain.Lead, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if !domain.ValidLeadStage(l.Stage) {
		return nil, errs.NewBadRequestError("Unknown pipeline stage.", true, nil, nil, nil)
	}

	updated, err := s.repos.Leads.Update(ctx, l)
	if err != nil {
		return nil, err
	}
	return s.rescoreOne(ctx, updated)
}

// ScoreAll rescores every open lead in parallel and returns the
// refreshed leads. Won and lost leads keep their final scores.
func (s *LeadService) ScoreAll(ctx context.Context, actorClerkID string) ([]domain.Lead, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}
	return s.rescoreOpen(ctx)
}

// HandleRescoreTask is the asynq handler for the periodic lead rescore
// task. Registered on the job mux before the worker server starts.
func (s *LeadService) HandleRescoreTask(ctx context.Context, _ *asynq.Task) error {
	leads, err := s.rescoreOpen(ctx)
	if err != nil {
		return err
	}
	s.server.Logger.Info().Int("count", len(leads)).Msg("rescored open leads")
	return nil
}

func (s *LeadService) rescoreOpen(ctx context.Context) ([]domain.Lead, error) {
	leads, err := s.repos.Leads.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	rescored := make([]domain.Lead, len(leads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rescoreConcurrency)
	for i := range leads {
		g.Go(func() error {
			lead, err := s.rescoreOne(gctx, &leads[i])
			if err != nil {
				return err
			}
			rescored[i] = *lead
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rescored, nil
}

// rescoreOne recomputes and persists one lead's score, refreshing the
// cache entry.
func (s *LeadService) rescoreOne(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	result := leadscore.Score(leadscore.Input{
		Source:          l.Source,
		EstimatedValue:  l.EstimatedValue,
		Message:         l.Message,
		LastContactedAt: l.LastContactedAt,
		CreatedAt:       l.CreatedAt,
	}, time.Now().UTC())

	updated, err := s.repos.Leads.UpdateScore(ctx, l.ID, result.Score, result.Band)
	if err != nil {
		return nil, err
	}
	s.cacheScore(ctx, updated.ID, updated.Score)
	return updated, nil
}

// cacheScore is best effort: Redis being down degrades lookups, not
// correctness, since Postgres holds the authoritative score.
func (s *LeadService) cacheScore(ctx context.Context, leadID string, score int) {
	if s.server.Redis == nil {
		return
	}
	if err := s.server.Redis.Set(ctx, scoreCacheKey(leadID), score, scoreCacheTTL).Err(); err != nil {
		s.server.Logger.Warn().Err(err).Str("lead_id", leadID).Msg("failed to cache lead score")
	}
}

// CachedScore returns the cached score for a lead, falling back to the
// database on a miss.
func (s *LeadService) CachedScore(ctx context.Context, actorClerkID, leadID string) (int, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return 0, err
	}

	if s.server.Redis != nil {
		score, err := s.server.Redis.Get(ctx, scoreCacheKey(leadID)).Int()
		if err == nil {
			return score, nil
		}
	}

	lead, err := s.repos.Leads.GetByID(ctx, leadID)
	if err != nil {
		return 0, err
	}
	s.cacheScore(ctx, lead.ID, lead.Score)
	return lead.Score, nil
}

// EnqueueRescore schedules a background rescore of all open leads.
func (s *LeadService) EnqueueRescore(ctx context.Context, actorClerkID string) error {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleSales); err != nil {
		return err
	}

	if _, err := s.server.Job.Client.EnqueueContext(ctx, job.NewLeadRescoreTask()); err != nil {
		return fmt.Errorf("failed to enqueue lead rescore: %w", err)
	}
	return nil
}
