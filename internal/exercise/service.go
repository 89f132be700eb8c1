// Package exercise orchestrates the exercise catalog and history
// screens: group and exercise listings, exercise detail, and the
// "mark as done" history registration.
package exercise

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gimelloc/ignite-gym/internal/api"
	"github.com/gimelloc/ignite-gym/internal/audit"
	"github.com/gimelloc/ignite-gym/internal/domain"
	"github.com/gimelloc/ignite-gym/internal/notify"
	"github.com/gimelloc/ignite-gym/internal/session"
	"github.com/gimelloc/ignite-gym/pkg/log"
)

// byGroupsConcurrency bounds the parallel per-group fetches.
const byGroupsConcurrency = 4

// exerciseAPI is the slice of the HTTP client the catalog needs.
type exerciseAPI interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	BaseURL() string
}

// Service fetches the exercise catalog and records completed
// exercises in the user's history.
type Service struct {
	api      exerciseAPI
	store    session.Store
	notifier notify.Notifier
}

// NewService wires the exercise service.
func NewService(apiClient exerciseAPI, store session.Store, notifier notify.Notifier) *Service {
	return &Service{api: apiClient, store: store, notifier: notifier}
}

// Groups lists the muscle groups.
func (s *Service) Groups(ctx context.Context) ([]string, error) {
	var groups []string
	if err := s.api.Get(ctx, "/groups", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ByGroup lists the exercises of one muscle group.
func (s *Service) ByGroup(ctx context.Context, group string) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	path := "/exercises/bygroup/" + url.PathEscape(group)
	if err := s.api.Get(ctx, path, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// ByGroups fetches several group listings concurrently and returns
// them keyed by group. One failed group fails the whole fetch.
func (s *Service) ByGroups(ctx context.Context, groups []string) (map[string][]domain.Exercise, error) {
	result := make(map[string][]domain.Exercise, len(groups))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(byGroupsConcurrency)

	for _, group := range groups {
		group := group
		g.Go(func() error {
			exercises, err := s.ByGroup(gctx, group)
			if err != nil {
				return fmt.Errorf("failed to fetch group %q: %w", group, err)
			}
			mu.Lock()
			result[group] = exercises
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get fetches one exercise's detail. Failures emit an error
// notification with the server message when recognized.
func (s *Service) Get(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	var ex domain.Exercise
	path := "/exercises/" + url.PathEscape(exerciseID)
	if err := s.api.Get(ctx, path, &ex); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("exercise detail fetch failed")
		s.notifier.Notify(notify.Message{
			Kind:  notify.KindError,
			Title: api.ErrorMessage(err, "Could not load the exercise details."),
		})
		return nil, err
	}
	return &ex, nil
}

// RegisterHistory marks an exercise as done, appending it to the
// user's history. Exactly one notification is emitted either way.
func (s *Service) RegisterHistory(ctx context.Context, exerciseID string) error {
	req := domain.RegisterHistoryRequest{ExerciseID: exerciseID}
	if err := s.api.Post(ctx, "/history", req, nil); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("history registration failed")
		s.notifier.Notify(notify.Message{
			Kind:  notify.KindError,
			Title: api.ErrorMessage(err, "Could not record the exercise."),
		})
		return err
	}

	if user, err := s.store.Current(); err == nil {
		audit.LogWithDetail(ctx, audit.ActionRegisterHistory, user.ID, exerciseID, "exercise recorded")
	}

	s.notifier.Notify(notify.Message{
		Kind:  notify.KindSuccess,
		Title: "Congratulations! Exercise recorded in your history.",
	})
	return nil
}

// History returns the user's completed exercises grouped by day.
func (s *Service) History(ctx context.Context) ([]domain.HistoryDay, error) {
	var days []domain.HistoryDay
	if err := s.api.Get(ctx, "/history", &days); err != nil {
		return nil, err
	}
	return days, nil
}

// DemoURL builds the URL of an exercise's demonstration image.
func (s *Service) DemoURL(ex domain.Exercise) string {
	return s.api.BaseURL() + "/exercise/demo/" + ex.Demo
}

// ThumbURL builds the URL of an exercise's thumbnail.
func (s *Service) ThumbURL(ex domain.Exercise) string {
	return s.api.BaseURL() + "/exercise/thumb/" + ex.Thumb
}
