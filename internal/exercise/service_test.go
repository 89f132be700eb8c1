package exercise

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/gimelloc/ignite-gym/internal/api"
	"github.com/gimelloc/ignite-gym/internal/domain"
	"github.com/gimelloc/ignite-gym/internal/notify"
	"github.com/gimelloc/ignite-gym/internal/session"
)

// stubAPI serves canned JSON per path and records requests.
type stubAPI struct {
	mu        sync.Mutex
	responses map[string]any
	errs      map[string]error
	gets      []string
	posts     []string
	postBody  any
}

func (a *stubAPI) Get(ctx context.Context, path string, out any) error {
	a.mu.Lock()
	a.gets = append(a.gets, path)
	a.mu.Unlock()
	if err := a.errs[path]; err != nil {
		return err
	}
	data, _ := json.Marshal(a.responses[path])
	return json.Unmarshal(data, out)
}

func (a *stubAPI) Post(ctx context.Context, path string, body, out any) error {
	a.mu.Lock()
	a.posts = append(a.posts, path)
	a.postBody = body
	a.mu.Unlock()
	return a.errs[path]
}

func (a *stubAPI) BaseURL() string { return "http://api.test" }

type stubStore struct {
	user domain.User
}

func (s *stubStore) Current() (domain.User, error)         { return s.user, nil }
func (s *stubStore) CommitProfile(user domain.User) error  { return nil }
func (s *stubStore) Save(u domain.User, t, r string) error { return nil }
func (s *stubStore) Clear() error                          { return nil }
func (s *stubStore) Token() string                         { return "" }

var _ session.Store = (*stubStore)(nil)

type stubNotifier struct {
	messages []notify.Message
}

func (n *stubNotifier) Notify(msg notify.Message) {
	n.messages = append(n.messages, msg)
}

func TestGroups(t *testing.T) {
	apiStub := &stubAPI{responses: map[string]any{"/groups": []string{"back", "chest"}}}
	s := NewService(apiStub, &stubStore{}, &stubNotifier{})

	groups, err := s.Groups(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 || groups[0] != "back" {
		t.Errorf("unexpected groups %v", groups)
	}
}

func TestByGroupEscapesPath(t *testing.T) {
	apiStub := &stubAPI{responses: map[string]any{
		"/exercises/bygroup/lower%20back": []domain.Exercise{{ID: "1", Name: "Deadlift"}},
	}}
	s := NewService(apiStub, &stubStore{}, &stubNotifier{})

	exercises, err := s.ByGroup(context.Background(), "lower back")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exercises) != 1 || exercises[0].Name != "Deadlift" {
		t.Errorf("unexpected exercises %v", exercises)
	}
}

func TestByGroupsFetchesAll(t *testing.T) {
	apiStub := &stubAPI{responses: map[string]any{
		"/exercises/bygroup/back":  []domain.Exercise{{ID: "1"}, {ID: "2"}},
		"/exercises/bygroup/chest": []domain.Exercise{{ID: "3"}},
		"/exercises/bygroup/legs":  []domain.Exercise{},
	}}
	s := NewService(apiStub, &stubStore{}, &stubNotifier{})

	result, err := s.ByGroups(context.Background(), []string{"back", "chest", "legs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(result))
	}
	if len(result["back"]) != 2 || len(result["chest"]) != 1 || len(result["legs"]) != 0 {
		t.Errorf("unexpected result %v", result)
	}
}

func TestByGroupsPropagatesFailure(t *testing.T) {
	apiStub := &stubAPI{
		responses: map[string]any{"/exercises/bygroup/back": []domain.Exercise{}},
		errs:      map[string]error{"/exercises/bygroup/chest": errors.New("boom")},
	}
	s := NewService(apiStub, &stubStore{}, &stubNotifier{})

	if _, err := s.ByGroups(context.Background(), []string{"back", "chest"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetNotifiesOnFailure(t *testing.T) {
	apiStub := &stubAPI{errs: map[string]error{
		"/exercises/ex-1": &api.AppError{Status: 404, Message: "Exercise not found."},
	}}
	notifier := &stubNotifier{}
	s := NewService(apiStub, &stubStore{}, notifier)

	if _, err := s.Get(context.Background(), "ex-1"); err == nil {
		t.Fatal("expected error")
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.messages))
	}
	if msg := notifier.messages[0]; msg.Kind != notify.KindError || msg.Title != "Exercise not found." {
		t.Errorf("unexpected notification %+v", msg)
	}
}

func TestRegisterHistorySuccess(t *testing.T) {
	apiStub := &stubAPI{}
	notifier := &stubNotifier{}
	s := NewService(apiStub, &stubStore{user: domain.User{ID: "u-1"}}, notifier)

	if err := s.RegisterHistory(context.Background(), "ex-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apiStub.posts) != 1 || apiStub.posts[0] != "/history" {
		t.Fatalf("expected one POST /history, got %v", apiStub.posts)
	}
	req, ok := apiStub.postBody.(domain.RegisterHistoryRequest)
	if !ok || req.ExerciseID != "ex-1" {
		t.Errorf("unexpected body %+v", apiStub.postBody)
	}
	if len(notifier.messages) != 1 || notifier.messages[0].Kind != notify.KindSuccess {
		t.Fatalf("expected one success notification, got %v", notifier.messages)
	}
}

func TestRegisterHistoryFailureFallback(t *testing.T) {
	apiStub := &stubAPI{errs: map[string]error{"/history": errors.New("timeout")}}
	notifier := &stubNotifier{}
	s := NewService(apiStub, &stubStore{}, notifier)

	if err := s.RegisterHistory(context.Background(), "ex-1"); err == nil {
		t.Fatal("expected error")
	}
	if msg := notifier.messages[0]; msg.Kind != notify.KindError || msg.Title != "Could not record the exercise." {
		t.Errorf("unexpected notification %+v", msg)
	}
}

func TestHistory(t *testing.T) {
	apiStub := &stubAPI{responses: map[string]any{"/history": []domain.HistoryDay{
		{Title: "22.07.24", Entries: []domain.HistoryEntry{{ID: "h1", Name: "Deadlift", Group: "back", Hour: "08:12"}}},
	}}}
	s := NewService(apiStub, &stubStore{}, &stubNotifier{})

	days, err := s.History(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 || days[0].Title != "22.07.24" || len(days[0].Entries) != 1 {
		t.Errorf("unexpected history %v", days)
	}
}

func TestImageURLs(t *testing.T) {
	s := NewService(&stubAPI{}, &stubStore{}, &stubNotifier{})
	ex := domain.Exercise{Demo: "deadlift.gif", Thumb: "deadlift.png"}
	if got := s.DemoURL(ex); got != "http://api.test/exercise/demo/deadlift.gif" {
		t.Errorf("unexpected demo URL %q", got)
	}
	if got := s.ThumbURL(ex); got != "http://api.test/exercise/thumb/deadlift.png" {
		t.Errorf("unexpected thumb URL %q", got)
	}
}
