package handler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mirage-api/internal/config"
	"mirage-api/internal/container"
	"mirage-api/internal/domain"
	"mirage-api/internal/middleware"
	"mirage-api/internal/service"
	"mirage-api/pkg/geo"
	"mirage-api/pkg/logger"

	"github.com/stretchr/testify/require"
)

type stubQuestionStore struct {
	mu        sync.Mutex
	questions map[string]*domain.Question
	listErr   error
}

func newStubQuestionStore(questions ...domain.Question) *stubQuestionStore {
	s := &stubQuestionStore{questions: make(map[string]*domain.Question)}
	for i := range questions {
		q := questions[i]
		s.questions[q.ID] = &q
	}
	return s
}

func (s *stubQuestionStore) ListAll(ctx context.Context) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (s *stubQuestionStore) LivePoints(ctx context.Context, questionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionID]
	if !ok {
		return 0, errors.New("question not in store")
	}
	return q.Points, nil
}

func (s *stubQuestionStore) AppendSolve(ctx context.Context, questionID string, record domain.SolveRecord) error {
	return nil
}

func (s *stubQuestionStore) DecayPoints(ctx context.Context, questionID string, step, floor int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionID]
	if !ok {
		return errors.New("question not in store")
	}
	if q.Points > floor {
		q.Points -= step
		if q.Points < floor {
			q.Points = floor
		}
	}
	return nil
}

type stubTeamStore struct {
	mu    sync.Mutex
	teams map[string]*domain.Team
}

func newStubTeamStore(teams ...domain.Team) *stubTeamStore {
	s := &stubTeamStore{teams: make(map[string]*domain.Team)}
	for i := range teams {
		t := teams[i]
		s.teams[t.ID] = &t
	}
	return s
}

func (s *stubTeamStore) Get(ctx context.Context, teamID string) (*domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *stubTeamStore) GetByMember(ctx context.Context, memberID string) (*domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		for _, m := range t.Members {
			if m == memberID {
				cp := *t
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (s *stubTeamStore) Credit(ctx context.Context, teamID, questionID string, points int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return false, errors.New("team not in store")
	}
	for _, id := range t.Solved {
		if id == questionID {
			return false, nil
		}
	}
	t.Solved = append(t.Solved, questionID)
	t.Points += points
	return true, nil
}

const testQuestionID = "q1000000000000000001"

// newTestContainer wires a container around in-memory stores, bypassing
// container.New so no Postgres or Redis is needed.
func newTestContainer(t *testing.T) *container.Container {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)

	questions := newStubQuestionStore(domain.Question{
		ID:       testQuestionID,
		Title:    "Fountain",
		Prompt:   "How many jets?",
		Answer:   "seven",
		Hint:     "Look for falling water",
		Location: geo.Coordinate{Lat: 30.3539, Lng: 76.3683},
		Points:   100,
	})
	teams := newStubTeamStore(domain.Team{
		ID: "team-blue", Name: "Blue", Members: []string{"m1"},
	})

	cfg := &config.Config{
		AnswerRadiusM: 50,
		PointDecay:    10,
		PointFloor:    50,
		HintWindow:    5,
		StoreTimeout:  3 * time.Second,
		OperatorToken: "op-secret",
	}

	index := service.NewGeoIndex(questions, log)
	require.NoError(t, index.Refresh(context.Background()))

	answers := service.NewAnswerService(index, teams, questions, nil, log,
		cfg.AnswerRadiusM, cfg.PointDecay, cfg.PointFloor, cfg.HintWindow, cfg.StoreTimeout)
	targets := service.NewTargetService(index, cfg.AnswerRadiusM)

	return &container.Container{
		Config:    cfg,
		Logger:    log,
		Questions: questions,
		Teams:     teams,
		Index:     index,
		Answers:   answers,
		Targets:   targets,
		Perf:      middleware.NewPerfMonitor(),
	}
}
