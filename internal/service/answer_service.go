package service

import (
	"context"
	"math/rand"
	"time"

	"mirage-api/internal/domain"
	"mirage-api/internal/repository"
	"mirage-api/pkg/errors"
	"mirage-api/pkg/geo"
	"mirage-api/pkg/logger"

	"github.com/google/uuid"
)

// CompletionMessage is returned in place of a hint once a team has solved
// every question.
const CompletionMessage = "All mirages found. The hunt is complete!"

// AnswerService runs submissions through the validation chain and applies
// the scoring consequences of an accepted answer. Validation order is fixed:
// question existence, proximity, team membership, duplicate check, answer
// comparison. A caller therefore cannot learn whether an answer is correct
// without first being at the right place with a valid team, and a solved
// question keeps rejecting with the duplicate reason even when the resent
// answer is wrong.
type AnswerService struct {
	index     QuestionIndex
	teams     repository.TeamStore
	questions repository.QuestionStore
	cache     *TeamCache
	log       *logger.Logger

	radiusM      float64
	decay        int
	floor        int
	hintWindow   int
	storeTimeout time.Duration

	// Injection points for deterministic tests.
	randIntn func(int) int
	now      func() time.Time
}

func NewAnswerService(
	index QuestionIndex,
	teams repository.TeamStore,
	questions repository.QuestionStore,
	cache *TeamCache,
	log *logger.Logger,
	radiusM float64,
	decay, floor, hintWindow int,
	storeTimeout time.Duration,
) *AnswerService {
	return &AnswerService{
		index:        index,
		teams:        teams,
		questions:    questions,
		cache:        cache,
		log:          log,
		radiusM:      radiusM,
		decay:        decay,
		floor:        floor,
		hintWindow:   hintWindow,
		storeTimeout: storeTimeout,
		randIntn:     rand.Intn,
		now:          time.Now,
	}
}

// Submit processes one answer attempt. Rejections come back as *AppError
// with a wire reason; infrastructure failures come back as store-unavailable
// errors and never masquerade as rejections.
func (s *AnswerService) Submit(ctx context.Context, sub domain.Submission) (*domain.AnswerResponse, error) {
	question, ok := s.index.Lookup(sub.QuestionID)
	if !ok {
		return nil, errors.NewRejection(errors.ReasonNotFound, "no such question")
	}

	pos := geo.Coordinate{Lat: sub.Position.Lat, Lng: sub.Position.Lng}
	if !geo.WithinRadius(pos, question.Location, s.radiusM) {
		return nil, errors.NewRejection(errors.ReasonOutOfRange, "submission too far from target")
	}

	team, err := s.resolveTeam(ctx, sub.MemberID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, errors.NewRejection(errors.ReasonTeamNotFound, "member belongs to no team")
	}

	if team.HasSolved(sub.QuestionID) || s.cache.IsSolved(ctx, team.ID, sub.QuestionID) {
		return nil, errors.NewRejection(errors.ReasonAlreadyAnswered, "question already solved by team")
	}

	if !domain.AnswersMatch(sub.Answer, question.Answer) {
		return nil, errors.NewRejection(errors.ReasonIncorrect, "answer does not match")
	}

	if !s.cache.AcquireCreditLock(ctx, team.ID, sub.QuestionID) {
		return nil, errors.NewRejection(errors.ReasonAlreadyAnswered, "concurrent duplicate submission")
	}

	applied, points, err := s.credit(ctx, team, question)
	if err != nil {
		s.cache.ReleaseCreditLock(ctx, team.ID, sub.QuestionID)
		return nil, err
	}
	if !applied {
		// The store had already recorded this solve; the stale team read
		// just missed it.
		s.cache.MarkSolved(ctx, team.ID, sub.QuestionID)
		return nil, errors.NewRejection(errors.ReasonAlreadyAnswered, "credit already applied")
	}

	s.cache.MarkSolved(ctx, team.ID, sub.QuestionID)
	s.afterCredit(ctx, team, question, points)

	s.log.WithFields(map[string]interface{}{
		"question_id": sub.QuestionID,
		"team_id":     team.ID,
		"points":      points,
	}).Info("Answer accepted")

	return &domain.AnswerResponse{NextHint: s.nextHint(team, sub.QuestionID)}, nil
}

func (s *AnswerService) resolveTeam(ctx context.Context, memberID string) (*domain.Team, error) {
	if teamID := s.cache.TeamIDByMember(ctx, memberID); teamID != "" {
		team, err := s.getTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		// Stale mapping: membership changed out-of-band. Fall through to
		// the member query.
		if team != nil && team.HasMember(memberID) {
			return team, nil
		}
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	team, err := s.teams.GetByMember(storeCtx, memberID)
	if err != nil {
		return nil, errors.NewStoreUnavailableError(err)
	}
	if team != nil {
		s.cache.CacheTeamIDByMember(ctx, memberID, team.ID)
	}
	return team, nil
}

func (s *AnswerService) getTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	team, err := s.teams.Get(storeCtx, teamID)
	if err != nil {
		return nil, errors.NewStoreUnavailableError(err)
	}
	return team, nil
}

// credit reads the live point value and applies the conditional team update.
// The returned bool reports whether this submission was the one that landed.
func (s *AnswerService) credit(ctx context.Context, team *domain.Team, question *domain.Question) (bool, int, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	points, err := s.questions.LivePoints(storeCtx, question.ID)
	if err != nil {
		return false, 0, errors.NewStoreUnavailableError(err)
	}

	applied, err := s.teams.Credit(storeCtx, team.ID, question.ID, points)
	if err != nil {
		return false, 0, errors.NewStoreUnavailableError(err)
	}
	return applied, points, nil
}

// afterCredit records the solve in the question's audit trail and decays its
// point value. The credit has already landed, so failures here are logged
// and swallowed rather than surfaced as submission failures.
func (s *AnswerService) afterCredit(ctx context.Context, team *domain.Team, question *domain.Question, points int) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	record := domain.SolveRecord{
		ID:       uuid.NewString(),
		TeamID:   team.ID,
		TeamName: team.Name,
		Points:   points,
		SolvedAt: s.now().UTC(),
	}
	if err := s.questions.AppendSolve(storeCtx, question.ID, record); err != nil {
		s.log.WithError(err).WithField("question_id", question.ID).Warn("Solve record append failed after credit")
	}

	if err := s.questions.DecayPoints(storeCtx, question.ID, s.decay, s.floor); err != nil {
		s.log.WithError(err).WithField("question_id", question.ID).Warn("Point decay failed after credit")
	}
}

// nextHint picks the hint for one of the team's remaining questions. The
// selection is bounded-random: a random start in the unsolved list, then a
// random step within the hint window, so teams fan out across targets
// instead of converging on one.
func (s *AnswerService) nextHint(team *domain.Team, justSolved string) string {
	var unsolved []*domain.Question
	for _, q := range s.index.All() {
		if q.ID == justSolved || team.HasSolved(q.ID) {
			continue
		}
		unsolved = append(unsolved, q)
	}
	if len(unsolved) == 0 {
		return CompletionMessage
	}

	window := s.hintWindow
	if window > len(unsolved) {
		window = len(unsolved)
	}
	start := s.randIntn(len(unsolved))
	pick := (start + s.randIntn(window)) % len(unsolved)
	return unsolved[pick].Hint
}
