package repository

import (
	"context"

	"mirage-api/internal/domain"
)

// QuestionStore defines the interface for question document operations. The
// store is authoritative for mutable fields (point value, solve list); the
// in-memory index is authoritative only for the immutable ones.
type QuestionStore interface {
	// ListAll retrieves the full question collection for an index refresh.
	ListAll(ctx context.Context) ([]domain.Question, error)

	// LivePoints retrieves a question's current point value. Always read
	// here before crediting; the indexed value may be stale.
	LivePoints(ctx context.Context, questionID string) (int, error)

	// AppendSolve appends a record to the question's audit trail.
	AppendSolve(ctx context.Context, questionID string, record domain.SolveRecord) error

	// DecayPoints lowers the question's point value by step, clamped to
	// floor. Safe under concurrent solvers.
	DecayPoints(ctx context.Context, questionID string, step, floor int) error
}

// TeamStore defines the interface for team document operations.
type TeamStore interface {
	// Get retrieves a team by ID. Returns (nil, nil) when absent.
	Get(ctx context.Context, teamID string) (*domain.Team, error)

	// GetByMember retrieves the team containing the member. Returns
	// (nil, nil) when the member belongs to no team.
	GetByMember(ctx context.Context, memberID string) (*domain.Team, error)

	// Credit atomically increments the team's points and inserts the
	// question into its solved set. The write is conditional on the
	// question not already being present; the returned bool reports
	// whether it applied, so retries of the same logical submission
	// cannot double-credit.
	Credit(ctx context.Context, teamID, questionID string, points int) (bool, error)
}
