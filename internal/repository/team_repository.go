package repository

import (
	"context"
	"fmt"

	"mirage-api/internal/domain"
	"mirage-api/pkg/database"

	"github.com/jackc/pgx/v5"
)

// TeamRepository is the Postgres-backed TeamStore.
//
// Schema:
//
//	CREATE TABLE teams (
//	    id      text PRIMARY KEY,
//	    name    text NOT NULL,
//	    members jsonb NOT NULL DEFAULT '[]',
//	    points  integer NOT NULL DEFAULT 0,
//	    solved  jsonb NOT NULL DEFAULT '[]'
//	)
//
// A GIN index on members keeps the by-member containment lookup cheap:
//
//	CREATE INDEX teams_members_idx ON teams USING GIN (members)
type TeamRepository struct {
	db *database.PostgresDB
}

func NewTeamRepository(db *database.PostgresDB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Get retrieves a team by ID
func (r *TeamRepository) Get(ctx context.Context, teamID string) (*domain.Team, error) {
	return r.getOne(ctx,
		`SELECT id, name, members, points, solved FROM teams WHERE id = $1`,
		teamID,
	)
}

// GetByMember retrieves the team whose member list contains memberID
func (r *TeamRepository) GetByMember(ctx context.Context, memberID string) (*domain.Team, error) {
	return r.getOne(ctx,
		`SELECT id, name, members, points, solved FROM teams WHERE members @> to_jsonb($1::text)`,
		memberID,
	)
}

func (r *TeamRepository) getOne(ctx context.Context, query string, arg any) (*domain.Team, error) {
	var team domain.Team
	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&team.ID,
		&team.Name,
		&team.Members,
		&team.Points,
		&team.Solved,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// Credit applies the combined increment+insert in one conditional statement.
// The WHERE clause makes the write idempotent per (team, question): a replay
// or a racing duplicate matches zero rows and reports applied=false.
func (r *TeamRepository) Credit(ctx context.Context, teamID, questionID string, points int) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE teams
		SET points = points + $3,
		    solved = solved || to_jsonb($2::text)
		WHERE id = $1 AND NOT solved @> to_jsonb($2::text)
	`, teamID, questionID, points)
	if err != nil {
		return false, fmt.Errorf("failed to credit team: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
