package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"mirage-api/internal/domain"
	"mirage-api/pkg/database"
	"mirage-api/pkg/geo"

	"github.com/jackc/pgx/v5"
)

// QuestionRepository is the Postgres-backed QuestionStore.
//
// Schema:
//
//	CREATE TABLE questions (
//	    id       char(20) PRIMARY KEY,
//	    title    text NOT NULL,
//	    question text NOT NULL,
//	    answer   text NOT NULL,
//	    hint     text NOT NULL,
//	    lat      double precision NOT NULL,
//	    lng      double precision NOT NULL,
//	    geohash  text NOT NULL,
//	    points   integer NOT NULL,
//	    solves   jsonb NOT NULL DEFAULT '[]'
//	)
type QuestionRepository struct {
	db *database.PostgresDB
}

func NewQuestionRepository(db *database.PostgresDB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListAll fetches every question document. Used only by index refresh, never
// on the request path.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]domain.Question, error) {
	query := `
		SELECT id, title, question, answer, hint, lat, lng, geohash, points
		FROM questions
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(
			&q.ID,
			&q.Title,
			&q.Prompt,
			&q.Answer,
			&q.Hint,
			&q.Location.Lat,
			&q.Location.Lng,
			&q.Geohash,
			&q.Points,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		// Stored geohash may predate a precision change; recompute so
		// index buckets are always consistent with the current scheme.
		if len(q.Geohash) != geo.BucketPrecision {
			q.Geohash = geo.Encode(q.Location, geo.BucketPrecision)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	return questions, nil
}

// LivePoints reads the current point value straight from the store.
func (r *QuestionRepository) LivePoints(ctx context.Context, questionID string) (int, error) {
	var points int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT points FROM questions WHERE id = $1`, questionID,
	).Scan(&points)

	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("question %s not in store", questionID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get live points: %w", err)
	}

	return points, nil
}

// AppendSolve appends one record to the question's audit trail.
func (r *QuestionRepository) AppendSolve(ctx context.Context, questionID string, record domain.SolveRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal solve record: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE questions SET solves = solves || $2::jsonb WHERE id = $1`,
		questionID, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to append solve record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s not in store", questionID)
	}

	return nil
}

// DecayPoints applies the decay step as a single clamped UPDATE, so
// concurrent solvers cannot lose decrements and the value never drops below
// the floor.
func (r *QuestionRepository) DecayPoints(ctx context.Context, questionID string, step, floor int) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE questions SET points = GREATEST(points - $2, $3) WHERE id = $1 AND points > $3`,
		questionID, step, floor,
	)
	if err != nil {
		return fmt.Errorf("failed to decay points: %w", err)
	}

	return nil
}
