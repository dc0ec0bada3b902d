package service

import (
	"context"

	"mirage-api/internal/domain"
	"mirage-api/pkg/geo"
)

// QuestionIndex defines the interface for the in-memory question snapshot.
type QuestionIndex interface {
	// Refresh replaces the snapshot from the question store. On failure
	// the previous snapshot is retained.
	Refresh(ctx context.Context) error

	// Lookup returns the question by ID from the current snapshot.
	// Never blocks on I/O.
	Lookup(questionID string) (*domain.Question, bool)

	// All returns every question in the current snapshot.
	All() []*domain.Question

	// CandidatesNear returns the questions in the geohash neighborhood
	// of the position. Callers still apply the precise distance filter.
	CandidatesNear(pos geo.Coordinate) []*domain.Question

	// Ready reports whether a snapshot has been loaded.
	Ready() bool
}

// AnswerEngine defines the interface for answer submission processing.
type AnswerEngine interface {
	// Submit runs one submission through the validation state machine and,
	// on acceptance, applies the credit and selects the next hint.
	Submit(ctx context.Context, sub domain.Submission) (*domain.AnswerResponse, error)
}

// TargetFinder defines the interface for the discovery query.
type TargetFinder interface {
	// FindNearby returns the targets within the answer radius of the
	// position. Reads only the index; safe to poll at high frequency.
	FindNearby(pos geo.Coordinate) []domain.Target
}
