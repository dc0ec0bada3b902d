package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"mirage-api/internal/domain"
	"mirage-api/internal/repository"
	"mirage-api/pkg/geo"
	"mirage-api/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// snapshot is one immutable generation of the index. Mutable question fields
// (point value, solve list) are authoritative in the store, so a snapshot may
// be stale for those; coordinates, answer and hint never change after
// authoring.
type snapshot struct {
	byID     map[string]*domain.Question
	byCell   map[string][]*domain.Question
	ordered  []*domain.Question
	loadedAt time.Time
}

// GeoIndex holds the current snapshot behind an atomic pointer: lookups never
// block, and a refresh swaps the pointer wholesale so readers see either the
// old or the new generation, never a mix.
type GeoIndex struct {
	store repository.QuestionStore
	log   *logger.Logger
	snap  atomic.Pointer[snapshot]
	sf    singleflight.Group
}

func NewGeoIndex(store repository.QuestionStore, log *logger.Logger) *GeoIndex {
	return &GeoIndex{store: store, log: log}
}

// Refresh loads the full question collection and replaces the snapshot.
// Concurrent calls collapse into a single store scan. On any failure the
// previous snapshot stays in place.
func (g *GeoIndex) Refresh(ctx context.Context) error {
	_, err, _ := g.sf.Do("refresh", func() (interface{}, error) {
		questions, err := g.store.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("refresh: %w", err)
		}

		next := &snapshot{
			byID:     make(map[string]*domain.Question, len(questions)),
			byCell:   make(map[string][]*domain.Question),
			ordered:  make([]*domain.Question, 0, len(questions)),
			loadedAt: time.Now().UTC(),
		}

		for i := range questions {
			q := &questions[i]
			if err := validateQuestion(q); err != nil {
				return nil, fmt.Errorf("refresh: %w", err)
			}
			if q.Geohash == "" {
				q.Geohash = geo.Encode(q.Location, geo.BucketPrecision)
			}
			next.byID[q.ID] = q
			next.byCell[q.Geohash] = append(next.byCell[q.Geohash], q)
			next.ordered = append(next.ordered, q)
		}

		g.snap.Store(next)
		g.log.WithField("questions", len(next.ordered)).Info("Question index refreshed")
		return nil, nil
	})

	if err != nil {
		g.log.WithError(err).Error("Question index refresh failed, keeping previous snapshot")
	}
	return err
}

func validateQuestion(q *domain.Question) error {
	if q.ID == "" {
		return fmt.Errorf("question with empty id")
	}
	if q.Answer == "" {
		return fmt.Errorf("question %s has no answer", q.ID)
	}
	if q.Location.Lat < -90 || q.Location.Lat > 90 || q.Location.Lng < -180 || q.Location.Lng > 180 {
		return fmt.Errorf("question %s has out-of-range coordinates", q.ID)
	}
	return nil
}

// Lookup returns the question by ID from the current snapshot.
func (g *GeoIndex) Lookup(questionID string) (*domain.Question, bool) {
	snap := g.snap.Load()
	if snap == nil {
		return nil, false
	}
	q, ok := snap.byID[questionID]
	return q, ok
}

// All returns every question in the current snapshot. The returned slice
// belongs to an immutable generation and must not be modified.
func (g *GeoIndex) All() []*domain.Question {
	snap := g.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.ordered
}

// CandidatesNear returns the questions bucketed in the 3x3 geohash
// neighborhood of the position.
func (g *GeoIndex) CandidatesNear(pos geo.Coordinate) []*domain.Question {
	snap := g.snap.Load()
	if snap == nil {
		return nil
	}

	var candidates []*domain.Question
	for _, cell := range geo.Neighborhood(geo.Encode(pos, geo.BucketPrecision)) {
		candidates = append(candidates, snap.byCell[cell]...)
	}
	return candidates
}

// Ready reports whether a snapshot has been loaded.
func (g *GeoIndex) Ready() bool {
	return g.snap.Load() != nil
}

// LoadedAt returns when the current snapshot was built, for the health
// endpoint. Zero time when no snapshot is loaded.
func (g *GeoIndex) LoadedAt() time.Time {
	snap := g.snap.Load()
	if snap == nil {
		return time.Time{}
	}
	return snap.loadedAt
}
