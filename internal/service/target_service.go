package service

import (
	"mirage-api/internal/domain"
	"mirage-api/pkg/geo"
)

// TargetService answers the discovery poll: which questions is the caller
// standing close enough to answer right now. It reads only the index, so a
// fleet of moving clients polling every few seconds never touches a store.
//
// The radius is the same one the answer path enforces, so a target returned
// here is always answerable from the same spot.
type TargetService struct {
	index   QuestionIndex
	radiusM float64
}

func NewTargetService(index QuestionIndex, radiusM float64) *TargetService {
	return &TargetService{index: index, radiusM: radiusM}
}

// FindNearby returns every question within the answer radius of the
// position. Candidates come from the geohash neighborhood prefilter; the
// precise distance check decides. Empty when nothing is in range.
func (s *TargetService) FindNearby(pos geo.Coordinate) []domain.Target {
	targets := make([]domain.Target, 0)
	for _, q := range s.index.CandidatesNear(pos) {
		if !geo.WithinRadius(pos, q.Location, s.radiusM) {
			continue
		}
		targets = append(targets, domain.Target{
			ID:     q.ID,
			Title:  q.Title,
			Prompt: q.Prompt,
			Lat:    q.Location.Lat,
			Lng:    q.Location.Lng,
		})
	}
	return targets
}
