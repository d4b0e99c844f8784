package services

import (
	"math"
	"sort"

	"github.com/bebektakip/carefinder/internal/domain/entities"
)

// RankingService orders provider lists. With a reference location the order
// is ascending distance; without one it is descending rating. The sort is
// stable, so ties keep their input order.
type RankingService struct{}

// NewRankingService creates a new ranking service.
func NewRankingService() *RankingService {
	return &RankingService{}
}

// Rank returns a new ordering of the given providers. The input slice is not
// modified.
func (s *RankingService) Rank(list []*entities.CareProvider, ref *entities.Location) []*entities.CareProvider {
	ranked := make([]*entities.CareProvider, len(list))
	copy(ranked, list)

	if ref != nil {
		sort.SliceStable(ranked, func(i, j int) bool {
			return distanceOf(ranked[i]) < distanceOf(ranked[j])
		})
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ratingOf(ranked[i]) > ratingOf(ranked[j])
	})
	return ranked
}

// distanceOf treats a missing distance as +Inf so those entries sort last.
func distanceOf(p *entities.CareProvider) float64 {
	if p.DistanceKm == nil {
		return math.Inf(1)
	}
	return *p.DistanceKm
}

// ratingOf treats a missing rating as 0.
func ratingOf(p *entities.CareProvider) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// haversineKm is the great-circle distance between two points in kilometers.
func haversineKm(from, to entities.Location) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := toRadians(from.Latitude)
	lat2Rad := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
