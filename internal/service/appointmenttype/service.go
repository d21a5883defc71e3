package appointmenttype

import (
	"context"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/soulconnect/patient-api/internal/model"
	"github.com/soulconnect/patient-api/internal/repository"
)

const cacheKey = "appointment_types"

// Service lists the read-only appointment type reference data, sorted by
// name ascending. The table never changes at runtime, so results are
// served from a short-lived cache.
type Service interface {
	List(ctx context.Context) ([]*model.AppointmentType, error)
}

type service struct {
	repo  repository.AppointmentTypeRepository
	cache *cache.Cache
}

func NewService(repo repository.AppointmentTypeRepository, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &service{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *service) List(ctx context.Context) ([]*model.AppointmentType, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return copyTypes(cached.([]*model.AppointmentType)), nil
	}

	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	// The query orders by name, but the guarantee should not depend on
	// store collation.
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Name < types[j].Name
	})

	s.cache.Set(cacheKey, types, cache.DefaultExpiration)
	return copyTypes(types), nil
}

// copyTypes shields the cached slice from caller mutation.
func copyTypes(types []*model.AppointmentType) []*model.AppointmentType {
	out := make([]*model.AppointmentType, len(types))
	copy(out, types)
	return out
}
