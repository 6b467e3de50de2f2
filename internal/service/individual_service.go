package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
)

// IndividualService handles business logic for individuals.
type IndividualService struct {
	individuals IndividualStore
	titles      TitleStore
}

// NewIndividualService creates a new IndividualService.
func NewIndividualService(individuals IndividualStore, titles TitleStore) *IndividualService {
	return &IndividualService{individuals: individuals, titles: titles}
}

// Search returns one page of individual references matching the criteria.
func (s *IndividualService) Search(ctx context.Context, c search.IndividualCriteria) ([]models.IndividualReference, error) {
	plan, err := c.Plan()
	if err != nil {
		return nil, err
	}
	rows, err := s.individuals.Search(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to search individuals: %w", err)
	}
	return models.References(rows), nil
}

// MostPopular ranks actors by the votes of the movies they appeared in.
func (s *IndividualService) MostPopular(ctx context.Context, page, pageSize int) ([]models.IndividualReference, error) {
	limit, offset := search.Window(page, pageSize)
	rows, err := s.individuals.MostPopular(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load popular individuals: %w", err)
	}
	return models.References(rows), nil
}

// Get returns the full individual.
func (s *IndividualService) Get(ctx context.Context, id string) (*models.IndividualFull, error) {
	ind, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	full := ind.ToFull()
	return &full, nil
}

// Titles returns previews of every title the individual contributed to,
// most voted first.
func (s *IndividualService) Titles(ctx context.Context, id string) ([]models.TitlePreview, error) {
	ind, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.titles.ByIndividual(ctx, ind.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load titles for individual: %w", err)
	}
	return models.Previews(rows), nil
}

// CoActors returns actors who appeared alongside the named actor. The name
// may arrive URL-encoded; a blank name yields an empty list.
func (s *IndividualService) CoActors(ctx context.Context, name string) ([]models.CoActor, error) {
	if decoded, err := url.QueryUnescape(name); err == nil {
		name = decoded
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return make([]models.CoActor, 0), nil
	}
	rows, err := s.individuals.CoActors(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find co-actors: %w", err)
	}
	if rows == nil {
		rows = make([]models.CoActor, 0)
	}
	return rows, nil
}

// PopularActors returns the popular actors related to a title or an
// individual, identified by a tt or nm prefixed id.
func (s *IndividualService) PopularActors(ctx context.Context, id string) ([]models.IndividualFull, error) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, "tt") && !strings.HasPrefix(id, "nm") {
		return nil, fmt.Errorf("%w: id must start with tt or nm", ErrValidation)
	}
	rows, err := s.individuals.PopularActors(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load popular actors: %w", err)
	}
	return models.Fulls(rows), nil
}

// FindByName runs the credit search for a name.
func (s *IndividualService) FindByName(ctx context.Context, name string) ([]models.NameMatch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	rows, err := s.individuals.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search credits: %w", err)
	}
	if rows == nil {
		rows = make([]models.NameMatch, 0)
	}
	return rows, nil
}

func (s *IndividualService) load(ctx context.Context, id string) (*models.Individual, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: individual id is required", ErrValidation)
	}
	return s.individuals.Get(ctx, id)
}
