package service

import (
	"context"
	"sort"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
)

// fakeTitles is an in-memory TitleStore. It understands the predicates the
// featured selector uses and records every plan it receives.
type fakeTitles struct {
	rows         []models.Title
	genres       map[string][]models.Genre
	similar      map[string][]models.SimilarTitle
	contributors map[string][]models.Contributor
	byIndividual map[string][]models.Title
	episodes     map[string][]models.Episode
	plans        []search.Plan
	err          error
}

func eligible(t models.Title, genres []models.Genre, filters []search.Filter) bool {
	for _, f := range filters {
		switch f.Field {
		case search.FieldRating:
			if t.AvgRating == nil {
				return false
			}
			if f.Op == search.OpGte && *t.AvgRating < f.Value.(float64) {
				return false
			}
		case search.FieldGenreID:
			found := false
			for _, g := range genres {
				found = found || g.ID == f.Value.(int)
			}
			if !found {
				return false
			}
		case search.FieldMediaType:
			if t.MediaType != f.Value.(string) {
				return false
			}
		case search.FieldAdult:
			if t.IsAdult != f.Value.(bool) {
				return false
			}
		case search.FieldPlot:
			if t.Plot == "" {
				return false
			}
		}
	}
	return true
}

func (f *fakeTitles) matching(filters []search.Filter) []models.Title {
	var out []models.Title
	for _, t := range f.rows {
		if eligible(t, f.genres[t.ID], filters) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeTitles) Count(_ context.Context, filters []search.Filter) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.matching(filters)), nil
}

func (f *fakeTitles) Search(_ context.Context, plan search.Plan) ([]models.Title, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.plans = append(f.plans, plan)
	rows := f.matching(plan.Filters)
	if plan.Offset >= len(rows) {
		return nil, nil
	}
	end := plan.Offset + plan.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[plan.Offset:end], nil
}

func (f *fakeTitles) Get(_ context.Context, id string) (*models.Title, error) {
	for _, t := range f.rows {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, ErrTitleNotFound
}

func (f *fakeTitles) Genres(_ context.Context, id string) ([]models.Genre, error) {
	return f.genres[id], nil
}

func (f *fakeTitles) Similar(_ context.Context, id string) ([]models.SimilarTitle, error) {
	return f.similar[id], nil
}

func (f *fakeTitles) Contributors(_ context.Context, id string) ([]models.Contributor, error) {
	return f.contributors[id], nil
}

func (f *fakeTitles) ByIndividual(_ context.Context, id string) ([]models.Title, error) {
	return f.byIndividual[id], nil
}

func (f *fakeTitles) Episodes(_ context.Context, id string) ([]models.Episode, error) {
	return f.episodes[id], nil
}

type fakeGenres struct {
	rows []models.Genre
	err  error
}

func (f *fakeGenres) All(context.Context) ([]models.Genre, error) {
	return f.rows, f.err
}

func (f *fakeGenres) Get(_ context.Context, id int) (*models.Genre, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, g := range f.rows {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, ErrGenreNotFound
}

type fakeIndividuals struct {
	rows      []models.Individual
	coActors  []models.CoActor
	popular   []models.Individual
	lastName  string
	lastPlan  search.Plan
	lastLimit int
	lastOff   int
}

func (f *fakeIndividuals) Search(_ context.Context, plan search.Plan) ([]models.Individual, error) {
	f.lastPlan = plan
	return f.rows, nil
}

func (f *fakeIndividuals) Get(_ context.Context, id string) (*models.Individual, error) {
	for _, i := range f.rows {
		if i.ID == id {
			return &i, nil
		}
	}
	return nil, ErrIndividualNotFound
}

func (f *fakeIndividuals) MostPopular(_ context.Context, limit, offset int) ([]models.Individual, error) {
	f.lastLimit, f.lastOff = limit, offset
	return f.rows, nil
}

func (f *fakeIndividuals) CoActors(_ context.Context, name string) ([]models.CoActor, error) {
	f.lastName = name
	return f.coActors, nil
}

func (f *fakeIndividuals) PopularActors(_ context.Context, _ string) ([]models.Individual, error) {
	return f.popular, nil
}

func (f *fakeIndividuals) FindByName(_ context.Context, name string) ([]models.NameMatch, error) {
	f.lastName = name
	return nil, nil
}

type ratingKey struct {
	user  int
	title string
}

type fakeRatings struct {
	rows map[ratingKey]models.Rating
}

func newFakeRatings() *fakeRatings {
	return &fakeRatings{rows: map[ratingKey]models.Rating{}}
}

func (f *fakeRatings) Rate(_ context.Context, userID int, titleID string, score int, review *string) error {
	if titleID == "tt-missing" {
		return ErrTitleNotFound
	}
	f.rows[ratingKey{userID, titleID}] = models.Rating{UserID: userID, TitleID: titleID, Rating: score, ReviewText: review}
	return nil
}

func (f *fakeRatings) Delete(_ context.Context, userID int, titleID string) error {
	k := ratingKey{userID, titleID}
	if _, ok := f.rows[k]; !ok {
		return ErrRatingNotFound
	}
	delete(f.rows, k)
	return nil
}

func (f *fakeRatings) ByUser(_ context.Context, userID int) ([]models.Rating, error) {
	var out []models.Rating
	for k, r := range f.rows {
		if k.user == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatings) ByTitle(_ context.Context, titleID string) ([]models.Rating, error) {
	var out []models.Rating
	for k, r := range f.rows {
		if k.title == titleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func ratingp(v float64) *float64 { return &v }
func intp(v int) *int            { return &v }
