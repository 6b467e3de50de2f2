package models

import (
	"strings"
	"time"
)

// TMDBImageBaseW500 prefixes poster paths that were stored relative to the
// TMDB image CDN.
const TMDBImageBaseW500 = "https://image.tmdb.org/t/p/w500"

// Title is a row of mdb.title.
type Title struct {
	ID          string     `db:"tconst"`
	Name        string     `db:"title_name"`
	MediaType   string     `db:"media_type"`
	AvgRating   *float64   `db:"avg_rating"`
	NumVotes    *int       `db:"numvotes"`
	ReleaseDate *time.Time `db:"release_date"`
	IsAdult     bool       `db:"is_adult"`
	StartYear   *int       `db:"start_year"`
	EndYear     *int       `db:"end_year"`
	Runtime     *int       `db:"runtime"`
	Poster      string     `db:"poster"`
	Plot        string     `db:"plot"`
}

// Genre is a row of mdb.genre.
type Genre struct {
	ID   int    `db:"gconst" json:"id"`
	Name string `db:"gname" json:"name"`
}

// Episode is a row of mdb.episode, linking an episode title to its series.
type Episode struct {
	ID            string  `db:"tconst" json:"id"`
	ParentID      *string `db:"parenttconst" json:"parentId"`
	Season        *int    `db:"snum" json:"season"`
	EpisodeNumber *int    `db:"epnum" json:"episodeNumber"`
}

// TitlePreview is the list projection of a title.
type TitlePreview struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MediaType   string   `json:"mediaType"`
	AvgRating   *float64 `json:"avgRating"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Poster      string   `json:"poster"`
	Plot        string   `json:"plot,omitempty"`
}

// TitleFull is the detail projection of a title.
type TitleFull struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MediaType   string   `json:"mediaType"`
	AvgRating   *float64 `json:"avgRating"`
	NumVotes    *int     `json:"numVotes"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Adult       bool     `json:"adult"`
	StartYear   *int     `json:"startYear"`
	EndYear     *int     `json:"endYear"`
	Runtime     *int     `json:"runtime"`
	Poster      string   `json:"poster"`
	Plot        string   `json:"plot"`
	Genres      []Genre  `json:"genres"`
}

// SimilarTitle is one row returned by mdb.similar_movies.
type SimilarTitle struct {
	ID            string `db:"tconst" json:"id"`
	Name          string `db:"title_name" json:"name"`
	OverlapGenres int    `db:"overlap_genres" json:"overlapGenres"`
}

// ToPreview projects a title row to its list shape.
func (t Title) ToPreview() TitlePreview {
	return TitlePreview{
		ID:          t.ID,
		Name:        t.Name,
		MediaType:   t.MediaType,
		AvgRating:   t.AvgRating,
		ReleaseDate: formatDate(t.ReleaseDate),
		Poster:      posterURL(t.Poster),
		Plot:        t.Plot,
	}
}

// ToFull projects a title row and its genres to the detail shape.
func (t Title) ToFull(genres []Genre) TitleFull {
	if genres == nil {
		genres = make([]Genre, 0)
	}
	return TitleFull{
		ID:          t.ID,
		Name:        t.Name,
		MediaType:   t.MediaType,
		AvgRating:   t.AvgRating,
		NumVotes:    t.NumVotes,
		ReleaseDate: formatDate(t.ReleaseDate),
		Adult:       t.IsAdult,
		StartYear:   t.StartYear,
		EndYear:     t.EndYear,
		Runtime:     t.Runtime,
		Poster:      posterURL(t.Poster),
		Plot:        t.Plot,
		Genres:      genres,
	}
}

// Previews projects a slice of rows, never returning nil.
func Previews(titles []Title) []TitlePreview {
	out := make([]TitlePreview, 0, len(titles))
	for _, t := range titles {
		out = append(out, t.ToPreview())
	}
	return out
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(time.DateOnly)
}

func posterURL(p string) string {
	if strings.HasPrefix(p, "/") {
		return TMDBImageBaseW500 + p
	}
	return p
}
