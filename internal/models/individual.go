package models

// Individual is a row of mdb.individual, optionally joined with the
// total-votes aggregate from mdb.individual_votes_view.
type Individual struct {
	ID         string   `db:"iconst"`
	Name       string   `db:"name"`
	BirthYear  *int     `db:"birth_year"`
	DeathYear  *int     `db:"death_year"`
	NameRating *float64 `db:"name_rating"`
	TotalVotes *int64   `db:"total_votes"`
}

// IndividualReference is the list projection of an individual.
type IndividualReference struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	TotalVotes *int64   `json:"totalVotes,omitempty"`
	NameRating *float64 `json:"nameRating,omitempty"`
	BirthYear  *int     `json:"birthYear,omitempty"`
	DeathYear  *int     `json:"deathYear,omitempty"`
}

// IndividualFull is the detail projection of an individual.
type IndividualFull struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	BirthYear  *int     `json:"birthYear"`
	DeathYear  *int     `json:"deathYear"`
	NameRating *float64 `json:"nameRating"`
}

// Contributor is an individual credited on a title.
type Contributor struct {
	ID           string `db:"iconst" json:"id"`
	Name         string `db:"name" json:"name"`
	Contribution string `db:"contribution" json:"contribution"`
	Priority     int    `db:"priority" json:"priority"`
	Detail       string `db:"detail" json:"detail,omitempty"`
}

// CoActor is one row returned by mdb.find_co_actors.
type CoActor struct {
	ID                 string `db:"iconst" json:"id"`
	Name               string `db:"primaryname" json:"name"`
	CollaborationCount int64  `db:"co_count" json:"collaborationCount"`
}

// NameMatch is one row returned by mdb.find_name.
type NameMatch struct {
	ID           string `db:"iconst" json:"id"`
	Name         string `db:"name" json:"name"`
	Contribution string `db:"contribution" json:"contribution"`
	TitleName    string `db:"title_name" json:"titleName"`
	Detail       string `db:"detail" json:"detail"`
	Genre        string `db:"genre" json:"genre"`
}

func (i Individual) ToReference() IndividualReference {
	return IndividualReference{
		ID:         i.ID,
		Name:       i.Name,
		TotalVotes: i.TotalVotes,
		NameRating: i.NameRating,
		BirthYear:  i.BirthYear,
		DeathYear:  i.DeathYear,
	}
}

func (i Individual) ToFull() IndividualFull {
	return IndividualFull{
		ID:         i.ID,
		Name:       i.Name,
		BirthYear:  i.BirthYear,
		DeathYear:  i.DeathYear,
		NameRating: i.NameRating,
	}
}

// References projects a slice of rows, never returning nil.
func References(individuals []Individual) []IndividualReference {
	out := make([]IndividualReference, 0, len(individuals))
	for _, i := range individuals {
		out = append(out, i.ToReference())
	}
	return out
}

// Fulls projects a slice of rows, never returning nil.
func Fulls(individuals []Individual) []IndividualFull {
	out := make([]IndividualFull, 0, len(individuals))
	for _, i := range individuals {
		out = append(out, i.ToFull())
	}
	return out
}
