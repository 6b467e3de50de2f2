package handler

import "github.com/gofiber/fiber/v3"

// Handlers bundles the route handlers mounted by RegisterRoutes.
type Handlers struct {
	Titles      *TitleHandler
	Genres      *GenreHandler
	Individuals *IndividualHandler
	Auth        *AuthHandler
	Ratings     *RatingHandler
	TMDB        *TMDBHandler
}

// RegisterRoutes mounts every API route on api. requireAuth guards the
// rating routes; authMiddleware, if any, runs in front of sign-up and login.
func RegisterRoutes(api fiber.Router, h Handlers, requireAuth fiber.Handler, authMiddleware ...fiber.Handler) {
	api.Get("/health", Health)

	titles := api.Group("/titles")
	titles.Get("/", h.Titles.ListTitles)
	titles.Get("/featured", h.Titles.FeaturedTitle)
	titles.Get("/top/:type", h.Titles.TopTitles)
	titles.Get("/:id", h.Titles.GetTitle)
	titles.Get("/:id/similar", h.Titles.SimilarTitles)
	titles.Get("/:id/individuals", h.Titles.TitleIndividuals)
	titles.Get("/:id/ratings", h.Titles.TitleRatings)
	titles.Get("/:id/episodes", h.Titles.TitleEpisodes)

	genres := api.Group("/genres")
	genres.Get("/", h.Genres.ListGenres)
	genres.Get("/:id", h.Genres.GetGenre)
	genres.Get("/:id/titles", h.Genres.GenreTitles)

	individuals := api.Group("/individuals")
	individuals.Get("/", h.Individuals.ListIndividuals)
	individuals.Get("/popular", h.Individuals.PopularIndividuals)
	individuals.Get("/co-actors", h.Individuals.CoActors)
	individuals.Get("/credits", h.Individuals.FindCredits)
	individuals.Get("/:id", h.Individuals.GetIndividual)
	individuals.Get("/:id/titles", h.Individuals.IndividualTitles)
	individuals.Get("/:id/popular-actors", h.Individuals.PopularActors)

	authGroup := api.Group("/auth")
	for _, m := range authMiddleware {
		authGroup.Use(m)
	}
	authGroup.Post("/signup", h.Auth.Signup)
	authGroup.Post("/login", h.Auth.Login)

	ratings := api.Group("/ratings", requireAuth)
	ratings.Get("/", h.Ratings.MyRatings)
	ratings.Post("/", h.Ratings.Rate)
	ratings.Delete("/:titleId", h.Ratings.DeleteRating)

	if h.TMDB != nil {
		tmdbGroup := api.Group("/tmdb")
		tmdbGroup.Get("/person", h.TMDB.SearchPerson)
		tmdbGroup.Get("/person/:id", h.TMDB.PersonDetails)
		tmdbGroup.Get("/movie/posters", h.TMDB.MoviePosters)
		tmdbGroup.Get("/movie/:id", h.TMDB.MovieDetails)
	}
}
