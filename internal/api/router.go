package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP routing table for the catalog service.
func NewRouter(movies *MovieHandler, people *PersonHandler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogging(logger))

	apiRouter := router.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondSuccess(logger, w, r, http.StatusOK, msgSuccess, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	moviesRouter := apiRouter.PathPrefix("/movies").Subrouter()
	moviesRouter.HandleFunc("", movies.ListMovies).Methods(http.MethodGet)
	moviesRouter.HandleFunc("", movies.CreateMovie).Methods(http.MethodPost)
	moviesRouter.HandleFunc("", movies.UpdateMovie).Methods(http.MethodPut)
	moviesRouter.HandleFunc("/{movieId}", movies.GetMovieByID).Methods(http.MethodGet)

	peopleRouter := apiRouter.PathPrefix("/people").Subrouter()
	peopleRouter.HandleFunc("", people.ListPeople).Methods(http.MethodGet)
	peopleRouter.HandleFunc("", people.CreatePerson).Methods(http.MethodPost)
	peopleRouter.HandleFunc("", people.UpdatePerson).Methods(http.MethodPut)
	// Register the search route before the id route so "search" never binds
	// as a personId.
	peopleRouter.HandleFunc("/search/{text}", people.SearchPeople).Methods(http.MethodGet)
	peopleRouter.HandleFunc("/{personId}", people.GetPersonByID).Methods(http.MethodGet)
	peopleRouter.HandleFunc("/{personId}", people.DeletePerson).Methods(http.MethodDelete)

	return router
}
