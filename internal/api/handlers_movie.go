package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// MovieHandler contains the dependencies for the movie HTTP handlers. It
// needs the person store as well, because movie create/update must resolve
// requested actor ids before anything is persisted.
type MovieHandler struct {
	movies    store.MovieStore
	people    store.PersonStore
	logger    *slog.Logger
	validator *validator.Validate
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movies store.MovieStore, people store.PersonStore, logger *slog.Logger, validator *validator.Validate) *MovieHandler {
	return &MovieHandler{
		movies:    movies,
		people:    people,
		logger:    logger,
		validator: validator,
	}
}

// movieListData is the payload of the movie list endpoint.
type movieListData struct {
	Movies []domain.MovieListView `json:"movies"`
	Count  int                    `json:"count"`
}

// ListMovies returns one page of movies plus the total count.
// GET /api/movies?pageIndex=0&pageSize=10
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	h.logger.InfoContext(ctx, "ListMovies request received", slog.Int("pageIndex", params.PageIndex), slog.Int("pageSize", params.PageSize))

	movies, totalCount, err := h.movies.List(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list movies from store", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	views := make([]domain.MovieListView, 0, len(movies))
	for _, movie := range movies {
		views = append(views, domain.NewMovieListView(movie))
	}
	respondSuccess(h.logger, w, r, http.StatusOK, msgSuccess, movieListData{Movies: views, Count: totalCount})
}

// GetMovieByID returns the detail projection of one movie.
// GET /api/movies/{movieId}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID, err := strconv.ParseInt(mux.Vars(r)["movieId"], 10, 64)
	if err != nil || movieID <= 0 {
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidMovieRecord)
		return
	}

	movie, err := h.movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			respondError(h.logger, w, r, http.StatusNotFound, msgRecordNotExist)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get movie from store", slog.Int64("movieID", movieID), slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}
	respondSuccess(h.logger, w, r, http.StatusOK, msgSuccess, domain.NewMovieDetailView(movie))
}

// CreateMovie validates the request, resolves the requested actor ids and
// persists a new movie with its cast.
// POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode movie creation request body", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Movie creation request validation failed", slog.String("error", err.Error()))
		respondValidationError(h.logger, w, r, err)
		return
	}

	actors, ok, err := h.resolveActors(ctx, req.Actors)
	if err != nil {
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}
	if !ok {
		h.logger.WarnContext(ctx, "Movie creation references nonexistent actors", slog.Any("requestedActors", req.Actors))
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidActor)
		return
	}

	movie := &domain.Movie{
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		ReleaseDate: req.ReleaseDate,
		CoverImage:  req.CoverImage,
		Actors:      actors,
	}

	if err := h.movies.Create(ctx, movie); err != nil {
		h.logger.ErrorContext(ctx, "Failed to create movie in store", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}
	h.logger.InfoContext(ctx, "Movie created", slog.Int64("movieID", movie.ID), slog.Int("castSize", len(movie.Actors)))
	respondSuccess(h.logger, w, r, http.StatusCreated, msgCreated, domain.NewMovieDetailView(movie))
}

// UpdateMovie overwrites a movie's scalar fields and reconciles its cast
// against the requested actor-id set. Every requested id is checked for
// existence before any mutation happens.
// PUT /api/movies
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode movie update request body", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Movie update request validation failed", slog.String("error", err.Error()))
		respondValidationError(h.logger, w, r, err)
		return
	}
	if req.ID <= 0 {
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidMovieRecord)
		return
	}

	actors, ok, err := h.resolveActors(ctx, req.Actors)
	if err != nil {
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}
	if !ok {
		h.logger.WarnContext(ctx, "Movie update references nonexistent actors", slog.Int64("movieID", req.ID), slog.Any("requestedActors", req.Actors))
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidActor)
		return
	}

	movie, err := h.movies.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			respondError(h.logger, w, r, http.StatusNotFound, msgInvalidMovieRecord)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to fetch movie for update", slog.Int64("movieID", req.ID), slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	delta := domain.ReconcileCast(movie.Actors, actors)

	movie.Title = req.Title
	movie.Description = req.Description
	movie.Language = req.Language
	movie.ReleaseDate = req.ReleaseDate
	movie.CoverImage = req.CoverImage

	if err := h.movies.Update(ctx, movie, delta); err != nil {
		switch {
		case errors.Is(err, store.ErrMovieNotFound):
			respondError(h.logger, w, r, http.StatusNotFound, msgInvalidMovieRecord)
		case errors.Is(err, store.ErrPersonNotFound):
			respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidActor)
		default:
			h.logger.ErrorContext(ctx, "Failed to update movie in store", slog.Int64("movieID", movie.ID), slog.String("error", err.Error()))
			respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		}
		return
	}

	movie.Actors = delta.Apply(movie.Actors)
	h.logger.InfoContext(ctx, "Movie updated",
		slog.Int64("movieID", movie.ID),
		slog.Int("castAdded", len(delta.ToAdd)),
		slog.Int("castRemoved", len(delta.ToRemove)))
	respondSuccess(h.logger, w, r, http.StatusOK, msgUpdated, domain.NewMovieDetailView(movie))
}

// resolveActors resolves the requested person ids against the store. The
// boolean result is false when at least one distinct id matched no record;
// in that case nothing may be persisted.
func (h *MovieHandler) resolveActors(ctx context.Context, ids []int64) ([]domain.Person, bool, error) {
	distinct := domain.DistinctIDs(ids)
	actors, err := h.people.GetByIDs(ctx, distinct)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to resolve requested actors", slog.String("error", err.Error()))
		return nil, false, err
	}
	return actors, len(actors) == len(distinct), nil
}
