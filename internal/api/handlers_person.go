package api

import (
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

// PersonHandler contains the dependencies for the person HTTP handlers. The
// movie store is needed to derive the list of movie titles for the person
// detail view.
type PersonHandler struct {
	people    store.PersonStore
	movies    store.MovieStore
	logger    *slog.Logger
	validator *validator.Validate
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(people store.PersonStore, movies store.MovieStore, logger *slog.Logger, validator *validator.Validate) *PersonHandler {
	return &PersonHandler{
		people:    people,
		movies:    movies,
		logger:    logger,
		validator: validator,
	}
}

// personListData is the payload of the people list endpoint.
type personListData struct {
	People []domain.PersonSummary `json:"people"`
	Count  int                    `json:"count"`
}

// ListPeople returns one page of people plus the total count.
// GET /api/people?pageIndex=0&pageSize=10
func (h *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	h.logger.InfoContext(ctx, "ListPeople request received", slog.Int("pageIndex", params.PageIndex), slog.Int("pageSize", params.PageSize))

	people, totalCount, err := h.people.List(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list people from store", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	summaries := make([]domain.PersonSummary, 0, len(people))
	for _, person := range people {
		summaries = append(summaries, domain.NewPersonSummary(person))
	}
	respondSuccess(h.logger, w, r, http.StatusOK, msgSuccess, personListData{People: summaries, Count: totalCount})
}

// GetPersonByID returns the detail projection of one person, including the
// derived titles of the movies they appear in.
// GET /api/people/{personId}
func (h *PersonHandler) GetPersonByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, err := strconv.ParseInt(mux.Vars(r)["personId"], 10, 64)
	if err != nil || personID <= 0 {
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidPersonRecord)
		return
	}

	person, err := h.people.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			respondError(h.logger, w, r, http.StatusNotFound, msgRecordNotExist)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get person from store", slog.Int64("personID", personID), slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	titles, err := h.movies.TitlesByActor(ctx, personID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load movie titles for person", slog.Int64("personID", personID), slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}
	respondSuccess(h.logger, w, r, http.StatusOK, msgSuccess, domain.NewPersonDetailView(person, titles))
}

// SearchPeople returns every person whose name contains the search text,
// matched case-insensitively, unpaginated.
// GET /api/people/search/{text}
func (h *PersonHandler) SearchPeople(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	text := mux.Vars(r)["text"]
	h.logger.InfoContext(ctx, "SearchPeople request received", slog.String("text", text))

	people, err := h.people.Search(ctx, text)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to search people in store", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	results := make([]domain.PersonSearchResult, 0, len(people))
	for _, person := range people {
		results = append(results, domain.NewPersonSearchResult(person))
	}
	respondSuccess(h.logger, w, r, http.StatusOK, msgSuccess, results)
}

// CreatePerson validates and persists a new person.
// POST /api/people
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode person creation request body", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Person creation request validation failed", slog.String("error", err.Error()))
		respondValidationError(h.logger, w, r, err)
		return
	}

	person := &domain.Person{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
	}
	if err := h.people.Create(ctx, person); err != nil {
		h.logger.ErrorContext(ctx, "Failed to create person in store", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}
	h.logger.InfoContext(ctx, "Person created", slog.Int64("personID", person.ID))
	respondSuccess(h.logger, w, r, http.StatusCreated, msgSuccess, domain.NewPersonSummary(person))
}

// UpdatePerson fully overwrites an existing person with the submitted
// fields.
// PUT /api/people
func (h *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode person update request body", slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Person update request validation failed", slog.String("error", err.Error()))
		respondValidationError(h.logger, w, r, err)
		return
	}
	if req.ID <= 0 {
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidPersonRecord)
		return
	}

	person := &domain.Person{
		ID:          req.ID,
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
	}
	if err := h.people.Update(ctx, person); err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			respondError(h.logger, w, r, http.StatusNotFound, msgInvalidPersonRecord)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update person in store", slog.Int64("personID", person.ID), slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}
	h.logger.InfoContext(ctx, "Person updated", slog.Int64("personID", person.ID))
	respondSuccess(h.logger, w, r, http.StatusOK, msgUpdated, domain.NewPersonSummary(person))
}

// DeletePerson removes a person; their cast memberships are cascade-removed.
// DELETE /api/people/{personId}
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, err := strconv.ParseInt(mux.Vars(r)["personId"], 10, 64)
	if err != nil || personID <= 0 {
		respondError(h.logger, w, r, http.StatusBadRequest, msgInvalidPersonRecord)
		return
	}

	if err := h.people.Delete(ctx, personID); err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			respondError(h.logger, w, r, http.StatusNotFound, msgInvalidPersonRecord)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete person from store", slog.Int64("personID", personID), slog.String("error", err.Error()))
		respondError(h.logger, w, r, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}
	h.logger.InfoContext(ctx, "Person deleted", slog.Int64("personID", personID))
	respondSuccess(h.logger, w, r, http.StatusOK, msgSuccess, nil)
}
