package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movieDetailData struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	CoverImage  string `json:"coverImage"`
	Actors      []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"actors"`
}

func actorIDs(detail movieDetailData) []int64 {
	ids := make([]int64, 0, len(detail.Actors))
	for _, a := range detail.Actors {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestCreateMovieWithCast(t *testing.T) {
	ts := newTestServer(t)
	dob := time.Date(1977, 9, 25, 0, 0, 0, 0, time.UTC)
	hardyID := ts.createPerson(t, "Tom Hardy", dob)

	code, envelope := ts.do(t, http.MethodPost, "/api/movies", map[string]interface{}{
		"title":    "Venom",
		"language": "English",
		"actors":   []int64{hardyID},
	})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, envelope.Status)
	assert.Equal(t, "Created successfully", envelope.Message)

	var detail movieDetailData
	decodeData(t, envelope, &detail)
	assert.Equal(t, "Venom", detail.Title)
	require.Len(t, detail.Actors, 1)
	assert.Equal(t, hardyID, detail.Actors[0].ID)
	assert.Equal(t, "Tom Hardy", detail.Actors[0].Name)
}

func TestCreateMovieDuplicateActorIDs(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createPerson(t, "Solo", time.Now().UTC())

	code, envelope := ts.do(t, http.MethodPost, "/api/movies", map[string]interface{}{
		"title":    "Twice Listed",
		"language": "English",
		"actors":   []int64{id, id},
	})
	require.Equal(t, http.StatusCreated, code)

	var detail movieDetailData
	decodeData(t, envelope, &detail)
	assert.Equal(t, []int64{id}, actorIDs(detail))
}

func TestCreateMovieUnknownActor(t *testing.T) {
	ts := newTestServer(t)

	code, envelope := ts.do(t, http.MethodPost, "/api/movies", map[string]interface{}{
		"title":    "Ghost Cast",
		"language": "English",
		"actors":   []int64{9999},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, envelope.Status)
	assert.Equal(t, "Invalid Actor assigned", envelope.Message)

	// No movie was persisted.
	code, envelope = ts.do(t, http.MethodGet, "/api/movies", nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Count int `json:"count"`
	}
	decodeData(t, envelope, &list)
	assert.Zero(t, list.Count)
}

func TestCreateMovieValidation(t *testing.T) {
	ts := newTestServer(t)

	code, envelope := ts.do(t, http.MethodPost, "/api/movies", map[string]interface{}{
		"description": "missing title and language",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, envelope.Status)
	assert.Equal(t, "Validation failed", envelope.Message)

	var details map[string]string
	decodeData(t, envelope, &details)
	assert.Contains(t, details, "Title")
	assert.Contains(t, details, "Language")
}

func TestGetMovieByID(t *testing.T) {
	ts := newTestServer(t)
	movieID := ts.createMovie(t, "Fetch Me", nil)

	code, envelope := ts.do(t, http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Success", envelope.Message)

	var detail movieDetailData
	decodeData(t, envelope, &detail)
	assert.Equal(t, movieID, detail.ID)
	assert.Equal(t, "Fetch Me", detail.Title)
	assert.NotNil(t, detail.Actors)
}

func TestGetMovieNotFound(t *testing.T) {
	ts := newTestServer(t)

	code, envelope := ts.do(t, http.MethodGet, "/api/movies/42", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, envelope.Status)
	assert.Equal(t, "Record Not Exist", envelope.Message)
}

func TestGetMovieInvalidID(t *testing.T) {
	ts := newTestServer(t)

	code, envelope := ts.do(t, http.MethodGet, "/api/movies/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid Movie Record", envelope.Message)
}

func TestUpdateMovieReconcilesCast(t *testing.T) {
	ts := newTestServer(t)
	keepID := ts.createPerson(t, "Keep", time.Now().UTC())
	dropID := ts.createPerson(t, "Drop", time.Now().UTC())
	addID := ts.createPerson(t, "Add", time.Now().UTC())
	movieID := ts.createMovie(t, "Shifting Cast", []int64{keepID, dropID})

	code, envelope := ts.do(t, http.MethodPut, "/api/movies", map[string]interface{}{
		"id":       movieID,
		"title":    "Shifting Cast",
		"language": "English",
		"actors":   []int64{keepID, addID},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Updated successfully", envelope.Message)

	var detail movieDetailData
	decodeData(t, envelope, &detail)
	assert.ElementsMatch(t, []int64{keepID, addID}, actorIDs(detail))

	// The re-fetched record agrees with the update response.
	code, envelope = ts.do(t, http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), nil)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, envelope, &detail)
	assert.ElementsMatch(t, []int64{keepID, addID}, actorIDs(detail))
}

func TestUpdateMovieIdempotentCast(t *testing.T) {
	ts := newTestServer(t)
	a := ts.createPerson(t, "A", time.Now().UTC())
	b := ts.createPerson(t, "B", time.Now().UTC())
	movieID := ts.createMovie(t, "Stable", []int64{a})

	update := map[string]interface{}{
		"id":       movieID,
		"title":    "Stable",
		"language": "English",
		"actors":   []int64{a, b},
	}
	for i := 0; i < 2; i++ {
		code, _ := ts.do(t, http.MethodPut, "/api/movies", update)
		require.Equal(t, http.StatusOK, code)
	}

	code, envelope := ts.do(t, http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), nil)
	require.Equal(t, http.StatusOK, code)
	var detail movieDetailData
	decodeData(t, envelope, &detail)
	assert.ElementsMatch(t, []int64{a, b}, actorIDs(detail))
}

func TestUpdateMovieEmptiesCast(t *testing.T) {
	ts := newTestServer(t)
	hardyID := ts.createPerson(t, "Tom Hardy", time.Now().UTC())
	movieID := ts.createMovie(t, "Venom", []int64{hardyID})

	code, envelope := ts.do(t, http.MethodPut, "/api/movies", map[string]interface{}{
		"id":       movieID,
		"title":    "Venom",
		"language": "English",
		"actors":   []int64{},
	})
	require.Equal(t, http.StatusOK, code)

	var detail movieDetailData
	decodeData(t, envelope, &detail)
	assert.Empty(t, detail.Actors)

	code, envelope = ts.do(t, http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), nil)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, envelope, &detail)
	assert.Empty(t, detail.Actors)
}

func TestUpdateMovieScalarOverwrite(t *testing.T) {
	ts := newTestServer(t)
	movieID := ts.createMovie(t, "Before", nil)

	code, envelope := ts.do(t, http.MethodPut, "/api/movies", map[string]interface{}{
		"id":          movieID,
		"title":       "After",
		"description": "now described",
		"language":    "French",
		"coverImage":  "https://img.example/after.jpg",
		"actors":      []int64{},
	})
	require.Equal(t, http.StatusOK, code)

	var detail movieDetailData
	decodeData(t, envelope, &detail)
	assert.Equal(t, "After", detail.Title)
	assert.Equal(t, "now described", detail.Description)
	assert.Equal(t, "French", detail.Language)
	assert.Equal(t, "https://img.example/after.jpg", detail.CoverImage)
}

func TestUpdateMovieUnknownActorLeavesRecordUntouched(t *testing.T) {
	ts := newTestServer(t)
	movieID := ts.createMovie(t, "Untouched", nil)

	code, envelope := ts.do(t, http.MethodPut, "/api/movies", map[string]interface{}{
		"id":       movieID,
		"title":    "Should Not Apply",
		"language": "English",
		"actors":   []int64{12345},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid Actor assigned", envelope.Message)

	code, envelope = ts.do(t, http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), nil)
	require.Equal(t, http.StatusOK, code)
	var detail movieDetailData
	decodeData(t, envelope, &detail)
	assert.Equal(t, "Untouched", detail.Title)
}

func TestUpdateMovieMissingID(t *testing.T) {
	ts := newTestServer(t)

	code, envelope := ts.do(t, http.MethodPut, "/api/movies", map[string]interface{}{
		"title":    "No ID",
		"language": "English",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid Movie Record", envelope.Message)
}

func TestUpdateMovieNotFound(t *testing.T) {
	ts := newTestServer(t)

	code, envelope := ts.do(t, http.MethodPut, "/api/movies", map[string]interface{}{
		"id":       777,
		"title":    "Phantom",
		"language": "English",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Invalid Movie Record", envelope.Message)
}

func TestListMoviesPagination(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 5; i++ {
		ts.createMovie(t, fmt.Sprintf("Movie %d", i+1), nil)
	}

	code, envelope := ts.do(t, http.MethodGet, "/api/movies?pageIndex=1&pageSize=2", nil)
	require.Equal(t, http.StatusOK, code)

	var list struct {
		Movies []movieDetailData `json:"movies"`
		Count  int               `json:"count"`
	}
	decodeData(t, envelope, &list)
	assert.Equal(t, 5, list.Count)
	require.Len(t, list.Movies, 2)
	assert.Equal(t, "Movie 3", list.Movies[0].Title)
	assert.Equal(t, "Movie 4", list.Movies[1].Title)
}

func TestListMoviesDefaults(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 12; i++ {
		ts.createMovie(t, fmt.Sprintf("Movie %d", i+1), nil)
	}

	code, envelope := ts.do(t, http.MethodGet, "/api/movies", nil)
	require.Equal(t, http.StatusOK, code)

	var list struct {
		Movies []movieDetailData `json:"movies"`
		Count  int               `json:"count"`
	}
	decodeData(t, envelope, &list)
	assert.Equal(t, 12, list.Count)
	assert.Len(t, list.Movies, 10)
	assert.Equal(t, "Movie 1", list.Movies[0].Title)
}
