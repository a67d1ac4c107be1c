package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-service/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// testEnvelope mirrors Envelope with the payload kept raw so each test can
// decode it into the expected shape.
type testEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *mux.Router
	movies *store.MemoryMovieStore
	people *store.MemoryPersonStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	movies, people := store.NewMemoryStores()
	movieHandler := NewMovieHandler(movies, people, logger, validator.New())
	personHandler := NewPersonHandler(people, movies, logger, validator.New())
	return &testServer{
		router: NewRouter(movieHandler, personHandler, logger),
		movies: movies,
		people: people,
	}
}

// do runs a request through the router and decodes the envelope.
func (ts *testServer) do(t *testing.T, method, target string, body interface{}) (int, testEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var envelope testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec.Code, envelope
}

func decodeData(t *testing.T, envelope testEnvelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

// createPerson creates a person through the HTTP surface and returns the
// assigned id.
func (ts *testServer) createPerson(t *testing.T, name string, dob time.Time) int64 {
	t.Helper()
	code, envelope := ts.do(t, http.MethodPost, "/api/people", map[string]interface{}{
		"name":        name,
		"dateOfBirth": dob,
	})
	require.Equal(t, http.StatusCreated, code)
	require.True(t, envelope.Status)

	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, envelope, &created)
	require.Positive(t, created.ID)
	return created.ID
}

// createMovie creates a movie through the HTTP surface and returns the
// assigned id.
func (ts *testServer) createMovie(t *testing.T, title string, actorIDs []int64) int64 {
	t.Helper()
	code, envelope := ts.do(t, http.MethodPost, "/api/movies", map[string]interface{}{
		"title":       title,
		"language":    "English",
		"releaseDate": time.Date(2018, 10, 5, 0, 0, 0, 0, time.UTC),
		"actors":      actorIDs,
	})
	require.Equal(t, http.StatusCreated, code)
	require.True(t, envelope.Status)

	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, envelope, &created)
	require.Positive(t, created.ID)
	return created.ID
}
