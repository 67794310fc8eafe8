package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/store"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/workflow"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

func testSession(t *testing.T) *SessionStore {
	t.Helper()
	session, err := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return session
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, _ := json.Marshal(data)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      "success",
		"status_code": status,
		"data":        json.RawMessage(payload),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      "error",
		"status_code": status,
		"error":       msg,
	})
}

func TestLoginStashesAndOverwritesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Echo the password back as the token so each login is
		// distinguishable.
		writeEnvelope(w, http.StatusOK, map[string]string{"token": req.Password})
	}))
	defer srv.Close()

	session := testSession(t)
	c := New(srv.URL, WithSessionStore(session))

	token, err := c.Login(context.Background(), "alice", "first-secret")
	require.NoError(t, err)
	assert.Equal(t, "first-secret", token)
	assert.Equal(t, "first-secret", session.Token())
	assert.Equal(t, "alice", session.Username())

	// A second login fully overwrites the stored session.
	_, err = c.Login(context.Background(), "bob", "second-secret")
	require.NoError(t, err)
	assert.Equal(t, "second-secret", session.Token())
	assert.Equal(t, "bob", session.Username())
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, []model.SolutionReview{})
	}))
	defer srv.Close()

	session := testSession(t)
	require.NoError(t, session.Save("tok-123", "alice"))
	c := New(srv.URL, WithSessionStore(session))

	_, err := c.GetAllSolutionReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestGetReviewByIDEmptyIDNeverHitsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetSolutionReviewByID(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestGetReviewByIDNotFoundIsAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "review not found")
	}))
	defer srv.Close()

	c := New(srv.URL)
	review, err := c.GetSolutionReviewByID(context.Background(), uuid.NewString())
	require.NoError(t, err, "a 404 is absence, not failure")
	assert.Nil(t, review)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/reviews":
			var req struct {
				SystemCode string                 `json:"system_code"`
				Overview   model.SolutionOverview `json:"solution_overview"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeEnvelope(w, http.StatusCreated, model.SolutionReview{
				ID:            id,
				SystemCode:    req.SystemCode,
				DocumentState: model.StateDraft,
				Overview:      req.Overview,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/reviews/"+id.String():
			writeEnvelope(w, http.StatusOK, model.SolutionReview{
				ID:            id,
				SystemCode:    "SYS-001",
				DocumentState: model.StateDraft,
			})
		default:
			writeError(w, http.StatusNotFound, "no route")
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	created, err := c.CreateSolutionReview(context.Background(), store.CreateReviewInput{
		SystemCode: "SYS-001",
		Overview:   model.SolutionOverview{SolutionName: "Payments"},
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, model.StateDraft, created.DocumentState)

	fetched, err := c.GetSolutionReviewByID(context.Background(), id.String())
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, id, fetched.ID)
}

func TestDeleteNotFoundReturnsFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "review not found")
	}))
	defer srv.Close()

	c := New(srv.URL)
	ok, err := c.DeleteSolutionReview(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransitionSendsWireName(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/reviews/"+id.String()+"/transition", r.URL.Path)
		var req struct {
			Transition string `json:"transition"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "APPROVE", req.Transition)
		writeEnvelope(w, http.StatusOK, model.SolutionReview{
			ID:            id,
			DocumentState: model.StateApproved,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	review, err := c.TransitionDocumentState(context.Background(), id.String(), workflow.TransitionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StateApproved, review.DocumentState)
}

func TestServerErrorMapsToKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "transition rejected")
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetAllSolutionReviews(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "transition rejected")
}

func TestTransportFailureIsNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL)
	_, err := c.GetAllSolutionReviews(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNetwork, apperror.KindOf(err))
	assert.True(t, apperror.Retryable(err))
}
