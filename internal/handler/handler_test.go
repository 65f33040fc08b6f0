package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pec-events/portal/internal/auth"
	"github.com/pec-events/portal/internal/config"
	"github.com/pec-events/portal/internal/handler"
	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/service"
	"github.com/pec-events/portal/internal/store/memory"
)

const testPassword = "pw"

type fixture struct {
	router chi.Router
	store  *memory.Store
	token  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.New()
	require.NoError(t, memory.Seed(s, testPassword))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokens(config.AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 15})
	portal := service.NewPortal(s, tokens, nil, logger)
	h := handler.New(portal, logger)
	router := handler.NewRouter(h, tokens, logger)

	token, err := tokens.Generate(&model.User{ID: "admin1", Role: model.RoleWebsiteAdmin})
	require.NoError(t, err)

	return &fixture{router: router, store: s, token: token}
}

func (f *fixture) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	t.Run("Success", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/auth/login", model.LoginRequest{
			Email:    "alice@pec.ac.in",
			Password: testPassword,
		}, false)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[model.LoginResponse](t, w)
		assert.Equal(t, "student1", resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/auth/login", model.LoginRequest{
			Email:    "alice@pec.ac.in",
			Password: "wrong",
		}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/events", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/events", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEvents(t *testing.T) {
	f := newFixture(t)

	t.Run("List", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/events", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		events := decode[[]model.Event](t, w)
		assert.Len(t, events, 5)
	})

	t.Run("Get", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/events/event2", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		event := decode[model.Event](t, w)
		assert.Equal(t, "100m Sprint", event.Name)
		assert.Equal(t, 8, event.MaxParticipants)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/events/event99", nil, true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRegister(t *testing.T) {
	t.Run("NormalEvent", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodPost, "/events/event1/register", model.RegisterRequest{
			StudentID: "student3",
			EventType: model.EventNormal,
		}, true)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decode[model.RegisterResponse](t, w)
		assert.True(t, resp.Created)
		require.NotNil(t, resp.Registration)
		assert.Equal(t, model.StatusRegistered, resp.Registration.Status)
	})

	t.Run("PermissionRequiredEvent", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodPost, "/events/event4/register", model.RegisterRequest{
			StudentID: "student4",
			EventType: model.EventPermissionRequired,
		}, true)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decode[model.RegisterResponse](t, w)
		assert.Equal(t, model.StatusPending, resp.Registration.Status)
	})

	t.Run("EventFull", func(t *testing.T) {
		f := newFixture(t)
		// The sprint seeds with one Registered entry and caps at 8.
		for i := 0; i < 7; i++ {
			w := f.do(t, http.MethodPost, "/events/event2/register", model.RegisterRequest{
				StudentID: "student3",
				EventType: model.EventNormal,
			}, true)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		w := f.do(t, http.MethodPost, "/events/event2/register", model.RegisterRequest{
			StudentID: "student4",
			EventType: model.EventNormal,
		}, true)
		require.Equal(t, http.StatusConflict, w.Code)

		resp := decode[model.RegisterResponse](t, w)
		assert.False(t, resp.Created)
		assert.Nil(t, resp.Registration)
	})

	t.Run("UnknownEvent", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodPost, "/events/event99/register", model.RegisterRequest{
			StudentID: "student1",
			EventType: model.EventNormal,
		}, true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidEventType", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodPost, "/events/event1/register", map[string]string{
			"studentId": "student1",
			"eventType": "Magic",
		}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegistrationStatus(t *testing.T) {
	f := newFixture(t)

	t.Run("Found", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/events/event1/status?studentId=student1", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode[map[string]*model.RegistrationStatus](t, w)
		require.NotNil(t, body["status"])
		assert.Equal(t, model.StatusRegistered, *body["status"])
	})

	t.Run("None", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/events/event1/status?studentId=student5", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode[map[string]*model.RegistrationStatus](t, w)
		assert.Nil(t, body["status"])
	})

	t.Run("MissingStudentID", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/events/event1/status", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDecideRegistration(t *testing.T) {
	f := newFixture(t)

	t.Run("Approve", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/registrations/reg4/status", model.DecisionRequest{Approve: true}, true)
		assert.Equal(t, http.StatusNoContent, w.Code)

		reg, err := f.store.Registrations().GetByID(context.Background(), "reg4")
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, reg.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/registrations/reg99/status", model.DecisionRequest{Approve: true}, true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPendingRequests(t *testing.T) {
	f := newFixture(t)

	t.Run("ForHouse", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/houses/Red/pending", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		requests := decode[[]model.PendingRequest](t, w)
		require.Len(t, requests, 1)
		assert.Equal(t, "reg4", requests[0].ID)
	})

	t.Run("UnknownHouse", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/houses/Purple/pending", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStudentRegistrations(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/students/student1/registrations", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	regs := decode[[]model.StudentRegistration](t, w)
	require.Len(t, regs, 2)
	for _, reg := range regs {
		assert.NotNil(t, reg.Event)
	}
}

func TestEventParticipantsAndScores(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/events/event1/participants", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	participants := decode[[]model.EventParticipant](t, w)
	assert.Len(t, participants, 2)

	w = f.do(t, http.MethodPost, "/events/event1/scores", model.SubmitScoresRequest{
		Updates: []model.ScoreUpdate{
			{RegistrationID: "reg1", Score: "91"},
			{RegistrationID: "reg6", Score: "oops"},
		},
	}, true)
	require.Equal(t, http.StatusNoContent, w.Code)

	reg1, err := f.store.Registrations().GetByID(context.Background(), "reg1")
	require.NoError(t, err)
	assert.Equal(t, 91, *reg1.Score)

	reg6, err := f.store.Registrations().GetByID(context.Background(), "reg6")
	require.NoError(t, err)
	assert.Equal(t, 78, *reg6.Score, "non-numeric entry must be dropped")
}

func TestJudgeEvents(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/judges/judge1/events", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]model.Event](t, w)
	assert.Len(t, events, 3)
}

func TestUsers(t *testing.T) {
	f := newFixture(t)

	t.Run("List", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/users", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		users := decode[[]model.User](t, w)
		assert.Len(t, users, 10)
	})

	t.Run("UpdatePicture", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/users/student1/picture", model.UpdatePictureRequest{
			ImageURL: "https://example.com/alice.png",
		}, true)
		require.Equal(t, http.StatusOK, w.Code)
		user := decode[model.User](t, w)
		assert.Equal(t, "https://example.com/alice.png", user.ProfilePictureURL)
	})

	t.Run("UpdatePictureNotFound", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/users/nobody/picture", model.UpdatePictureRequest{
			ImageURL: "https://example.com/x.png",
		}, true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t)

	t.Run("Default", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/leaderboard?year=2024", nil, true)
		require.Equal(t, http.StatusOK, w.Code)

		board := decode[model.Leaderboard](t, w)
		assert.Equal(t, 2024, board.Year)
		require.Len(t, board.Scores, 4)
		assert.Equal(t, model.HouseBlue, board.Scores[0].House)
		assert.Equal(t, 173, board.Scores[0].Score)
	})

	t.Run("BadYear", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/leaderboard?year=banana", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
