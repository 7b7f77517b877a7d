package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/creditclimb/engine/internal/generation"
	"github.com/creditclimb/engine/internal/service"
	"github.com/creditclimb/engine/internal/service/session"
	"github.com/creditclimb/engine/internal/store"
	"github.com/creditclimb/engine/internal/task"
)

// brokenPreferenceStore reads fine but refuses writes, to exercise the
// optimistic-rollback failure surface.
type brokenPreferenceStore struct {
	inner     *store.MemoryPreferenceStore
	upsertErr error
}

func (s *brokenPreferenceStore) Get(ctx context.Context, userID uuid.UUID) (*domain.GuidancePreferences, error) {
	return s.inner.Get(ctx, userID)
}

func (s *brokenPreferenceStore) Upsert(ctx context.Context, prefs *domain.GuidancePreferences) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	return s.inner.Upsert(ctx, prefs)
}

type testServer struct {
	router    http.Handler
	scheduler *task.ManualScheduler
}

func newTestServer(t *testing.T, prefs store.PreferenceStore) *testServer {
	t.Helper()

	catalog, err := generation.LoadDefaultCatalog()
	require.NoError(t, err)

	if prefs == nil {
		prefs = store.NewMemoryPreferenceStore()
	}

	scheduler := task.NewManualScheduler()
	registry := service.NewRegistry(
		store.NewMemoryMasteryStore(),
		prefs,
		generation.NewGenerator(catalog, nil),
		nil,
		nil,
		scheduler,
		nil,
		nil,
	)

	router := NewRouter(
		NewGuidanceHandler(registry, nil, nil),
		NewPreferenceHandler(registry, nil),
		NewSessionHandler(registry, nil),
	)
	return &testServer{router: router, scheduler: scheduler}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func decideBody(overrides TelemetryRequest) DecideRequest {
	return DecideRequest{
		UI:        UIStateRequest{Intensity: "medium", Mode: "steady"},
		Telemetry: overrides,
	}
}

func TestDecideEndpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	t.Run("explicit request summons", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/guidance/decide",
			decideBody(TelemetryRequest{UserClickedGuideMe: true}))
		require.Equal(t, http.StatusOK, rec.Code)

		decision := decodeBody[domain.SummonDecision](t, rec)
		assert.True(t, decision.ShouldSummon)
		assert.Equal(t, domain.IntensityMedium, decision.Intensity)
		assert.Equal(t, domain.SummonReasonUserRequest, decision.Reason)
	})

	t.Run("quiet telemetry does not summon", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/guidance/decide", decideBody(TelemetryRequest{}))
		require.Equal(t, http.StatusOK, rec.Code)

		decision := decodeBody[domain.SummonDecision](t, rec)
		assert.False(t, decision.ShouldSummon)
	})

	t.Run("invalid intensity is rejected", func(t *testing.T) {
		body := DecideRequest{UI: UIStateRequest{Intensity: "extreme", Mode: "steady"}}
		rec := ts.do(t, http.MethodPost, "/guidance/decide", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/guidance/decide",
			bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGuidanceLifecycleEndpoints(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)
	userID := uuid.New()
	base := fmt.Sprintf("/users/%s/guidance", userID)

	// Overwhelming telemetry installs a trigger at low intensity.
	rec := ts.do(t, http.MethodPost, base+"/evaluate",
		decideBody(TelemetryRequest{RapidClickBursts: 4}))
	require.Equal(t, http.StatusOK, rec.Code)

	evaluated := decodeBody[EvaluateResponse](t, rec)
	assert.True(t, evaluated.Decision.ShouldSummon)
	assert.Equal(t, domain.IntensityLow, evaluated.Decision.Intensity)
	require.NotNil(t, evaluated.Trigger)
	assert.Equal(t, "calming", evaluated.Trigger.Emotion)

	// The trigger is visible until dismissed.
	rec = ts.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trigger := decodeBody[TriggerResponse](t, rec)
	assert.True(t, trigger.Active)
	require.NotNil(t, trigger.Trigger)
	assert.Equal(t, evaluated.Trigger.ID, trigger.Trigger.ID)

	rec = ts.do(t, http.MethodPost, base+"/dismiss", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trigger = decodeBody[TriggerResponse](t, rec)
	assert.False(t, trigger.Active)
	assert.Nil(t, trigger.Trigger)
}

func TestEvaluateRespectsSilentMode(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)
	userID := uuid.New()

	rec := ts.do(t, http.MethodPut, fmt.Sprintf("/users/%s/preferences", userID),
		PreferencesRequest{GuidanceMode: strPtr("silent")})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/users/%s/guidance/evaluate", userID),
		decideBody(TelemetryRequest{RapidClickBursts: 4}))
	require.Equal(t, http.StatusOK, rec.Code)

	evaluated := decodeBody[EvaluateResponse](t, rec)
	assert.True(t, evaluated.Decision.ShouldSummon, "the policy itself still decides to summon")
	assert.Nil(t, evaluated.Trigger, "silent mode suppresses the installed trigger")
}

func TestPreferenceEndpoints(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	base := fmt.Sprintf("/users/%s/preferences", userID)

	t.Run("get returns defaults for a new user", func(t *testing.T) {
		ts := newTestServer(t, nil)

		rec := ts.do(t, http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		prefs := decodeBody[domain.GuidancePreferences](t, rec)
		assert.Equal(t, domain.GuidanceModeFull, prefs.GuidanceMode)
		assert.False(t, prefs.OrientationCompleted)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		ts := newTestServer(t, nil)

		rec := ts.do(t, http.MethodPut, base, PreferencesRequest{VoiceEnabled: apiBoolPtr(false)})
		require.Equal(t, http.StatusOK, rec.Code)

		prefs := decodeBody[domain.GuidancePreferences](t, rec)
		assert.False(t, prefs.VoiceEnabled)
		assert.True(t, prefs.CaptionsEnabled)
		assert.Equal(t, domain.GuidanceModeFull, prefs.GuidanceMode)
	})

	t.Run("invalid mode is rejected", func(t *testing.T) {
		ts := newTestServer(t, nil)

		rec := ts.do(t, http.MethodPut, base, PreferencesRequest{GuidanceMode: strPtr("loud")})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("persistence failure surfaces as bad gateway", func(t *testing.T) {
		ts := newTestServer(t, &brokenPreferenceStore{
			inner:     store.NewMemoryPreferenceStore(),
			upsertErr: errors.New("disk full"),
		})

		rec := ts.do(t, http.MethodPut, base, PreferencesRequest{GuidanceMode: strPtr("silent")})
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		// The rolled-back value is what subsequent reads see.
		rec = ts.do(t, http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		prefs := decodeBody[domain.GuidancePreferences](t, rec)
		assert.Equal(t, domain.GuidanceModeFull, prefs.GuidanceMode)
	})

	t.Run("orientation completion forces full mode", func(t *testing.T) {
		ts := newTestServer(t, nil)

		rec := ts.do(t, http.MethodPut, base, PreferencesRequest{GuidanceMode: strPtr("silent")})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, http.MethodPost, base+"/orientation", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		prefs := decodeBody[domain.GuidancePreferences](t, rec)
		assert.True(t, prefs.OrientationCompleted)
		assert.Equal(t, domain.GuidanceModeFull, prefs.GuidanceMode)
	})

	t.Run("invalid user ID is rejected", func(t *testing.T) {
		ts := newTestServer(t, nil)

		rec := ts.do(t, http.MethodGet, "/users/not-a-uuid/preferences", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionEndpoints(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)
	userID := uuid.New()
	base := fmt.Sprintf("/users/%s/sessions", userID)

	// Start a session.
	rec := ts.do(t, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	snapshot := decodeBody[session.Snapshot](t, rec)
	assert.Equal(t, session.StateAwaitingChoice, snapshot.State)
	require.Len(t, snapshot.Scenarios, 5)
	assert.Equal(t, 600, snapshot.SimulatedScore)

	// Starting again mid-session conflicts.
	rec = ts.do(t, http.MethodPost, base, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Advancing before any choice conflicts.
	rec = ts.do(t, http.MethodPost, base+"/current/next", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// An unknown choice is a bad request.
	rec = ts.do(t, http.MethodPost, base+"/current/choices",
		SubmitChoiceRequest{ChoiceID: "no-such-choice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Submit the correct choice for the visible scenario.
	correctID := correctChoiceID(t, snapshot.Scenarios[0])
	rec = ts.do(t, http.MethodPost, base+"/current/choices",
		SubmitChoiceRequest{ChoiceID: correctID})
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeBody[session.ChoiceResult](t, rec)
	assert.True(t, result.Correct)
	assert.Equal(t, 100, result.PointsAwarded)

	// A second choice for the same scenario conflicts.
	rec = ts.do(t, http.MethodPost, base+"/current/choices",
		SubmitChoiceRequest{ChoiceID: correctID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Advance to the next scenario.
	rec = ts.do(t, http.MethodPost, base+"/current/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	snapshot = decodeBody[session.Snapshot](t, rec)
	assert.Equal(t, session.StateAwaitingChoice, snapshot.State)
	assert.Equal(t, 1, snapshot.CurrentIndex)

	// The current-session view matches.
	rec = ts.do(t, http.MethodGet, base+"/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decodeBody[session.Snapshot](t, rec)
	assert.Equal(t, snapshot.CurrentIndex, current.CurrentIndex)
}

func TestSessionCompletionAndReplay(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)
	userID := uuid.New()
	base := fmt.Sprintf("/users/%s/sessions", userID)

	rec := ts.do(t, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	snapshot := decodeBody[session.Snapshot](t, rec)

	// Answer every scenario correctly.
	for _, scenario := range snapshot.Scenarios {
		rec = ts.do(t, http.MethodPost, base+"/current/choices",
			SubmitChoiceRequest{ChoiceID: correctChoiceID(t, scenario)})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, http.MethodPost, base+"/current/next", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	final := decodeBody[session.Snapshot](t, rec)
	assert.Equal(t, session.StateComplete, final.State)
	assert.True(t, final.Completed)
	assert.Equal(t, 550, final.TotalPoints, "five correct answers plus the completion bonus")

	// Posting to sessions after completion replays with a fresh session.
	rec = ts.do(t, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	replayed := decodeBody[session.Snapshot](t, rec)
	assert.Equal(t, session.StateAwaitingChoice, replayed.State)
	assert.Equal(t, 0, replayed.TotalPoints)
}

func correctChoiceID(t *testing.T, scenario domain.Scenario) string {
	t.Helper()
	for _, c := range scenario.Choices {
		if c.IsCorrect {
			return c.ID
		}
	}
	t.Fatalf("Scenario %q has no correct choice", scenario.TemplateID)
	return ""
}

func strPtr(s string) *string { return &s }

func apiBoolPtr(v bool) *bool { return &v }
