package teamsync_api_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsync/teamsync/go/clients"
	"github.com/teamsync/teamsync/go/internal/models"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Team{})
	}))
	defer server.Close()

	client := NewTeamSyncApiClient(server.URL)
	client.SetAuthToken("tok-123")

	_, err := client.FetchTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_FetchTeams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/teams", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Team{
			{ID: "team-1", Name: "Thunder U12", Sport: "soccer", AgeGroup: "U12"},
		})
	}))
	defer server.Close()

	client := NewTeamSyncApiClient(server.URL)
	teams, err := client.FetchTeams(context.Background())

	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Thunder U12", teams[0].Name)
}

func TestClient_CreateEventPostsToTeamPath(t *testing.T) {
	start := time.Date(2025, 3, 11, 17, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/teams/team-1/events", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var event models.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		event.ID = "event-1"
		json.NewEncoder(w).Encode(event)
	}))
	defer server.Close()

	client := NewTeamSyncApiClient(server.URL)
	created, err := client.CreateEvent(context.Background(), "team-1", models.Event{
		Title:     "Practice",
		EventType: models.EventPractice,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	})

	require.NoError(t, err)
	assert.Equal(t, "event-1", created.ID)
	assert.Equal(t, "Practice", created.Title)
}

func TestClient_ServerErrorCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"team not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewTeamSyncApiClient(server.URL)
	_, err := client.FetchTeam(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, clients.StatusCode(err))
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewTeamSyncApiClient(server.URL)
	_, err := client.FetchTeams(context.Background())

	require.Error(t, err)
	assert.True(t, clients.IsNetworkError(err))
	assert.Equal(t, 0, clients.StatusCode(err))
}

func TestClient_FetchDrillsByAgeGroup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drills", r.URL.Path)
		assert.Equal(t, "U12", r.URL.Query().Get("ageGroup"))
		json.NewEncoder(w).Encode([]models.Drill{{ID: "d1", Name: "2v1 finishing", AgeGroup: "U12"}})
	}))
	defer server.Close()

	client := NewTeamSyncApiClient(server.URL)
	drills, err := client.FetchDrills(context.Background(), "U12")

	require.NoError(t, err)
	require.Len(t, drills, 1)
	assert.Equal(t, "2v1 finishing", drills[0].Name)
}

func TestClient_MarkAnnouncementRead(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewTeamSyncApiClient(server.URL)
	err := client.MarkAnnouncementRead(context.Background(), "team-1", "a1")

	require.NoError(t, err)
	assert.Equal(t, "PUT", gotMethod)
	assert.Equal(t, "/teams/team-1/announcements/a1/read", gotPath)
}

func TestClient_SendChatMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "schedule a practice", req.Message)
		assert.Contains(t, req.Context, "teams")

		json.NewEncoder(w).Encode(ChatResponse{Response: "Sure! [ACTION:CREATE_EVENT]"})
	}))
	defer server.Close()

	client := NewTeamSyncApiClient(server.URL)
	reply, err := client.SendChatMessage(context.Background(), "schedule a practice", map[string]interface{}{
		"teams": []string{"team-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Sure! [ACTION:CREATE_EVENT]", reply)
}
