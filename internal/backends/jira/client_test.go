package jira

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbridge-hq/devbridge-backend/config"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/domain"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.JiraConfig{
		BaseURL:    serverURL,
		Email:      "dev@example.com",
		APIToken:   "token",
		ProjectKey: "PROJ",
		Timeout:    5 * time.Second,
	})
}

func TestListTickets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/search", r.URL.Path)
		assert.Equal(t, "project=PROJ", r.URL.Query().Get("jql"))
		assert.Equal(t, "100", r.URL.Query().Get("maxResults"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "dev@example.com", user)
		assert.Equal(t, "token", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"issues":[
			{"key":"PROJ-1","fields":{
				"summary":"Fix login",
				"status":{"name":"In Progress"},
				"assignee":{"displayName":"Ada"},
				"priority":{"name":"High"},
				"issuetype":{"name":"Bug"},
				"description":{"type":"doc","version":1,"content":[
					{"type":"paragraph","content":[{"type":"text","text":"Broken"},{"type":"text","text":"badly"}]}
				]},
				"labels":["auth"]
			}},
			{"key":"PROJ-2","fields":{"summary":"Bare ticket"}}
		]}`))
	}))
	defer server.Close()

	tickets, err := newTestClient(server.URL).ListTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, TicketSummary{
		ID:          "PROJ-1",
		Title:       "Fix login",
		Status:      "In Progress",
		Assignee:    "Ada",
		Priority:    "High",
		Type:        "Bug",
		Description: "Broken badly",
		Labels:      []string{"auth"},
	}, tickets[0])

	// missing fields fall back rather than erroring
	assert.Equal(t, "PROJ-2", tickets[1].ID)
	assert.Equal(t, "Unassigned", tickets[1].Assignee)
	assert.Equal(t, "Medium", tickets[1].Priority)
	assert.Equal(t, []string{}, tickets[1].Labels)
}

func TestListTicketsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"issues":[]}`))
	}))
	defer server.Close()

	tickets, err := newTestClient(server.URL).ListTickets(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)
}

func TestListTicketsUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListTickets(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestGetTicket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/issue/PROJ-7", r.URL.Path)
		_, _ = w.Write([]byte(`{"key":"PROJ-7","fields":{"summary":"Seven","status":{"name":"Done"}}}`))
	}))
	defer server.Close()

	ticket, err := newTestClient(server.URL).GetTicket(context.Background(), "PROJ-7")
	require.NoError(t, err)
	assert.Equal(t, "PROJ-7", ticket.ID)
	assert.Equal(t, "Seven", ticket.Title)
	assert.Equal(t, "Done", ticket.Status)
}

func TestGetTicketNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetTicket(context.Background(), "PROJ-404")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "PROJ-404")
}

func TestAddCommitComment(t *testing.T) {
	var posts int
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/3/issue/PROJ-1/comment", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"10045"}`))
	}))
	defer server.Close()

	comment, err := newTestClient(server.URL).AddCommitComment(
		context.Background(), "PROJ-1", "fix bug", "https://x/commit/abc")
	require.NoError(t, err)

	// exactly one outbound call per request
	assert.Equal(t, 1, posts)
	assert.Equal(t, "10045", comment.ID)
	assert.Contains(t, comment.Body, "fix bug")
	assert.Contains(t, comment.Body, "https://x/commit/abc")

	// posted document carries the message and the commit link
	encoded, _ := json.Marshal(body)
	assert.Contains(t, string(encoded), `"fix bug"`)
	assert.Contains(t, string(encoded), `"https://x/commit/abc"`)
}

func TestAddCommitCommentWithoutURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		assert.NotContains(t, string(raw), "View Commit")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"10046"}`))
	}))
	defer server.Close()

	comment, err := newTestClient(server.URL).AddCommitComment(
		context.Background(), "PROJ-1", "fix bug", "")
	require.NoError(t, err)
	assert.Equal(t, "fix bug", comment.Body)
}

func TestAddCommitCommentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).AddCommitComment(
		context.Background(), "PROJ-9", "msg", "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTransportErrorIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).ListTickets(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}
