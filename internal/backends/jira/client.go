package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/devbridge-hq/devbridge-backend/config"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/domain"
)

const searchFields = "summary,status,assignee,priority,issuetype,description,labels"

// Client handles communication with the Jira Cloud REST API (v3).
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	projectKey string
	httpClient *http.Client
}

// NewClient creates a Jira client bound to a single project.
func NewClient(cfg config.JiraConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		email:      cfg.Email,
		apiToken:   cfg.APIToken,
		projectKey: cfg.ProjectKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// TicketSummary is the projection of a Jira issue served to callers.
type TicketSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Assignee    string   `json:"assignee"`
	Priority    string   `json:"priority"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
}

// Comment is a created ticket comment. Body is the flattened text view
// of what was posted.
type Comment struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

type issue struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary     string          `json:"summary"`
	Status      *namedField     `json:"status"`
	Assignee    *userField      `json:"assignee"`
	Priority    *namedField     `json:"priority"`
	IssueType   *namedField     `json:"issuetype"`
	Description json.RawMessage `json:"description"`
	Labels      []string        `json:"labels"`
}

type namedField struct {
	Name string `json:"name"`
}

type userField struct {
	DisplayName string `json:"displayName"`
}

// ListTickets fetches every issue of the configured project, in the
// order the search API yields them. An empty project is not an error.
func (c *Client) ListTickets(ctx context.Context) ([]TicketSummary, error) {
	q := url.Values{}
	q.Set("jql", "project="+c.projectKey)
	q.Set("maxResults", "100")
	q.Set("fields", searchFields)

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/rest/api/3/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var result struct {
		Issues []issue `json:"issues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %v: %w", err, domain.ErrUpstream)
	}

	tickets := make([]TicketSummary, 0, len(result.Issues))
	for _, is := range result.Issues {
		tickets = append(tickets, toSummary(is))
	}
	return tickets, nil
}

// GetTicket fetches a single issue by key.
func (c *Client) GetTicket(ctx context.Context, ticketID string) (*TicketSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, c.issueURL(ticketID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("ticket %s: %w", ticketID, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("issue fetch returned status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var is issue
	if err := json.NewDecoder(resp.Body).Decode(&is); err != nil {
		return nil, fmt.Errorf("decode issue response: %v: %w", err, domain.ErrUpstream)
	}
	if is.Key == "" {
		is.Key = ticketID
	}
	t := toSummary(is)
	return &t, nil
}

// AddCommitComment appends a commit annotation to a ticket. Every
// successful call creates a new comment; callers own idempotency.
func (c *Client) AddCommitComment(ctx context.Context, ticketID, commitMessage, commitURL string) (*Comment, error) {
	payload := struct {
		Body adfDoc `json:"body"`
	}{Body: commitCommentDoc(commitMessage, commitURL)}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode comment: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.issueURL(ticketID)+"/comment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("ticket %s: %w", ticketID, domain.ErrNotFound)
	case resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("comment create returned status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode comment response: %v: %w", err, domain.ErrUpstream)
	}

	text := commitMessage
	if commitURL != "" {
		text += "\n" + commitURL
	}
	return &Comment{ID: created.ID, Body: text}, nil
}

func (c *Client) issueURL(ticketID string) string {
	return c.baseURL + "/rest/api/3/issue/" + url.PathEscape(ticketID)
}

func (c *Client) do(ctx context.Context, method, reqURL string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira request failed: %v: %w", err, domain.ErrUpstream)
	}
	return resp, nil
}

func toSummary(is issue) TicketSummary {
	t := TicketSummary{
		ID:       is.Key,
		Title:    is.Fields.Summary,
		Assignee: "Unassigned",
		Priority: "Medium",
		Labels:   is.Fields.Labels,
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	if is.Fields.Status != nil {
		t.Status = is.Fields.Status.Name
	}
	if is.Fields.Assignee != nil && is.Fields.Assignee.DisplayName != "" {
		t.Assignee = is.Fields.Assignee.DisplayName
	}
	if is.Fields.Priority != nil && is.Fields.Priority.Name != "" {
		t.Priority = is.Fields.Priority.Name
	}
	if is.Fields.IssueType != nil {
		t.Type = is.Fields.IssueType.Name
	}
	t.Description = descriptionText(is.Fields.Description)
	return t
}

// descriptionText accepts either a plain string or an ADF document;
// Jira Cloud serves ADF but older projects can still carry strings.
func descriptionText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var doc adfDoc
	if err := json.Unmarshal(raw, &doc); err == nil {
		return doc.plainText()
	}
	return ""
}
