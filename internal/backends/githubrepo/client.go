package githubrepo

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"

	"github.com/devbridge-hq/devbridge-backend/config"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/domain"
)

const defaultBranch = "main"

// Client handles communication with the GitHub REST API on behalf of
// the token's user.
type Client struct {
	gh *github.Client
}

// NewClient creates a GitHub client authenticated with a personal
// access token.
func NewClient(cfg config.GitHubConfig) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = cfg.Timeout
	return &Client{gh: github.NewClient(httpClient)}
}

// RepoSummary is the projection of a repository served to callers.
type RepoSummary struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
	URL      string `json:"url"`
}

// PushRequest describes a file to create or update in a repository
// owned by the authenticated user.
type PushRequest struct {
	Repo          string
	Path          string
	CommitMessage string
	Branch        string
	Content       []byte
}

// CommitResult reports the commit produced by a push.
type CommitResult struct {
	Path      string `json:"path"`
	CommitSHA string `json:"commit_sha"`
	CommitURL string `json:"commit_url"`
	Created   bool   `json:"created"`
}

// ListRepositories returns every repository of the authenticated user,
// draining all pages before returning.
func (c *Client) ListRepositories(ctx context.Context) ([]RepoSummary, error) {
	opts := &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var repos []RepoSummary
	for {
		page, resp, err := c.gh.Repositories.List(ctx, "", opts)
		if err != nil {
			return nil, classify("list repositories", err)
		}
		for _, r := range page {
			repos = append(repos, RepoSummary{
				Name:     r.GetName(),
				FullName: r.GetFullName(),
				Private:  r.GetPrivate(),
				URL:      r.GetHTMLURL(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

// PushFile creates the file if no blob exists at the path, otherwise
// updates it using the current blob SHA. The existence check and the
// write are two separate calls; a concurrent writer in between
// surfaces as ErrConflict from the backend, never a silent overwrite.
func (c *Client) PushFile(ctx context.Context, req PushRequest) (*CommitResult, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, classify("resolve authenticated user", err)
	}
	owner := user.GetLogin()

	branch := req.Branch
	if branch == "" {
		branch = defaultBranch
	}
	message := req.CommitMessage
	if message == "" {
		message = "Add/update " + req.Path
	}

	sha, err := c.fileSHA(ctx, owner, req.Repo, req.Path, branch)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: req.Content,
		Branch:  github.String(branch),
	}

	var content *github.RepositoryContentResponse
	if sha == "" {
		content, _, err = c.gh.Repositories.CreateFile(ctx, owner, req.Repo, req.Path, opts)
	} else {
		opts.SHA = github.String(sha)
		content, _, err = c.gh.Repositories.UpdateFile(ctx, owner, req.Repo, req.Path, opts)
	}
	if err != nil {
		return nil, classify("push file", err)
	}

	result := &CommitResult{Path: req.Path, Created: sha == ""}
	if content != nil {
		result.CommitSHA = content.Commit.GetSHA()
		result.CommitURL = content.Commit.GetHTMLURL()
	}
	return result, nil
}

// fileSHA returns the blob SHA of the file at path, or "" when no file
// exists there yet. A missing repository also lands on the create path
// and is reported by the subsequent write.
func (c *Client) fileSHA(ctx context.Context, owner, repo, path, branch string) (string, error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path,
		&github.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", classify("check existing file", err)
	}
	if file == nil {
		return "", fmt.Errorf("path %s is a directory: %w", path, domain.ErrUpstream)
	}
	return file.GetSHA(), nil
}

func classify(op string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %v: %w", op, err, domain.ErrNotFound)
		case http.StatusConflict:
			return fmt.Errorf("%s: %v: %w", op, err, domain.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrUpstream)
}
