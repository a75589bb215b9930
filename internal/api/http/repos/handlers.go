package repos

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/devbridge-hq/devbridge-backend/internal/api/http"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/githubrepo"
)

// RepoService is the slice of the repository-host client used by the
// repo routes.
type RepoService interface {
	ListRepositories(ctx context.Context) ([]githubrepo.RepoSummary, error)
	PushFile(ctx context.Context, req githubrepo.PushRequest) (*githubrepo.CommitResult, error)
}

type Handler struct {
	repos RepoService
}

func NewHandler(repos RepoService) *Handler {
	return &Handler{repos: repos}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/repos", h.ListRepositories)
	r.POST("/push-file", h.PushFile)
}

func (h *Handler) ListRepositories(c *gin.Context) {
	repos, err := h.repos.ListRepositories(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "repos": names, "count": len(names)})
}

func (h *Handler) PushFile(c *gin.Context) {
	repo := strings.TrimSpace(c.PostForm("repo"))
	filePath := strings.TrimSpace(c.PostForm("file_path"))
	commitMessage := c.PostForm("commit_message")
	branch := c.PostForm("branch")

	file, err := c.FormFile("file")
	if err != nil || repo == "" || filePath == "" {
		httpapi.RespondBadRequest(c, "missing repo, file_path or file")
		return
	}

	src, err := file.Open()
	if err != nil {
		httpapi.RespondBadRequest(c, "unreadable file upload")
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		httpapi.RespondBadRequest(c, "unreadable file upload")
		return
	}
	if len(content) == 0 {
		httpapi.RespondBadRequest(c, "uploaded file is empty")
		return
	}

	result, err := h.repos.PushFile(c.Request.Context(), githubrepo.PushRequest{
		Repo:          repo,
		Path:          filePath,
		CommitMessage: commitMessage,
		Branch:        branch,
		Content:       content,
	})
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "result": result})
}
