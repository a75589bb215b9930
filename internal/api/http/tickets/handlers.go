package tickets

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/devbridge-hq/devbridge-backend/internal/api/http"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/jira"
)

// TicketService is the slice of the issue-tracker client used by the
// ticket routes.
type TicketService interface {
	ListTickets(ctx context.Context) ([]jira.TicketSummary, error)
	GetTicket(ctx context.Context, ticketID string) (*jira.TicketSummary, error)
	AddCommitComment(ctx context.Context, ticketID, commitMessage, commitURL string) (*jira.Comment, error)
}

type Handler struct {
	tickets TicketService
}

func NewHandler(tickets TicketService) *Handler {
	return &Handler{tickets: tickets}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api/tickets", h.ListTickets)
	r.GET("/api/tickets/:id", h.GetTicket)
	r.POST("/add-commit-comment", h.AddCommitComment)
}

func (h *Handler) ListTickets(c *gin.Context) {
	tickets, err := h.tickets.ListTickets(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tickets, "count": len(tickets)})
}

func (h *Handler) GetTicket(c *gin.Context) {
	ticket, err := h.tickets.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ticket})
}

func (h *Handler) AddCommitComment(c *gin.Context) {
	var req commitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.RespondBadRequest(c, "invalid json body")
		return
	}
	if strings.TrimSpace(req.JiraTicket) == "" || strings.TrimSpace(req.CommitMessage) == "" {
		httpapi.RespondBadRequest(c, "missing required fields: jira_ticket and commit_message")
		return
	}

	comment, err := h.tickets.AddCommitComment(c.Request.Context(), req.JiraTicket, req.CommitMessage, req.CommitURL)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "comment": comment})
}
