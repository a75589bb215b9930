package codegen

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/devbridge-hq/devbridge-backend/internal/api/http"
)

// CodeGenerator produces source text from a natural-language
// description.
type CodeGenerator interface {
	GenerateCode(ctx context.Context, description string) (string, error)
}

type Handler struct {
	generator CodeGenerator
}

func NewHandler(generator CodeGenerator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/api/generate_code", h.GenerateCode)
}

type generateRequest struct {
	Description string `json:"description"`
}

func (h *Handler) GenerateCode(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.RespondBadRequest(c, "invalid json body")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		httpapi.RespondBadRequest(c, "missing 'description' in request body")
		return
	}

	code, err := h.generator.GenerateCode(c.Request.Context(), req.Description)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}
