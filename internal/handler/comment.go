package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lfmelo/stockboard/internal/middleware"
	"github.com/lfmelo/stockboard/internal/queue"
)

// CommentHandler serves the per-company comment thread.
type CommentHandler struct {
	Comments CommentStore
	Events   EventPublisher
}

func NewCommentHandler(comments CommentStore, events EventPublisher) *CommentHandler {
	return &CommentHandler{Comments: comments, Events: events}
}

type commentReq struct {
	Content string `json:"content"`
}

type commentItem struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ListByCompany returns a company's comments, oldest first. Public route.
func (h *CommentHandler) ListByCompany(c echo.Context) error {
	companyID := c.Param("companyId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comments, err := h.Comments.ListByCompany(ctx, companyID)
	if err != nil {
		log.Printf("comments: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro interno ao buscar comentários."})
	}

	out := make([]commentItem, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentItem{
			ID:        cm.ID,
			Username:  cm.Username,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Post adds a comment to a company page. The author is the authenticated
// caller; the body only carries the content.
func (h *CommentHandler) Post(c echo.Context) error {
	uid, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Não autenticado"})
	}
	companyID := c.Param("companyId")

	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requisição inválida"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content é obrigatório."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cm, err := h.Comments.Add(ctx, uid, companyID, req.Content)
	if err != nil {
		log.Printf("comments: insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao salvar o comentário."})
	}

	if h.Events != nil {
		evt := queue.CommentPostedEvent{
			CommentID: cm.ID,
			UserID:    uid,
			Username:  cm.Username,
			CompanyID: companyID,
			PostedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = h.Events.CommentPosted(ctx, evt)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"username": cm.Username,
		"content":  cm.Content,
	})
}
