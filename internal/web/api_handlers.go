package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evcraddock/comments/internal/comment"
)

// Response messages for the comment resource.
const (
	msgFetchFailed  = "Failed to fetch comments"
	msgCreateFailed = "Failed to create comment"
	msgDeleteFailed = "Failed to delete comment"
	msgNotFound     = "Comment not found"
	msgDeleted      = "Comment deleted successfully"
	msgInvalidBody  = "Invalid request body"
)

// apiError writes a JSON error response and stops the handler chain.
func apiError(c *gin.Context, msg string, code int) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

// apiListComments returns every comment.
func (s *Server) apiListComments(c *gin.Context) {
	ctx := c.Request.Context()

	comments, err := s.store.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "listing comments", "error", err)
		apiError(c, msgFetchFailed, http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = make([]*comment.Comment, 0)
	}

	c.JSON(http.StatusOK, comments)
}

// apiCreateComment validates the body and persists a new comment.
func (s *Server) apiCreateComment(c *gin.Context) {
	ctx := c.Request.Context()

	var draft comment.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		apiError(c, msgInvalidBody, http.StatusBadRequest)
		return
	}

	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		apiError(c, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := s.store.Create(ctx, draft)
	if err != nil {
		var verr *comment.ValidationError
		switch {
		case errors.As(err, &verr):
			apiError(c, verr.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, comment.ErrInvalid):
			apiError(c, msgInvalidBody, http.StatusBadRequest)
			return
		}
		slog.ErrorContext(ctx, "creating comment", "error", err)
		apiError(c, msgCreateFailed, http.StatusInternalServerError)
		return
	}

	slog.DebugContext(ctx, "comment created", "id", created.ID)
	c.JSON(http.StatusCreated, created)
}

// apiDeleteComment removes the comment named in the path.
func (s *Server) apiDeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	err := s.store.Delete(ctx, id)
	if errors.Is(err, comment.ErrNotFound) {
		apiError(c, msgNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "deleting comment", "id", id, "error", err)
		apiError(c, msgDeleteFailed, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}
