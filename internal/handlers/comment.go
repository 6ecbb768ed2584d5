package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"commentbox/internal/repository"
	"commentbox/internal/services"
	"commentbox/internal/utils"

	"github.com/gin-gonic/gin"
)

const treeCacheKey = "comments:tree"

const genericStorageError = "Hubo un problema con el servidor. Por favor, inténtalo de nuevo más tarde."

type CommentHandler struct {
	comments  repository.CommentRepository
	reports   repository.ReportRepository
	moderator services.Moderator
	uploads   *services.UploadStore
}

func NewCommentHandler(comments repository.CommentRepository, reports repository.ReportRepository, moderator services.Moderator, uploads *services.UploadStore) *CommentHandler {
	return &CommentHandler{
		comments:  comments,
		reports:   reports,
		moderator: moderator,
		uploads:   uploads,
	}
}

// Create handles POST /api/comments: multipart form with `comment` text,
// optional `parent_id` and optional `media` file.
func (h *CommentHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	text := c.PostForm("comment")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "El comentario no puede estar vacío."})
		return
	}

	if h.moderator.Reject(text) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Tu comentario contiene contenido inapropiado."})
		return
	}

	var parentID *string
	if pid := c.PostForm("parent_id"); pid != "" {
		parentID = &pid
	}

	var mediaURL *string
	if file, err := c.FormFile("media"); err == nil {
		if !services.AllowedMediaFile(file.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Tipo de archivo no permitido."})
			return
		}
		url, err := h.uploads.Save(c, file)
		if err != nil {
			log.Printf("Error al guardar el archivo: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericStorageError})
			return
		}
		mediaURL = &url
	}

	comment, err := h.comments.Create(user.Username, text, mediaURL, parentID)
	if err != nil {
		log.Printf("Error al añadir comentario: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericStorageError})
		return
	}

	utils.GetCache().Delete(treeCacheKey)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"comment": services.NewCommentNode(*comment),
	})
}

// List handles GET /api/comments: every comment, assembled into a forest
// of reply trees.
func (h *CommentHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(treeCacheKey); cached != nil {
		c.JSON(http.StatusOK, cached.([]*services.CommentNode))
		return
	}

	comments, err := h.comments.ListAll()
	if err != nil {
		log.Printf("Error al cargar los comentarios: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericStorageError})
		return
	}

	tree := services.BuildCommentTree(comments)
	utils.GetCache().Set(treeCacheKey, tree, time.Minute)

	c.JSON(http.StatusOK, tree)
}

// Like handles POST /api/comments/:id/like.
func (h *CommentHandler) Like(c *gin.Context) {
	id := c.Param("id")

	likes, err := h.comments.IncrementLikes(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "El comentario no existe."})
			return
		}
		log.Printf("Error al dar like al comentario %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericStorageError})
		return
	}

	utils.GetCache().Delete(treeCacheKey)

	c.JSON(http.StatusOK, gin.H{"success": true, "likes": likes})
}

// Update handles PUT /api/comments/:id with form field `text`. Only the
// author may edit, and edits pass moderation like new comments do.
func (h *CommentHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := c.Param("id")

	text := c.PostForm("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "El comentario no puede estar vacío."})
		return
	}
	if h.moderator.Reject(text) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Tu comentario contiene contenido inapropiado."})
		return
	}

	if err := h.comments.UpdateText(id, text, user.Username); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "El comentario no existe."})
		case errors.Is(err, repository.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Solo puedes editar tus propios comentarios."})
		default:
			log.Printf("Error al editar el comentario %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericStorageError})
		}
		return
	}

	utils.GetCache().Delete(treeCacheKey)

	c.JSON(http.StatusOK, gin.H{"success": true, "text": text})
}

// Report handles POST /api/comments/:id/report with an optional `reason`
// form field. Reports are stored for later moderator review; nothing about
// the comment itself changes.
func (h *CommentHandler) Report(c *gin.Context) {
	user := CurrentUser(c)
	id := c.Param("id")

	if _, err := h.reports.Create(user.Username, id, c.PostForm("reason")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "El comentario no existe."})
			return
		}
		log.Printf("Error al reportar el comentario %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericStorageError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /api/comments/:id. Replies go down with their
// parent.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := c.Param("id")

	if err := h.comments.Delete(id, user.Username); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "El comentario no existe."})
		case errors.Is(err, repository.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Solo puedes eliminar tus propios comentarios."})
		default:
			log.Printf("Error al eliminar el comentario %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericStorageError})
		}
		return
	}

	utils.GetCache().Delete(treeCacheKey)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
