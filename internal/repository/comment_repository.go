package repository

import (
	"errors"

	"commentbox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	// Create inserts a new comment with a fresh id and zero likes.
	// ParentID is stored as given; its existence is the caller's concern.
	Create(username, text string, media, parentID *string) (*models.Comment, error)
	// ListAll returns every comment in storage order.
	ListAll() ([]models.Comment, error)
	// IncrementLikes bumps the like counter and returns the new value.
	IncrementLikes(id string) (int, error)
	// UpdateText replaces the comment text if requestingUser is the author.
	UpdateText(id, newText, requestingUser string) error
	// Delete removes the comment and all of its descendants if
	// requestingUser is the author of the comment itself.
	Delete(id, requestingUser string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(username, text string, media, parentID *string) (*models.Comment, error) {
	comment := &models.Comment{
		ID:       uuid.NewString(),
		Username: username,
		Text:     text,
		Media:    media,
		Likes:    0,
		ParentID: parentID,
	}
	if err := r.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) ListAll() ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) IncrementLikes(id string) (int, error) {
	var likes int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Comment{}).
			Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		var comment models.Comment
		if err := tx.Select("likes").First(&comment, "id = ?", id).Error; err != nil {
			return err
		}
		likes = comment.Likes
		return nil
	})
	if err != nil {
		return 0, err
	}
	return likes, nil
}

// UpdateText runs the owner check and the mutation inside one transaction so
// a concurrent writer cannot slip between them.
func (r *commentRepository) UpdateText(id, newText, requestingUser string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if comment.Username != requestingUser {
			return ErrForbidden
		}
		return tx.Model(&comment).UpdateColumn("text", newText).Error
	})
}

// Delete cascades to all replies, transitively, in the same transaction.
// Leaving orphaned rows behind (the old behavior) only made them vanish
// from the assembled tree while still occupying storage.
func (r *commentRepository) Delete(id, requestingUser string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if comment.Username != requestingUser {
			return ErrForbidden
		}

		frontier := []string{comment.ID}
		for len(frontier) > 0 {
			if err := tx.Where("id IN ?", frontier).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			var children []models.Comment
			if err := tx.Select("id").Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
				return err
			}
			frontier = frontier[:0]
			for _, child := range children {
				frontier = append(frontier, child.ID)
			}
		}
		return nil
	})
}
