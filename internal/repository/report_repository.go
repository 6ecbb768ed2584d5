package repository

import (
	"errors"

	"commentbox/internal/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	// Create files a report against an existing comment. Returns
	// ErrNotFound when the comment id does not resolve.
	Create(username, commentID, reason string) (*models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(username, commentID, reason string) (*models.Report, error) {
	report := &models.Report{
		Username:  username,
		CommentID: commentID,
		Reason:    reason,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id").First(&comment, "id = ?", commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Create(report).Error
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
