package postgres

import (
	"errors"
	"time"

	worklogDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/worklog"
	"github.com/frahmantamala/enterprise-admin/internal/worklog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkLogRepository struct {
	db *gorm.DB
}

func NewWorkLogRepository(db *gorm.DB) worklog.RepositoryAPI {
	return &WorkLogRepository{db: db}
}

// Create relies on the (user_id, log_date) unique index.
func (r *WorkLogRepository) Create(w *worklogDatamodel.WorkLog) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(w)
	return result.RowsAffected == 1, result.Error
}

func (r *WorkLogRepository) GetByID(id int64) (*worklogDatamodel.WorkLog, error) {
	var w worklogDatamodel.WorkLog
	if err := r.db.Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *WorkLogRepository) ExistsForDate(userID int64, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&worklogDatamodel.WorkLog{}).
		Where("user_id = ? AND log_date = ?", userID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *WorkLogRepository) Update(id int64, changes worklog.Changes) error {
	updates := map[string]interface{}{"created_at": changes.CreatedAt}
	if changes.DurationHours != nil {
		updates["duration_hours"] = *changes.DurationHours
	}
	if changes.Content != nil {
		updates["content"] = *changes.Content
	}
	return r.db.Model(&worklogDatamodel.WorkLog{}).Where("id = ?", id).Updates(updates).Error
}

func (r *WorkLogRepository) List(filter worklog.Filter) ([]worklogDatamodel.View, error) {
	q := r.db.Table("work_logs AS w").
		Select("w.*, u.username AS username").
		Joins("LEFT JOIN users AS u ON u.id = w.user_id")
	if filter.UserID != nil {
		q = q.Where("w.user_id = ?", *filter.UserID)
	}
	if filter.Period.From != nil {
		q = q.Where("w.log_date >= ? AND w.log_date < ?", *filter.Period.From, *filter.Period.To)
	}

	var rows []worklogDatamodel.View
	err := q.Order("w.log_date DESC, w.id DESC").Scan(&rows).Error
	return rows, err
}
