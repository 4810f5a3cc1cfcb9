package postgres

import (
	"time"

	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	leaveDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/leave"
	"github.com/frahmantamala/enterprise-admin/internal/leave"
	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.RepositoryAPI {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) view() *gorm.DB {
	return r.db.Table("leave_requests AS l").
		Select("l.*, u.username AS username, a.username AS approver_username").
		Joins("LEFT JOIN users AS u ON u.id = l.user_id").
		Joins("LEFT JOIN users AS a ON a.id = l.approved_by")
}

func (r *LeaveRepository) Create(l *leaveDatamodel.LeaveRequest) error {
	return r.db.Create(l).Error
}

func (r *LeaveRepository) GetByID(id int64) (*leaveDatamodel.View, error) {
	var rows []leaveDatamodel.View
	if err := r.view().Where("l.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *LeaveRepository) ListByUser(userID int64) ([]leaveDatamodel.View, error) {
	var rows []leaveDatamodel.View
	err := r.view().Where("l.user_id = ?", userID).Order("l.submitted_at DESC, l.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *LeaveRepository) ListPending() ([]leaveDatamodel.View, error) {
	var rows []leaveDatamodel.View
	err := r.view().
		Where("l.status = ?", approval.StatusPending).
		Order("l.submitted_at ASC, l.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *LeaveRepository) ListAll() ([]leaveDatamodel.View, error) {
	var rows []leaveDatamodel.View
	err := r.view().Order("l.submitted_at DESC, l.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *LeaveRepository) Decide(id int64, status string, approverID int64, at time.Time) (bool, error) {
	result := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("id = ? AND status = ?", id, approval.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approverID,
			"approved_at": at,
		})
	return result.RowsAffected == 1, result.Error
}
