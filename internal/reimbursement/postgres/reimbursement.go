package postgres

import (
	"time"

	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	reimbursementDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/reimbursement"
	"github.com/frahmantamala/enterprise-admin/internal/reimbursement"
	"gorm.io/gorm"
)

type ReimbursementRepository struct {
	db *gorm.DB
}

func NewReimbursementRepository(db *gorm.DB) reimbursement.RepositoryAPI {
	return &ReimbursementRepository{db: db}
}

func (r *ReimbursementRepository) view() *gorm.DB {
	return r.db.Table("reimbursements AS r").
		Select("r.*, p.name AS project_name, u.username AS username, a.username AS approver_username").
		Joins("LEFT JOIN projects AS p ON p.id = r.project_id").
		Joins("LEFT JOIN users AS u ON u.id = r.user_id").
		Joins("LEFT JOIN users AS a ON a.id = r.approved_by")
}

func (r *ReimbursementRepository) Create(row *reimbursementDatamodel.Reimbursement) error {
	return r.db.Create(row).Error
}

func (r *ReimbursementRepository) GetByID(id int64) (*reimbursementDatamodel.View, error) {
	var rows []reimbursementDatamodel.View
	if err := r.view().Where("r.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *ReimbursementRepository) ListByUser(userID int64) ([]reimbursementDatamodel.View, error) {
	var rows []reimbursementDatamodel.View
	err := r.view().
		Where("r.user_id = ?", userID).
		Order("r.submitted_at DESC, r.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ReimbursementRepository) ListPending(projectIDs []int64) ([]reimbursementDatamodel.View, error) {
	query := r.view().Where("r.status = ?", approval.StatusPending)
	if projectIDs != nil {
		query = query.Where("r.project_id IN ?", projectIDs)
	}

	var rows []reimbursementDatamodel.View
	err := query.Order("r.submitted_at ASC, r.id ASC").Scan(&rows).Error
	return rows, err
}

func (r *ReimbursementRepository) ListAll() ([]reimbursementDatamodel.View, error) {
	var rows []reimbursementDatamodel.View
	err := r.view().Order("r.submitted_at DESC, r.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *ReimbursementRepository) Decide(id int64, status string, approverID int64, at time.Time) (bool, error) {
	result := r.db.Model(&reimbursementDatamodel.Reimbursement{}).
		Where("id = ? AND status = ?", id, approval.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approverID,
			"approved_at": at,
		})
	return result.RowsAffected == 1, result.Error
}
