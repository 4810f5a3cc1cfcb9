package postgres

import (
	noticeDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/notice"
	"github.com/frahmantamala/enterprise-admin/internal/notice"
	"gorm.io/gorm"
)

type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) notice.RepositoryAPI {
	return &NoticeRepository{db: db}
}

func (r *NoticeRepository) withCreator() *gorm.DB {
	return r.db.Table("notices AS n").
		Select("n.*, u.username AS creator_username").
		Joins("LEFT JOIN users AS u ON u.id = n.created_by")
}

func (r *NoticeRepository) Create(n *noticeDatamodel.Notice) error {
	return r.db.Create(n).Error
}

func (r *NoticeRepository) GetByID(id int64) (*noticeDatamodel.View, error) {
	var rows []noticeDatamodel.View
	if err := r.withCreator().Where("n.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *NoticeRepository) Delete(id int64) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&noticeDatamodel.Notice{})
	return result.RowsAffected > 0, result.Error
}

func (r *NoticeRepository) List(offset, limit int) ([]noticeDatamodel.View, int64, error) {
	var total int64
	if err := r.db.Model(&noticeDatamodel.Notice{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []noticeDatamodel.View
	err := r.withCreator().
		Order("n.created_at DESC, n.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}
