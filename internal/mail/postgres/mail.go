package postgres

import (
	"errors"

	mailDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/mail"
	"github.com/frahmantamala/enterprise-admin/internal/mail"
	"gorm.io/gorm"
)

type MailRepository struct {
	db *gorm.DB
}

func NewMailRepository(db *gorm.DB) mail.RepositoryAPI {
	return &MailRepository{db: db}
}

func (r *MailRepository) Create(m *mailDatamodel.Mail) error {
	return r.db.Create(m).Error
}

func (r *MailRepository) GetByID(id int64) (*mailDatamodel.Mail, error) {
	var m mailDatamodel.Mail
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MailRepository) Inbox(userID int64) ([]mailDatamodel.View, error) {
	return r.listWith("m.sender_id", "m.receiver_id = ?", userID)
}

func (r *MailRepository) Sent(userID int64) ([]mailDatamodel.View, error) {
	return r.listWith("m.receiver_id", "m.sender_id = ?", userID)
}

// listWith joins the user on counterpartColumn so each row carries the
// other party's username.
func (r *MailRepository) listWith(counterpartColumn, where string, userID int64) ([]mailDatamodel.View, error) {
	var rows []mailDatamodel.View
	err := r.db.Table("mails AS m").
		Select("m.*, u.username AS counterpart_username").
		Joins("LEFT JOIN users AS u ON u.id = "+counterpartColumn).
		Where(where, userID).
		Order("m.sent_at DESC, m.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *MailRepository) MarkRead(id int64) error {
	return r.db.Model(&mailDatamodel.Mail{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *MailRepository) CreateReply(originalID int64, reply *mailDatamodel.Mail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reply).Error; err != nil {
			return err
		}
		return tx.Model(&mailDatamodel.Mail{}).Where("id = ?", originalID).Update("is_reply", true).Error
	})
}
