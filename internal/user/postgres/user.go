package postgres

import (
	"errors"

	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) first(query string, args ...interface{}) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where(query, args...).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	return r.first("id = ?", id)
}

func (r *UserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	return r.first("username = ?", username)
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	return r.first("email = ?", email)
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) UpdatePassword(id int64, hash string) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *UserRepository) ListNonAdminWithProjectCount() ([]userDatamodel.WithProjectCount, error) {
	var rows []userDatamodel.WithProjectCount
	err := r.db.Table("users AS u").
		Select("u.*, COUNT(pm.id) AS project_count").
		Joins("LEFT JOIN project_members AS pm ON pm.user_id = u.id").
		Where("u.role <> ?", coreUser.RoleAdmin).
		Group("u.id").
		Order("u.id ASC").
		Scan(&rows).Error
	return rows, err
}
