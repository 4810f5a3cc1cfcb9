package postgres

import (
	"errors"

	projectDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/project"
	"github.com/frahmantamala/enterprise-admin/internal/project"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetByID(id int64) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(p *projectDatamodel.Project, ownerRole string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(&projectDatamodel.ProjectMember{
			ProjectID: p.ID,
			UserID:    p.CreatedBy,
			Role:      ownerRole,
		}).Error
	})
}

func (r *ProjectRepository) GetMember(projectID, userID int64) (*projectDatamodel.ProjectMember, error) {
	var m projectDatamodel.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *ProjectRepository) AddMember(m *projectDatamodel.ProjectMember) error {
	return r.db.Create(m).Error
}

func (r *ProjectRepository) MembershipsOf(userID int64) ([]projectDatamodel.Membership, error) {
	var rows []projectDatamodel.Membership
	err := r.db.Table("project_members AS pm").
		Select("p.id AS project_id, p.name AS project_name, p.description AS project_description, " +
			"pm.role AS role, p.created_by AS project_creator_id, p.created_at AS project_created_at").
		Joins("JOIN projects AS p ON p.id = pm.project_id").
		Where("pm.user_id = ?", userID).
		Order("p.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ProjectRepository) Members(projectID int64) ([]projectDatamodel.MemberDetail, error) {
	var rows []projectDatamodel.MemberDetail
	err := r.db.Table("project_members AS pm").
		Select("pm.user_id AS user_id, u.username AS username, pm.role AS role").
		Joins("JOIN users AS u ON u.id = pm.user_id").
		Where("pm.project_id = ?", projectID).
		Order("pm.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ProjectRepository) ProjectIDsWithRole(userID int64, role string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&projectDatamodel.ProjectMember{}).
		Where("user_id = ? AND role = ?", userID, role).
		Pluck("project_id", &ids).Error
	return ids, err
}
