package project

import "time"

type Project struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;size:100;not null"`
	Description *string   `gorm:"column:description;type:text"`
	CreatedBy   int64     `gorm:"column:created_by;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (Project) TableName() string {
	return "projects"
}

type ProjectMember struct {
	ID        int64  `gorm:"primaryKey"`
	ProjectID int64  `gorm:"column:project_id;not null;uniqueIndex:idx_project_members_project_user"`
	UserID    int64  `gorm:"column:user_id;not null;uniqueIndex:idx_project_members_project_user;index"`
	Role      string `gorm:"column:role;size:50;not null"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}

// Membership is a member row joined with its project.
type Membership struct {
	ProjectID          int64     `gorm:"column:project_id"`
	ProjectName        string    `gorm:"column:project_name"`
	ProjectDescription *string   `gorm:"column:project_description"`
	Role               string    `gorm:"column:role"`
	ProjectCreatorID   int64     `gorm:"column:project_creator_id"`
	ProjectCreatedAt   time.Time `gorm:"column:project_created_at"`
}

// MemberDetail is a member row joined with the member's username.
type MemberDetail struct {
	UserID   int64  `gorm:"column:user_id"`
	Username string `gorm:"column:username"`
	Role     string `gorm:"column:role"`
}
