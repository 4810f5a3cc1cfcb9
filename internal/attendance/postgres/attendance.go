package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) first(query string, args ...interface{}) (*attendanceDatamodel.AttendanceRecord, error) {
	var rec attendanceDatamodel.AttendanceRecord
	if err := r.db.Where(query, args...).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) GetByUserAndDate(userID int64, date time.Time) (*attendanceDatamodel.AttendanceRecord, error) {
	return r.first("user_id = ? AND date = ?", userID, date)
}

func (r *AttendanceRepository) GetByID(id int64) (*attendanceDatamodel.AttendanceRecord, error) {
	return r.first("id = ?", id)
}

// CreateCheckIn relies on the (user_id, date) unique index.
func (r *AttendanceRepository) CreateCheckIn(rec *attendanceDatamodel.AttendanceRecord) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
	return result.RowsAffected == 1, result.Error
}

func (r *AttendanceRepository) SetCheckOut(id int64, stamp string) (bool, error) {
	result := r.db.Model(&attendanceDatamodel.AttendanceRecord{}).
		Where("id = ? AND check_out IS NULL", id).
		Update("check_out", stamp)
	return result.RowsAffected == 1, result.Error
}

func (r *AttendanceRepository) SetNote(id int64, note string) error {
	return r.db.Model(&attendanceDatamodel.AttendanceRecord{}).
		Where("id = ?", id).
		Update("note", note).Error
}

func (r *AttendanceRepository) ListBetween(userIDs []int64, from, to time.Time) ([]attendanceDatamodel.AttendanceRecord, error) {
	var rows []attendanceDatamodel.AttendanceRecord
	err := r.db.
		Where("user_id IN ? AND date BETWEEN ? AND ?", userIDs, from, to).
		Order("user_id ASC, date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *AttendanceRepository) DepartmentMembers(department string) ([]userDatamodel.User, error) {
	var users []userDatamodel.User
	err := r.db.Where("department = ?", department).Order("id ASC").Find(&users).Error
	return users, err
}
