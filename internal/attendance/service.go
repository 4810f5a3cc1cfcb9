package attendance

import (
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	attendanceDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
)

var (
	ErrRecordNotFound   = internal.NewNotFoundError("attendance record not found", internal.ErrCodeAttendanceNotFound)
	ErrAlreadyCompleted = internal.NewValidationError("already checked in and out today", internal.ErrCodeAlreadyCompleted)
)

type RepositoryAPI interface {
	// GetByUserAndDate returns nil, nil when the user has no record that day.
	GetByUserAndDate(userID int64, date time.Time) (*attendanceDatamodel.AttendanceRecord, error)
	// CreateCheckIn reports false when a record for the day already exists.
	CreateCheckIn(r *attendanceDatamodel.AttendanceRecord) (bool, error)
	// SetCheckOut reports false when the record was already checked out.
	SetCheckOut(id int64, stamp string) (bool, error)
	GetByID(id int64) (*attendanceDatamodel.AttendanceRecord, error)
	SetNote(id int64, note string) error
	ListBetween(userIDs []int64, from, to time.Time) ([]attendanceDatamodel.AttendanceRecord, error)
	DepartmentMembers(department string) ([]userDatamodel.User, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CheckInOrOut advances today's record: the first call checks in, the
// second checks out and any further call fails.
func (s *Service) CheckInOrOut(p *coreUser.Principal) (*CheckResult, error) {
	now := s.now()
	today := validation.DateOf(now)
	stamp := now.Format(validation.TimeLayout)

	record, err := s.repo.GetByUserAndDate(p.UserID, today)
	if err != nil {
		s.logger.Error("failed to load attendance", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to record attendance", err)
	}

	if record == nil {
		created, err := s.repo.CreateCheckIn(&attendanceDatamodel.AttendanceRecord{
			UserID:  p.UserID,
			Date:    today,
			CheckIn: &stamp,
		})
		if err != nil {
			s.logger.Error("failed to check in", "error", err, "user_id", p.UserID)
			return nil, internal.NewInternalError("failed to record attendance", err)
		}
		if created {
			s.logger.Info("checked in", "user_id", p.UserID, "time", stamp)
			return &CheckResult{Action: ActionCheckIn, Time: stamp}, nil
		}
		// A concurrent call created the record; treat this one as the check-out.
		record, err = s.repo.GetByUserAndDate(p.UserID, today)
		if err != nil || record == nil {
			return nil, internal.NewInternalError("failed to record attendance", err)
		}
	}

	if record.CheckIn == nil || record.CheckOut != nil {
		return nil, ErrAlreadyCompleted
	}

	updated, err := s.repo.SetCheckOut(record.ID, stamp)
	if err != nil {
		s.logger.Error("failed to check out", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to record attendance", err)
	}
	if !updated {
		return nil, ErrAlreadyCompleted
	}

	s.logger.Info("checked out", "user_id", p.UserID, "time", stamp)
	return &CheckResult{Action: ActionCheckOut, Time: stamp}, nil
}

// ListPersonal returns the caller's records for a month, oldest first.
// Zero year or month mean the current one.
func (s *Service) ListPersonal(p *coreUser.Principal, year, month int) ([]Record, error) {
	from, to, err := s.monthRange(year, month)
	if err != nil {
		return nil, err
	}

	rows, rerr := s.repo.ListBetween([]int64{p.UserID}, from, to)
	if rerr != nil {
		s.logger.Error("failed to list attendance", "error", rerr, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to list attendance", rerr)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

// ListDepartment groups a month of records by username. Every member of
// the department gets a key, even without records.
func (s *Service) ListDepartment(p *coreUser.Principal, department string, year, month int) (map[string][]Record, error) {
	if !p.IsAdmin() {
		s.logger.Warn("department attendance denied: admin required", "user_id", p.UserID, "role", p.Role)
		return nil, internal.ErrForbidden
	}
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, internal.NewValidationFieldError(departmentParameter, "department is required", internal.ErrCodeMissingField)
	}
	from, to, err := s.monthRange(year, month)
	if err != nil {
		return nil, err
	}

	members, rerr := s.repo.DepartmentMembers(department)
	if rerr != nil {
		s.logger.Error("failed to list department members", "error", rerr, "department", department)
		return nil, internal.NewInternalError("failed to list attendance", rerr)
	}

	result := make(map[string][]Record, len(members))
	if len(members) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(members))
	names := make(map[int64]string, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
		names[m.ID] = m.Username
		result[m.Username] = []Record{}
	}

	rows, rerr := s.repo.ListBetween(ids, from, to)
	if rerr != nil {
		s.logger.Error("failed to list department attendance", "error", rerr, "department", department)
		return nil, internal.NewInternalError("failed to list attendance", rerr)
	}
	for _, row := range rows {
		name := names[row.UserID]
		result[name] = append(result[name], FromDataModel(row))
	}
	return result, nil
}

func (s *Service) AddNote(p *coreUser.Principal, recordID int64, note string) error {
	if !p.IsAdmin() {
		s.logger.Warn("add attendance note denied: admin required", "user_id", p.UserID, "role", p.Role)
		return internal.ErrForbidden
	}
	if strings.TrimSpace(note) == "" {
		return internal.NewValidationFieldError("note", "note cannot be empty", internal.ErrCodeMissingField)
	}

	record, err := s.repo.GetByID(recordID)
	if err != nil {
		s.logger.Error("failed to get attendance record", "error", err, "record_id", recordID)
		return internal.NewInternalError("failed to add note", err)
	}
	if record == nil {
		return ErrRecordNotFound
	}

	if err := s.repo.SetNote(recordID, note); err != nil {
		s.logger.Error("failed to store attendance note", "error", err, "record_id", recordID)
		return internal.NewInternalError("failed to add note", err)
	}
	s.logger.Info("attendance note added", "record_id", recordID, "user_id", p.UserID)
	return nil
}

// monthRange returns the first and last day of a month as UTC midnights.
func (s *Service) monthRange(year, month int) (time.Time, time.Time, *internal.AppError) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if err := validation.Year("year", year); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := validation.Month("month", month); err != nil {
		return time.Time{}, time.Time{}, err
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1), nil
}
