package worklog

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	worklogDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/worklog"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/shopspring/decimal"
)

var (
	ErrWorkLogNotFound = internal.NewNotFoundError("work log not found", internal.ErrCodeWorkLogNotFound)
	ErrDuplicateLog    = internal.NewValidationError("a work log already exists for this date", internal.ErrCodeDuplicate)
)

// Filter narrows a log listing. A nil UserID means every user.
type Filter struct {
	UserID *int64
	Period Period
}

// Changes carries the columns of a partial update. Nil fields are left alone.
type Changes struct {
	DurationHours *decimal.Decimal
	Content       *string
	CreatedAt     time.Time
}

type RepositoryAPI interface {
	// Create reports false when the user already has a log for that date.
	Create(w *worklogDatamodel.WorkLog) (bool, error)
	// GetByID returns nil, nil when the log does not exist.
	GetByID(id int64) (*worklogDatamodel.WorkLog, error)
	ExistsForDate(userID int64, date time.Time) (bool, error)
	Update(id int64, changes Changes) error
	List(filter Filter) ([]worklogDatamodel.View, error)
}

// StatsRepository aggregates hours per user over a period.
type StatsRepository interface {
	TeamStats(period Period) ([]worklogDatamodel.UserStat, error)
}

type Service struct {
	repo   RepositoryAPI
	stats  StatsRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, stats StatsRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		stats:  stats,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Submit(p *coreUser.Principal, dto SubmitDTO) (int64, error) {
	date, hours, verr := dto.Validate()
	if verr != nil {
		return 0, verr
	}

	exists, err := s.repo.ExistsForDate(p.UserID, date)
	if err != nil {
		s.logger.Error("failed to check existing work log", "error", err, "user_id", p.UserID)
		return 0, internal.NewInternalError("failed to submit work log", err)
	}
	if exists {
		return 0, ErrDuplicateLog
	}

	row := &worklogDatamodel.WorkLog{
		UserID:        p.UserID,
		LogDate:       date,
		DurationHours: hours,
		Content:       dto.Content,
		CreatedAt:     s.now().UTC(),
	}
	created, err := s.repo.Create(row)
	if err != nil {
		s.logger.Error("failed to store work log", "error", err, "user_id", p.UserID)
		return 0, internal.NewInternalError("failed to submit work log", err)
	}
	if !created {
		return 0, ErrDuplicateLog
	}

	s.logger.Info("work log submitted", "log_id", row.ID, "user_id", p.UserID, "hours", hours.String())
	return row.ID, nil
}

// Update is owner only and always refreshes created_at.
func (s *Service) Update(p *coreUser.Principal, logID int64, dto UpdateDTO) error {
	row, err := s.repo.GetByID(logID)
	if err != nil {
		s.logger.Error("failed to get work log", "error", err, "log_id", logID)
		return internal.NewInternalError("failed to update work log", err)
	}
	if row == nil {
		return ErrWorkLogNotFound
	}
	if row.UserID != p.UserID {
		s.logger.Warn("work log update denied: not the owner", "user_id", p.UserID, "log_id", logID)
		return internal.ErrForbidden
	}

	changes := Changes{Content: dto.Content, CreatedAt: s.now().UTC()}
	if dto.DurationHours.IsSet() {
		hours, verr := validation.WorkHours("duration_hours", dto.DurationHours)
		if verr != nil {
			return verr
		}
		changes.DurationHours = &hours
	}

	if err := s.repo.Update(logID, changes); err != nil {
		s.logger.Error("failed to update work log", "error", err, "log_id", logID)
		return internal.NewInternalError("failed to update work log", err)
	}
	s.logger.Info("work log updated", "log_id", logID, "user_id", p.UserID)
	return nil
}

func (s *Service) ListMine(p *coreUser.Principal, period Period) ([]Log, error) {
	userID := p.UserID
	return s.list(Filter{UserID: &userID, Period: period})
}

func (s *Service) ListAll(p *coreUser.Principal, filter Filter) ([]Log, error) {
	if !p.IsAdmin() {
		s.logger.Warn("list all work logs denied: admin required", "user_id", p.UserID, "role", p.Role)
		return nil, internal.ErrForbidden
	}
	return s.list(filter)
}

func (s *Service) TeamStats(p *coreUser.Principal, period Period) (*TeamStats, error) {
	if !p.IsManagerOrAdmin() {
		s.logger.Warn("team stats denied: manager or admin required", "user_id", p.UserID, "role", p.Role)
		return nil, internal.ErrForbidden
	}

	rows, err := s.stats.TeamStats(period)
	if err != nil {
		s.logger.Error("failed to aggregate work logs", "error", err, "period", period.Label)
		return nil, internal.NewInternalError("failed to load team statistics", err)
	}

	out := &TeamStats{Stats: make([]UserStat, 0, len(rows)), Period: period.Label}
	for _, row := range rows {
		out.Stats = append(out.Stats, fromStat(row))
	}
	return out, nil
}

// Period resolves query filters against the service clock.
func (s *Service) Period(year, month int, hasYear, hasMonth bool) (Period, error) {
	return PeriodOf(year, month, hasYear, hasMonth, s.now())
}

func (s *Service) list(filter Filter) ([]Log, error) {
	rows, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list work logs", "error", err)
		return nil, internal.NewInternalError("failed to list work logs", err)
	}
	out := make([]Log, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromView(row))
	}
	return out, nil
}
