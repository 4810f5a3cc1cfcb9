package notice

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	noticeDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/notice"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
)

var ErrNoticeNotFound = internal.NewNotFoundError("notice not found", internal.ErrCodeNoticeNotFound)

type RepositoryAPI interface {
	Create(n *noticeDatamodel.Notice) error
	// GetByID returns nil, nil when the notice does not exist.
	GetByID(id int64) (*noticeDatamodel.View, error)
	// Delete reports whether a row was removed.
	Delete(id int64) (bool, error)
	List(offset, limit int) ([]noticeDatamodel.View, int64, error)
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

func (s *Service) Publish(p *coreUser.Principal, dto PublishDTO) (int64, error) {
	if !p.IsAdmin() {
		s.logger.Warn("publish notice denied: admin required", "user_id", p.UserID, "role", p.Role)
		return 0, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	n := &noticeDatamodel.Notice{
		Title:     dto.Title,
		Content:   dto.Content,
		CreatedBy: p.UserID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to create notice", "error", err, "user_id", p.UserID)
		return 0, internal.NewInternalError("failed to publish notice", err)
	}

	s.logger.Info("notice published", "notice_id", n.ID, "user_id", p.UserID)
	return n.ID, nil
}

func (s *Service) Delete(p *coreUser.Principal, noticeID int64) error {
	if !p.IsAdmin() {
		s.logger.Warn("delete notice denied: admin required", "user_id", p.UserID, "role", p.Role)
		return internal.ErrForbidden
	}

	deleted, err := s.repo.Delete(noticeID)
	if err != nil {
		s.logger.Error("failed to delete notice", "error", err, "notice_id", noticeID)
		return internal.NewInternalError("failed to delete notice", err)
	}
	if !deleted {
		return ErrNoticeNotFound
	}

	s.logger.Info("notice deleted", "notice_id", noticeID, "user_id", p.UserID)
	return nil
}

// List pages notices newest first. Non-positive page or perPage fall back
// to the defaults; perPage is capped.
func (s *Service) List(page, perPage int) (*Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	rows, total, err := s.repo.List((page-1)*perPage, perPage)
	if err != nil {
		s.logger.Error("failed to list notices", "error", err, "page", page)
		return nil, internal.NewInternalError("failed to list notices", err)
	}

	out := &Page{
		Notices:     make([]Summary, 0, len(rows)),
		Total:       total,
		Pages:       (total + int64(perPage) - 1) / int64(perPage),
		CurrentPage: page,
	}
	for _, row := range rows {
		out.Notices = append(out.Notices, toSummary(row))
	}
	return out, nil
}

func (s *Service) Detail(noticeID int64) (*Detail, error) {
	row, err := s.repo.GetByID(noticeID)
	if err != nil {
		s.logger.Error("failed to get notice", "error", err, "notice_id", noticeID)
		return nil, internal.NewInternalError("failed to get notice", err)
	}
	if row == nil {
		return nil, ErrNoticeNotFound
	}
	return toDetail(row), nil
}
