package leave

import (
	"time"

	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	leaveDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/leave"
)

type Request struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	LeaveType   string `json:"leave_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Duration    int    `json:"duration"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at"`
	ApprovedBy  string `json:"approved_by"`
	ApprovedAt  string `json:"approved_at"`
}

// DurationDays counts both the first and the last day.
func DurationDays(start, end time.Time) int {
	return int(validation.DateOf(end).Sub(validation.DateOf(start)).Hours()/24) + 1
}

func FromView(v leaveDatamodel.View) Request {
	out := Request{
		ID:          v.ID,
		UserID:      v.UserID,
		Username:    approval.UsernameOr(v.Username, approval.UnknownUser),
		LeaveType:   v.LeaveType,
		StartDate:   validation.FormatDate(v.StartDate),
		EndDate:     validation.FormatDate(v.EndDate),
		Duration:    DurationDays(v.StartDate, v.EndDate),
		Reason:      v.Reason,
		Status:      v.Status,
		SubmittedAt: validation.FormatTimestamp(v.SubmittedAt),
		ApprovedBy:  approval.NotApproved,
		ApprovedAt:  approval.NotApproved,
	}
	if v.ApprovedBy != nil {
		out.ApprovedBy = approval.UsernameOr(v.ApproverUsername, approval.NotApproved)
	}
	if v.ApprovedAt != nil {
		out.ApprovedAt = validation.FormatTimestamp(*v.ApprovedAt)
	}
	return out
}

func fromViews(rows []leaveDatamodel.View) []Request {
	out := make([]Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromView(row))
	}
	return out
}
