package reimbursement

import (
	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	reimbursementDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/reimbursement"
)

const unknownProject = "unknown project"

type Request struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	ProjectName string  `json:"project_name"`
	UserID      int64   `json:"user_id"`
	Username    string  `json:"username"`
	Amount      float64 `json:"amount"`
	Purpose     string  `json:"purpose"`
	Status      string  `json:"status"`
	SubmittedAt string  `json:"submitted_at"`
	ApprovedBy  string  `json:"approved_by"`
	ApprovedAt  string  `json:"approved_at"`
}

func FromView(v reimbursementDatamodel.View) Request {
	out := Request{
		ID:          v.ID,
		ProjectID:   v.ProjectID,
		ProjectName: approval.UsernameOr(v.ProjectName, unknownProject),
		UserID:      v.UserID,
		Username:    approval.UsernameOr(v.Username, approval.UnknownUser),
		Amount:      v.Amount.InexactFloat64(),
		Purpose:     v.Purpose,
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

func fromViews(rows []reimbursementDatamodel.View) []Request {
	out := make([]Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromView(row))
	}
	return out
}
