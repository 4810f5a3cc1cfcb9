package attendance

import (
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	attendanceDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/attendance"
)

// Work window used for status derivation, as HH:MM:SS.
const (
	WorkStart = "09:00:00"
	WorkEnd   = "18:00:00"
)

const (
	StatusNormal        = "normal"
	StatusLate          = "late"
	StatusEarlyLeave    = "early_leave"
	StatusLateAndEarly  = "late+early_leave"
	StatusAbsent        = "absent"
	ActionCheckIn       = "check_in"
	ActionCheckOut      = "check_out"
	departmentParameter = "department"
)

type Record struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Note     *string `json:"note"`
	Status   string  `json:"status"`
}

// CheckResult reports which stamp a check call set.
type CheckResult struct {
	Action string
	Time   string
}

// StatusOf classifies a day against the work window. A missing stamp
// makes the day absent regardless of the other one.
func StatusOf(checkIn, checkOut *string) string {
	if checkIn == nil || checkOut == nil {
		return StatusAbsent
	}
	late := *checkIn > WorkStart
	early := *checkOut < WorkEnd
	switch {
	case late && early:
		return StatusLateAndEarly
	case late:
		return StatusLate
	case early:
		return StatusEarlyLeave
	}
	return StatusNormal
}

func FromDataModel(r attendanceDatamodel.AttendanceRecord) Record {
	return Record{
		ID:       r.ID,
		Date:     validation.FormatDate(r.Date),
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Note:     r.Note,
		Status:   StatusOf(r.CheckIn, r.CheckOut),
	}
}
