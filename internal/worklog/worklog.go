package worklog

import (
	"fmt"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	worklogDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/worklog"
	"github.com/shopspring/decimal"
)

const (
	unknownUsername = "unknown"
	allTimeLabel    = "all time"
)

type Log struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Username      string  `json:"username"`
	LogDate       string  `json:"log_date"`
	DurationHours float64 `json:"duration_hours"`
	Content       string  `json:"content"`
	CreatedAt     string  `json:"created_at"`
}

type UserStat struct {
	UserID         int64   `json:"user_id"`
	Username       string  `json:"username"`
	TotalHours     float64 `json:"total_hours"`
	LogCount       int64   `json:"log_count"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}

type TeamStats struct {
	Stats  []UserStat `json:"stats"`
	Period string     `json:"period"`
}

// Period is a half-open date range [From, To). The zero value means all time.
type Period struct {
	From  *time.Time
	To    *time.Time
	Label string
}

// PeriodOf resolves optional year and month filters. A year alone selects
// the whole year; a month alone falls in the current year.
func PeriodOf(year, month int, hasYear, hasMonth bool, now time.Time) (Period, error) {
	if hasYear {
		if err := validation.Year("year", year); err != nil {
			return Period{}, err
		}
	}
	if hasMonth {
		if err := validation.Month("month", month); err != nil {
			return Period{}, err
		}
	}

	switch {
	case hasYear && hasMonth:
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return newPeriod(from, from.AddDate(0, 1, 0), fmt.Sprintf("%04d-%02d", year, month)), nil
	case hasYear:
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return newPeriod(from, from.AddDate(1, 0, 0), fmt.Sprintf("%04d", year)), nil
	case hasMonth:
		y := now.Year()
		from := time.Date(y, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return newPeriod(from, from.AddDate(0, 1, 0), fmt.Sprintf("%04d-%02d", y, month)), nil
	}
	return Period{Label: allTimeLabel}, nil
}

func newPeriod(from, to time.Time, label string) Period {
	return Period{From: &from, To: &to, Label: label}
}

func FromView(v worklogDatamodel.View) Log {
	username := unknownUsername
	if v.Username != nil {
		username = *v.Username
	}
	return Log{
		ID:            v.ID,
		UserID:        v.UserID,
		Username:      username,
		LogDate:       validation.FormatDate(v.LogDate),
		DurationHours: v.DurationHours.InexactFloat64(),
		Content:       v.Content,
		CreatedAt:     validation.FormatTimestamp(v.CreatedAt),
	}
}

func fromStat(s worklogDatamodel.UserStat) UserStat {
	out := UserStat{
		UserID:     s.UserID,
		Username:   s.Username,
		TotalHours: s.TotalHours.InexactFloat64(),
		LogCount:   s.LogCount,
	}
	if s.LogCount > 0 {
		out.AvgHoursPerDay = s.TotalHours.DivRound(decimal.NewFromInt(s.LogCount), 2).InexactFloat64()
	}
	return out
}
