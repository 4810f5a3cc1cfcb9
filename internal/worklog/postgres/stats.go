package postgres

import (
	"strings"

	worklogDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/worklog"
	"github.com/frahmantamala/enterprise-admin/internal/worklog"
	"github.com/jmoiron/sqlx"
)

// StatsRepository runs the aggregation as plain SQL.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) worklog.StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) TeamStats(period worklog.Period) ([]worklogDatamodel.UserStat, error) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(`SELECT w.user_id, u.username, SUM(w.duration_hours) AS total_hours, COUNT(w.id) AS log_count
FROM work_logs w
JOIN users u ON u.id = w.user_id`)
	if period.From != nil {
		sb.WriteString("\nWHERE w.log_date >= ? AND w.log_date < ?")
		args = append(args, *period.From, *period.To)
	}
	sb.WriteString("\nGROUP BY w.user_id, u.username\nORDER BY w.user_id")

	rows := []worklogDatamodel.UserStat{}
	if err := r.db.Select(&rows, r.db.Rebind(sb.String()), args...); err != nil {
		return nil, err
	}
	return rows, nil
}
