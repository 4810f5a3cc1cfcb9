package worklog_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/enterprise-admin/internal"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	worklogDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/worklog"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/frahmantamala/enterprise-admin/internal/worklog"
	worklogPostgres "github.com/frahmantamala/enterprise-admin/internal/worklog/postgres"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Work Log Handler Integration", func() {
	var (
		router   chi.Router
		admin    = &coreUser.Principal{UserID: 1, Username: "root", Role: coreUser.RoleAdmin}
		manager  = &coreUser.Principal{UserID: 2, Username: "mgr", Role: coreUser.RoleManager}
		employee = &coreUser.Principal{UserID: 3, Username: "alice", Role: coreUser.RoleEmployee}
	)

	do := func(p *coreUser.Principal, method, path, body string) (int, map[string]interface{}) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if p != nil {
			req = req.WithContext(internal.ContextWithPrincipal(req.Context(), p))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var out map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&out)).To(Succeed())
		return w.Code, out
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&userDatamodel.User{}, &worklogDatamodel.WorkLog{})).To(Succeed())

		for _, p := range []*coreUser.Principal{admin, manager, employee} {
			Expect(db.Create(&userDatamodel.User{Username: p.Username, PasswordHash: "x", Role: p.Role}).Error).To(Succeed())
		}

		service := worklog.NewService(
			worklogPostgres.NewWorkLogRepository(db),
			worklogPostgres.NewStatsRepository(sqlx.NewDb(sqlDB, "sqlite3")),
			slogger,
		)
		handler := worklog.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/log/submit", handler.Submit)
		router.Post("/log/update/{id}", handler.Update)
		router.Get("/log/my_logs", handler.MyLogs)
		router.Get("/log/all", handler.All)
		router.Get("/log/team_stats", handler.TeamStats)
	})

	It("should submit, reject the duplicate and update", func() {
		code, out := do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-03-01","duration_hours":8,"content":"coding"}`)
		Expect(code).To(Equal(http.StatusOK))
		Expect(out["log_id"]).To(BeNumerically("==", 1))

		code, out = do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-03-01","duration_hours":"2","content":"again"}`)
		Expect(code).To(Equal(http.StatusBadRequest))
		Expect(out["message"]).To(Equal("a work log already exists for this date"))

		code, _ = do(manager, http.MethodPost, "/log/update/1", `{"content":"mine now"}`)
		Expect(code).To(Equal(http.StatusForbidden))

		code, _ = do(employee, http.MethodPost, "/log/update/1", `{"duration_hours":6.5}`)
		Expect(code).To(Equal(http.StatusOK))

		_, out = do(employee, http.MethodGet, "/log/my_logs", "")
		logs := out["logs"].([]interface{})
		Expect(logs).To(HaveLen(1))
		entry := logs[0].(map[string]interface{})
		Expect(entry["duration_hours"]).To(Equal(6.5))
		Expect(entry["content"]).To(Equal("coding"))
		Expect(entry["username"]).To(Equal("alice"))
	})

	It("should reject 25 hours", func() {
		code, out := do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-03-01","duration_hours":25,"content":"x"}`)
		Expect(code).To(Equal(http.StatusBadRequest))
		Expect(out["message"]).To(Equal("duration must be in (0,24]"))
	})

	It("should filter logs by period and order them newest first", func() {
		do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-02-28","duration_hours":4,"content":"a"}`)
		do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-03-02","duration_hours":5,"content":"b"}`)
		do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-03-05","duration_hours":6,"content":"c"}`)

		_, out := do(employee, http.MethodGet, "/log/my_logs?year=2024&month=3", "")
		logs := out["logs"].([]interface{})
		Expect(logs).To(HaveLen(2))
		Expect(logs[0].(map[string]interface{})["log_date"]).To(Equal("2024-03-05"))
		Expect(logs[1].(map[string]interface{})["log_date"]).To(Equal("2024-03-02"))
	})

	It("should restrict all logs to admins and filter by user", func() {
		do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-03-01","duration_hours":8,"content":"a"}`)
		do(manager, http.MethodPost, "/log/submit", `{"log_date":"2024-03-01","duration_hours":3,"content":"b"}`)

		code, _ := do(manager, http.MethodGet, "/log/all", "")
		Expect(code).To(Equal(http.StatusForbidden))

		_, out := do(admin, http.MethodGet, "/log/all", "")
		Expect(out["logs"]).To(HaveLen(2))

		_, out = do(admin, http.MethodGet, "/log/all?user_id=2", "")
		Expect(out["logs"]).To(HaveLen(1))

		code, _ = do(admin, http.MethodGet, "/log/all?user_id=abc", "")
		Expect(code).To(Equal(http.StatusBadRequest))
	})

	It("should aggregate team statistics", func() {
		do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-03-01","duration_hours":8,"content":"a"}`)
		do(employee, http.MethodPost, "/log/submit", `{"log_date":"2024-03-02","duration_hours":2,"content":"b"}`)
		do(manager, http.MethodPost, "/log/submit", `{"log_date":"2023-12-31","duration_hours":5,"content":"c"}`)

		code, _ := do(employee, http.MethodGet, "/log/team_stats", "")
		Expect(code).To(Equal(http.StatusForbidden))

		code, out := do(manager, http.MethodGet, "/log/team_stats?year=2024", "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(out["period"]).To(Equal("2024"))
		stats := out["stats"].([]interface{})
		Expect(stats).To(HaveLen(1))
		row := stats[0].(map[string]interface{})
		Expect(row["username"]).To(Equal("alice"))
		Expect(row["total_hours"]).To(Equal(10.0))
		Expect(row["log_count"]).To(BeNumerically("==", 2))
		Expect(row["avg_hours_per_day"]).To(Equal(5.0))

		_, out = do(admin, http.MethodGet, "/log/team_stats", "")
		Expect(out["period"]).To(Equal("all time"))
		Expect(out["stats"]).To(HaveLen(2))
	})
})
