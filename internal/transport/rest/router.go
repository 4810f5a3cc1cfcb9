package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/enterprise-admin/internal/attendance"
	"github.com/frahmantamala/enterprise-admin/internal/auth"
	"github.com/frahmantamala/enterprise-admin/internal/leave"
	"github.com/frahmantamala/enterprise-admin/internal/mail"
	"github.com/frahmantamala/enterprise-admin/internal/metrics"
	"github.com/frahmantamala/enterprise-admin/internal/notice"
	"github.com/frahmantamala/enterprise-admin/internal/project"
	"github.com/frahmantamala/enterprise-admin/internal/reimbursement"
	"github.com/frahmantamala/enterprise-admin/internal/transport/middleware"
	"github.com/frahmantamala/enterprise-admin/internal/transport/swagger"
	"github.com/frahmantamala/enterprise-admin/internal/user"
	"github.com/frahmantamala/enterprise-admin/internal/worklog"
	"github.com/go-chi/chi"
)

const OpenAPIPath = "./api/openapi.yml"

type Handlers struct {
	Health        *HealthHandler
	Auth          *auth.Handler
	User          *user.Handler
	Project       *project.Handler
	Mail          *mail.Handler
	Notice        *notice.Handler
	Reimbursement *reimbursement.Handler
	Leave         *leave.Handler
	Attendance    *attendance.Handler
	WorkLog       *worklog.Handler
}

type Options struct {
	AllowedOrigins string
	MetricsEnabled bool
	MetricsPath    string
}

func RegisterAllRoutes(router chi.Router, h Handlers, opts Options, logger *slog.Logger) {
	rbac := auth.NewRBACAuthorization(logger)

	quiet := []string{"/swagger/", "/openapi.yml"}
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	if opts.MetricsEnabled {
		router.Use(metrics.InstrumentHandler(opts.MetricsPath))
		quiet = append(quiet, opts.MetricsPath)
	}
	router.Use(middleware.Logging(quiet...))

	if opts.MetricsEnabled {
		router.Handle(opts.MetricsPath, metrics.Handler())
	}

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, OpenAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", h.Health.Health)
	router.Get("/ping", h.Health.Ping)

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)
	router.Post("/auth/logout", h.Auth.Logout)

	router.Get("/notice/list", h.Notice.List)
	router.Get("/notice/detail/{id}", h.Notice.Detail)

	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.SessionMiddleware)
		admin := rbac.RequireAdmin()
		approver := rbac.RequireManagerOrAdmin()

		pr.Get("/auth/me", h.Auth.Me)

		pr.Route("/user", func(r chi.Router) {
			r.Get("/me", h.User.GetCurrentUser)
			r.Post("/update", h.User.UpdateProfile)
			r.Post("/change_password", h.User.ChangePassword)
			r.With(admin).Get("/list", h.User.ListUsers)
			r.With(admin).Get("/detail/{id}", h.User.GetUser)
			r.With(admin).Post("/admin/update/{id}", h.User.AdminUpdate)
		})

		pr.Route("/project", func(r chi.Router) {
			r.With(approver).Post("/create", h.Project.Create)
			r.Post("/{id}/members", h.Project.AddMember)
			r.Get("/my_projects", h.Project.MyProjects)
			r.Get("/detail/{id}", h.Project.Detail)
		})

		pr.Route("/mail", func(r chi.Router) {
			r.Post("/send", h.Mail.Send)
			r.Post("/reply/{id}", h.Mail.Reply)
			r.Post("/read/{id}", h.Mail.MarkRead)
			r.Get("/inbox", h.Mail.Inbox)
			r.Get("/sent", h.Mail.Sent)
		})

		pr.With(admin).Post("/notice/publish", h.Notice.Publish)
		pr.With(admin).Post("/notice/delete/{id}", h.Notice.Delete)

		pr.Route("/reimbursement", func(r chi.Router) {
			r.Post("/submit", h.Reimbursement.Submit)
			r.Post("/approve/{id}", h.Reimbursement.Approve)
			r.Get("/my_requests", h.Reimbursement.MyRequests)
			r.With(approver).Get("/pending", h.Reimbursement.Pending)
			r.With(admin).Get("/all", h.Reimbursement.All)
			r.Get("/detail/{id}", h.Reimbursement.Detail)
		})

		pr.Route("/leave", func(r chi.Router) {
			r.Post("/submit", h.Leave.Submit)
			r.With(approver).Post("/approve/{id}", h.Leave.Approve)
			r.Get("/my_requests", h.Leave.MyRequests)
			r.With(approver).Get("/pending", h.Leave.Pending)
			r.With(approver).Get("/all", h.Leave.All)
			r.Get("/detail/{id}", h.Leave.Detail)
		})

		pr.Route("/attendance", func(r chi.Router) {
			r.Post("/check", h.Attendance.Check)
			r.With(admin).Post("/add_note/{id}", h.Attendance.AddNote)
			r.Get("/personal", h.Attendance.Personal)
			r.With(admin).Get("/department", h.Attendance.Department)
		})

		pr.Route("/log", func(r chi.Router) {
			r.Post("/submit", h.WorkLog.Submit)
			r.Post("/update/{id}", h.WorkLog.Update)
			r.Get("/my_logs", h.WorkLog.MyLogs)
			r.With(admin).Get("/all", h.WorkLog.All)
			r.With(approver).Get("/team_stats", h.WorkLog.TeamStats)
		})
	})
}
