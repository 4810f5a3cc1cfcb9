package reimbursement_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	authPostgres "github.com/frahmantamala/enterprise-admin/internal/auth/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	projectDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/project"
	reimbursementDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/reimbursement"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/project"
	projectPostgres "github.com/frahmantamala/enterprise-admin/internal/project/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/reimbursement"
	reimbursementPostgres "github.com/frahmantamala/enterprise-admin/internal/reimbursement/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Reimbursement Handler Integration", func() {
	var (
		router    chi.Router
		projectID int64
		admin     = &coreUser.Principal{UserID: 1, Username: "root", Role: coreUser.RoleAdmin}
		manager   = &coreUser.Principal{UserID: 2, Username: "mgr", Role: coreUser.RoleManager}
		employee  = &coreUser.Principal{UserID: 3, Username: "alice", Role: coreUser.RoleEmployee}
		outsider  = &coreUser.Principal{UserID: 4, Username: "bob", Role: coreUser.RoleManager}
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
		Expect(db.AutoMigrate(
			&userDatamodel.User{},
			&projectDatamodel.Project{},
			&projectDatamodel.ProjectMember{},
			&reimbursementDatamodel.Reimbursement{},
		)).To(Succeed())

		for _, u := range []*coreUser.Principal{admin, manager, employee, outsider} {
			Expect(db.Create(&userDatamodel.User{Username: u.Username, PasswordHash: "x", Role: u.Role}).Error).To(Succeed())
		}

		projectRepo := projectPostgres.NewProjectRepository(db)
		proj := &projectDatamodel.Project{Name: "Apollo", CreatedBy: manager.UserID, CreatedAt: time.Now()}
		Expect(projectRepo.Create(proj, coreUser.ProjectOwnerRole)).To(Succeed())
		projectID = proj.ID

		projects := project.NewService(projectRepo, authPostgres.NewRepository(db), slogger)
		service := reimbursement.NewService(reimbursementPostgres.NewReimbursementRepository(db), projects, nil, nil, slogger)
		handler := reimbursement.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/reimbursement/submit", handler.Submit)
		router.Get("/reimbursement/my_requests", handler.MyRequests)
		router.Get("/reimbursement/pending", handler.Pending)
		router.Post("/reimbursement/approve/{id}", handler.Approve)
		router.Get("/reimbursement/all", handler.All)
		router.Get("/reimbursement/detail/{id}", handler.Detail)
	})

	submit := func() int64 {
		body := `{"project_id":` + strconv.FormatInt(projectID, 10) + `,"amount":100.50,"purpose":"travel"}`
		code, out := do(employee, http.MethodPost, "/reimbursement/submit", body)
		Expect(code).To(Equal(http.StatusOK))
		return int64(out["reimbursement_id"].(float64))
	}

	It("should walk a request from submission to approval", func() {
		id := submit()
		path := strconv.FormatInt(id, 10)

		code, out := do(outsider, http.MethodGet, "/reimbursement/pending", "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(out["requests"]).To(BeEmpty())

		_, out = do(manager, http.MethodGet, "/reimbursement/pending", "")
		pending := out["requests"].([]interface{})
		Expect(pending).To(HaveLen(1))
		first := pending[0].(map[string]interface{})
		Expect(first["project_name"]).To(Equal("Apollo"))
		Expect(first["username"]).To(Equal("alice"))
		Expect(first["amount"]).To(BeNumerically("==", 100.5))
		Expect(first["approved_by"]).To(Equal(approval.NotApproved))

		code, _ = do(outsider, http.MethodPost, "/reimbursement/approve/"+path, `{"action":"approve"}`)
		Expect(code).To(Equal(http.StatusForbidden))

		code, out = do(admin, http.MethodPost, "/reimbursement/approve/"+path, `{"action":"approve"}`)
		Expect(code).To(Equal(http.StatusOK))
		Expect(out["status"]).To(Equal("success"))
		Expect(out["request_status"]).To(Equal("approved"))

		code, out = do(manager, http.MethodPost, "/reimbursement/approve/"+path, `{"action":"reject"}`)
		Expect(code).To(Equal(http.StatusConflict))
		Expect(out["code"]).To(Equal(string(internal.ErrCodeAlreadyProcessed)))

		_, out = do(employee, http.MethodGet, "/reimbursement/detail/"+path, "")
		request := out["request"].(map[string]interface{})
		Expect(request["status"]).To(Equal("approved"))
		Expect(request["approved_by"]).To(Equal("root"))
		Expect(request["approved_at"]).NotTo(Equal(approval.NotApproved))
	})

	It("should return not found for a missing project", func() {
		code, _ := do(employee, http.MethodPost, "/reimbursement/submit", `{"project_id":99,"amount":"5","purpose":"x"}`)
		Expect(code).To(Equal(http.StatusNotFound))
	})

	It("should list own requests newest first", func() {
		first := submit()
		second := submit()

		_, out := do(employee, http.MethodGet, "/reimbursement/my_requests", "")
		requests := out["requests"].([]interface{})
		Expect(requests).To(HaveLen(2))
		Expect(requests[0].(map[string]interface{})["id"]).To(BeNumerically("==", second))
		Expect(requests[1].(map[string]interface{})["id"]).To(BeNumerically("==", first))
	})

	It("should restrict the full list to admins", func() {
		submit()
		code, _ := do(manager, http.MethodGet, "/reimbursement/all", "")
		Expect(code).To(Equal(http.StatusForbidden))

		code, out := do(admin, http.MethodGet, "/reimbursement/all", "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(out["requests"]).To(HaveLen(1))
	})

	It("should reject an invalid path id", func() {
		code, _ := do(admin, http.MethodGet, "/reimbursement/detail/abc", "")
		Expect(code).To(Equal(http.StatusBadRequest))
	})
})
