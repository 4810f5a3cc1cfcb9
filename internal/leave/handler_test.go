package leave_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/frahmantamala/enterprise-admin/internal"
	leaveDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/leave"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/leave"
	leavePostgres "github.com/frahmantamala/enterprise-admin/internal/leave/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Leave Handler Integration", func() {
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
		Expect(db.AutoMigrate(&userDatamodel.User{}, &leaveDatamodel.LeaveRequest{})).To(Succeed())
		for _, u := range []*coreUser.Principal{admin, manager, employee} {
			Expect(db.Create(&userDatamodel.User{Username: u.Username, PasswordHash: "x", Role: u.Role}).Error).To(Succeed())
		}

		service := leave.NewService(leavePostgres.NewLeaveRepository(db), nil, nil, slogger)
		handler := leave.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/leave/submit", handler.Submit)
		router.Get("/leave/my_requests", handler.MyRequests)
		router.Get("/leave/pending", handler.Pending)
		router.Post("/leave/approve/{id}", handler.Approve)
		router.Get("/leave/all", handler.All)
		router.Get("/leave/detail/{id}", handler.Detail)
	})

	submit := func(start, end string) int64 {
		body := `{"leave_type":"annual","start_date":"` + start + `","end_date":"` + end + `","reason":"rest"}`
		code, out := do(employee, http.MethodPost, "/leave/submit", body)
		Expect(code).To(Equal(http.StatusOK))
		return int64(out["leave_id"].(float64))
	}

	It("should store dates and report the inclusive duration", func() {
		id := submit("2024-03-01", "2024-03-03")

		code, out := do(employee, http.MethodGet, "/leave/detail/"+strconv.FormatInt(id, 10), "")
		Expect(code).To(Equal(http.StatusOK))
		request := out["request"].(map[string]interface{})
		Expect(request["duration"]).To(BeNumerically("==", 3))
		Expect(request["start_date"]).To(Equal("2024-03-01"))
		Expect(request["end_date"]).To(Equal("2024-03-03"))
		Expect(request["username"]).To(Equal("alice"))
	})

	It("should list pending requests oldest first", func() {
		first := submit("2024-03-01", "2024-03-01")
		second := submit("2024-04-01", "2024-04-02")

		_, out := do(manager, http.MethodGet, "/leave/pending", "")
		requests := out["requests"].([]interface{})
		Expect(requests).To(HaveLen(2))
		Expect(requests[0].(map[string]interface{})["id"]).To(BeNumerically("==", first))
		Expect(requests[1].(map[string]interface{})["id"]).To(BeNumerically("==", second))
	})

	It("should approve once and return conflict afterwards", func() {
		id := submit("2024-03-01", "2024-03-02")
		path := "/leave/approve/" + strconv.FormatInt(id, 10)

		code, _ := do(employee, http.MethodPost, path, `{"action":"approve"}`)
		Expect(code).To(Equal(http.StatusForbidden))

		code, out := do(manager, http.MethodPost, path, `{"action":"approve","comment":"ok"}`)
		Expect(code).To(Equal(http.StatusOK))
		Expect(out["request_status"]).To(Equal("approved"))

		code, _ = do(admin, http.MethodPost, path, `{"action":"reject"}`)
		Expect(code).To(Equal(http.StatusConflict))

		_, out = do(admin, http.MethodGet, "/leave/all", "")
		request := out["requests"].([]interface{})[0].(map[string]interface{})
		Expect(request["approved_by"]).To(Equal("mgr"))
	})

	It("should reject an end date before the start date", func() {
		code, out := do(employee, http.MethodPost, "/leave/submit",
			`{"leave_type":"sick","start_date":"2024-03-03","end_date":"2024-03-01","reason":"flu"}`)
		Expect(code).To(Equal(http.StatusBadRequest))
		Expect(out["status"]).To(Equal("error"))
	})

	It("should require a session", func() {
		code, out := do(nil, http.MethodGet, "/leave/my_requests", "")
		Expect(code).To(Equal(http.StatusUnauthorized))
		Expect(out["code"]).To(Equal(string(internal.ErrCodeNotLoggedIn)))
	})
})
