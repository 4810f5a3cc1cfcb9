package attendance_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/attendance"
	attendancePostgres "github.com/frahmantamala/enterprise-admin/internal/attendance/postgres"
	attendanceDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Attendance Handler Integration", func() {
	var (
		db       *gorm.DB
		router   chi.Router
		admin    = &coreUser.Principal{UserID: 1, Username: "root", Role: coreUser.RoleAdmin}
		employee = &coreUser.Principal{UserID: 2, Username: "alice", Role: coreUser.RoleEmployee}
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
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &attendanceDatamodel.AttendanceRecord{})).To(Succeed())

		rnd := "RnD"
		Expect(db.Create(&userDatamodel.User{Username: "root", PasswordHash: "x", Role: coreUser.RoleAdmin}).Error).To(Succeed())
		Expect(db.Create(&userDatamodel.User{Username: "alice", PasswordHash: "x", Role: coreUser.RoleEmployee, Department: &rnd}).Error).To(Succeed())
		Expect(db.Create(&userDatamodel.User{Username: "bob", PasswordHash: "x", Role: coreUser.RoleEmployee, Department: &rnd}).Error).To(Succeed())

		service := attendance.NewService(attendancePostgres.NewAttendanceRepository(db), slogger)
		handler := attendance.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/attendance/check", handler.Check)
		router.Get("/attendance/personal", handler.Personal)
		router.Get("/attendance/department", handler.Department)
		router.Post("/attendance/add_note/{id}", handler.AddNote)
	})

	It("should fail the third check of the day", func() {
		code, out := do(employee, http.MethodPost, "/attendance/check", "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(out).To(HaveKey("check_in"))

		code, out = do(employee, http.MethodPost, "/attendance/check", "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(out).To(HaveKey("check_out"))

		code, out = do(employee, http.MethodPost, "/attendance/check", "")
		Expect(code).To(Equal(http.StatusBadRequest))
		Expect(out["message"]).To(Equal("already checked in and out today"))

		var count int64
		Expect(db.Model(&attendanceDatamodel.AttendanceRecord{}).Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))
	})

	It("should list the current month and annotate a note", func() {
		do(employee, http.MethodPost, "/attendance/check", "")

		_, out := do(employee, http.MethodGet, "/attendance/personal", "")
		records := out["records"].([]interface{})
		Expect(records).To(HaveLen(1))
		record := records[0].(map[string]interface{})
		Expect(record["status"]).To(Equal(attendance.StatusAbsent))
		Expect(record["check_out"]).To(BeNil())

		id := strconv.FormatInt(int64(record["id"].(float64)), 10)
		code, _ := do(employee, http.MethodPost, "/attendance/add_note/"+id, `{"note":"x"}`)
		Expect(code).To(Equal(http.StatusForbidden))

		code, _ = do(admin, http.MethodPost, "/attendance/add_note/"+id, `{"note":"late train"}`)
		Expect(code).To(Equal(http.StatusOK))

		_, out = do(employee, http.MethodGet, "/attendance/personal", "")
		record = out["records"].([]interface{})[0].(map[string]interface{})
		Expect(record["note"]).To(Equal("late train"))
	})

	It("should group department attendance by username", func() {
		do(employee, http.MethodPost, "/attendance/check", "")

		code, _ := do(admin, http.MethodGet, "/attendance/department", "")
		Expect(code).To(Equal(http.StatusBadRequest))

		code, out := do(admin, http.MethodGet, "/attendance/department?department=RnD", "")
		Expect(code).To(Equal(http.StatusOK))
		grouped := out["attendance"].(map[string]interface{})
		Expect(grouped).To(HaveKey("bob"))
		Expect(grouped["alice"]).To(HaveLen(1))
		Expect(grouped["bob"]).To(BeEmpty())
	})

	It("should reject a malformed month", func() {
		code, _ := do(employee, http.MethodGet, "/attendance/personal?month=march", "")
		Expect(code).To(Equal(http.StatusBadRequest))
	})

	It("should return not found for a missing record", func() {
		code, _ := do(admin, http.MethodPost, "/attendance/add_note/999", `{"note":"x"}`)
		Expect(code).To(Equal(http.StatusNotFound))
	})
})
