package notice_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/frahmantamala/enterprise-admin/internal"
	noticeDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/notice"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/notice"
	noticePostgres "github.com/frahmantamala/enterprise-admin/internal/notice/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNotice(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notice Suite")
}

var _ = Describe("Summarize", func() {
	It("should append the marker to short content", func() {
		Expect(notice.Summarize("C")).To(Equal("C..."))
	})

	It("should cut long content at 100 characters", func() {
		long := strings.Repeat("公", 150)
		Expect(notice.Summarize(long)).To(Equal(strings.Repeat("公", 100) + "..."))
	})
})

var _ = Describe("Notice Handler Integration", func() {
	var (
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
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &noticeDatamodel.Notice{})).To(Succeed())
		Expect(db.Create(&userDatamodel.User{Username: "root", PasswordHash: "x", Role: coreUser.RoleAdmin}).Error).To(Succeed())

		service := notice.NewService(noticePostgres.NewNoticeRepository(db), slogger)
		handler := notice.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/notice/publish", handler.Publish)
		router.Post("/notice/delete/{id}", handler.Delete)
		router.Get("/notice/list", handler.List)
		router.Get("/notice/detail/{id}", handler.Detail)
	})

	It("should forbid non-admins from publishing", func() {
		code, body := do(employee, http.MethodPost, "/notice/publish", `{"title":"T","content":"C"}`)
		Expect(code).To(Equal(http.StatusForbidden))
		Expect(body["status"]).To(Equal("error"))
	})

	It("should publish and list a truncated summary", func() {
		code, body := do(admin, http.MethodPost, "/notice/publish", `{"title":"T","content":"C"}`)
		Expect(code).To(Equal(http.StatusOK))
		Expect(body["notice_id"]).To(BeNumerically(">", 0))

		code, body = do(nil, http.MethodGet, "/notice/list", "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body["total"]).To(BeNumerically("==", 1))
		Expect(body["pages"]).To(BeNumerically("==", 1))
		Expect(body["current_page"]).To(BeNumerically("==", 1))
		notices := body["notices"].([]interface{})
		Expect(notices).To(HaveLen(1))
		first := notices[0].(map[string]interface{})
		Expect(first["content"]).To(Equal("C..."))
		Expect(first["created_by"]).To(Equal("root"))
	})

	It("should page newest first", func() {
		for _, title := range []string{"one", "two", "three"} {
			code, _ := do(admin, http.MethodPost, "/notice/publish", `{"title":"`+title+`","content":"body"}`)
			Expect(code).To(Equal(http.StatusOK))
		}

		_, body := do(nil, http.MethodGet, "/notice/list?page=1&per_page=2", "")
		Expect(body["pages"]).To(BeNumerically("==", 2))
		notices := body["notices"].([]interface{})
		Expect(notices).To(HaveLen(2))
		Expect(notices[0].(map[string]interface{})["title"]).To(Equal("three"))

		_, body = do(nil, http.MethodGet, "/notice/list?page=2&per_page=2", "")
		notices = body["notices"].([]interface{})
		Expect(notices).To(HaveLen(1))
		Expect(notices[0].(map[string]interface{})["title"]).To(Equal("one"))
	})

	It("should reject a non-numeric page", func() {
		code, _ := do(nil, http.MethodGet, "/notice/list?page=abc", "")
		Expect(code).To(Equal(http.StatusBadRequest))
	})

	It("should show full content in detail and delete it", func() {
		long := strings.Repeat("x", 150)
		_, body := do(admin, http.MethodPost, "/notice/publish", `{"title":"Long","content":"`+long+`"}`)
		id := int64(body["notice_id"].(float64))
		path := "/notice/detail/" + strconv.FormatInt(id, 10)

		code, body := do(nil, http.MethodGet, path, "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body["notice"].(map[string]interface{})["content"]).To(Equal(long))

		code, _ = do(admin, http.MethodPost, "/notice/delete/"+strconv.FormatInt(id, 10), "")
		Expect(code).To(Equal(http.StatusOK))

		code, _ = do(nil, http.MethodGet, path, "")
		Expect(code).To(Equal(http.StatusNotFound))

		code, _ = do(admin, http.MethodPost, "/notice/delete/"+strconv.FormatInt(id, 10), "")
		Expect(code).To(Equal(http.StatusNotFound))
	})

	It("should require title and content", func() {
		code, body := do(admin, http.MethodPost, "/notice/publish", `{"title":" "}`)
		Expect(code).To(Equal(http.StatusBadRequest))
		Expect(body["message"]).To(ContainSubstring("title is required"))
	})
})
