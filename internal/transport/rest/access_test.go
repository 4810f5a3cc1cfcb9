package rest_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/auth"
	noticeDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/notice"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/notice"
	noticePostgres "github.com/frahmantamala/enterprise-admin/internal/notice/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/frahmantamala/enterprise-admin/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// tokenSessions resolves fixed bearer tokens to principals.
type tokenSessions struct {
	principals map[string]*coreUser.Principal
}

func (s *tokenSessions) Register(auth.RegisterDTO) (*userDatamodel.User, error) {
	return nil, internal.ErrForbidden
}

func (s *tokenSessions) Login(context.Context, auth.LoginDTO) (*auth.LoginResult, error) {
	return nil, internal.ErrInvalidCredentials
}

func (s *tokenSessions) Logout(context.Context, string) error {
	return nil
}

func (s *tokenSessions) Resolve(_ context.Context, token string) (*coreUser.Principal, error) {
	if token == "" {
		return nil, internal.ErrNotLoggedIn
	}
	p, ok := s.principals[token]
	if !ok {
		return nil, internal.ErrInvalidSession
	}
	return p, nil
}

func (s *tokenSessions) CurrentUser(*coreUser.Principal) (*auth.Profile, error) {
	return nil, internal.ErrUserNotFound
}

var _ = Describe("Route access", func() {
	var router *chi.Mux

	do := func(token, method, path, body string) (int, map[string]interface{}) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
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

		base := &transport.BaseHandler{Logger: slogger}
		sessions := &tokenSessions{principals: map[string]*coreUser.Principal{
			"admin-token":    {UserID: 1, Username: "root", Role: coreUser.RoleAdmin},
			"employee-token": {UserID: 2, Username: "alice", Role: coreUser.RoleEmployee},
		}}

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Health: rest.NewHealthHandler(map[string]rest.Check{}),
			Auth:   auth.NewHandler(base, sessions, auth.CookieOptions{}),
			Notice: notice.NewHandler(base, notice.NewService(noticePostgres.NewNoticeRepository(db), slogger)),
		}, rest.Options{AllowedOrigins: "*"}, slogger)
	})

	It("should serve notice reads without a session", func() {
		code, body := do("", http.MethodGet, "/notice/list", "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body["status"]).To(Equal("success"))

		code, _ = do("", http.MethodGet, "/notice/detail/99", "")
		Expect(code).To(Equal(http.StatusNotFound))
	})

	It("should require a session to publish", func() {
		code, body := do("", http.MethodPost, "/notice/publish", `{"title":"T","content":"C"}`)
		Expect(code).To(Equal(http.StatusUnauthorized))
		Expect(body["code"]).To(Equal("NOT_LOGGED_IN"))
	})

	It("should keep publishing admin only", func() {
		code, _ := do("employee-token", http.MethodPost, "/notice/publish", `{"title":"T","content":"C"}`)
		Expect(code).To(Equal(http.StatusForbidden))

		code, _ = do("admin-token", http.MethodPost, "/notice/publish", `{"title":"T","content":"C"}`)
		Expect(code).To(Equal(http.StatusOK))

		code, body := do("", http.MethodGet, "/notice/list", "")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body["notices"]).To(HaveLen(1))
	})

	It("should reject an unknown session on a protected route", func() {
		code, body := do("stale", http.MethodPost, "/notice/delete/1", "")
		Expect(code).To(Equal(http.StatusUnauthorized))
		Expect(body["code"]).To(Equal("INVALID_SESSION"))
	})
})
