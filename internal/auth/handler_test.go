package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal/auth"
	authPostgres "github.com/frahmantamala/enterprise-admin/internal/auth/postgres"
	sessionDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/session"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Auth Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *auth.Handler
		rbac    *auth.RBACAuthorization
		router  chi.Router
	)

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body
	}

	login := func(username, password string) *httptest.ResponseRecorder {
		payload := `{"username":"` + username + `","password":"` + password + `"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &sessionDatamodel.Session{})).To(Succeed())

		repo := authPostgres.NewRepository(db)
		hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.Create(&userDatamodel.User{Username: "root", PasswordHash: string(hash), Role: coreUser.RoleAdmin})).To(Succeed())
		Expect(repo.Create(&userDatamodel.User{Username: "alice", PasswordHash: string(hash), Role: coreUser.RoleEmployee})).To(Succeed())

		service := auth.NewService(repo, authPostgres.NewSessionStore(db),
			auth.NewJWTSigner("handler-test-secret-with-enough-length"), time.Hour, bcrypt.MinCost, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = auth.NewHandler(baseHandler, service, auth.CookieOptions{})
		rbac = auth.NewRBACAuthorization(slogger)

		router = chi.NewRouter()
		router.Post("/register", handler.Register)
		router.Post("/login", handler.Login)
		router.Post("/logout", handler.Logout)
		router.Group(func(r chi.Router) {
			r.Use(handler.SessionMiddleware)
			r.Get("/me", handler.Me)
			r.With(rbac.RequireAdmin()).Get("/admin-only", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})
	})

	It("should register a new user", func() {
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"bob","password":"pw"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		body := decode(w)
		Expect(body["status"]).To(Equal("success"))
		Expect(body["user_id"]).To(BeNumerically(">", 0))
	})

	It("should reject a duplicate username", func() {
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"alice","password":"pw"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		body := decode(w)
		Expect(body["status"]).To(Equal("error"))
		Expect(body["message"]).To(Equal("username already exists"))
	})

	It("should log in, set the session cookie and return the user summary", func() {
		w := login("root", "pw")

		Expect(w.Code).To(Equal(http.StatusOK))
		cookies := w.Result().Cookies()
		Expect(cookies).To(HaveLen(1))
		Expect(cookies[0].Name).To(Equal(auth.DefaultCookieName))
		Expect(cookies[0].HttpOnly).To(BeTrue())

		body := decode(w)
		Expect(body["token"]).To(Equal(cookies[0].Value))
		user := body["user"].(map[string]interface{})
		Expect(user["username"]).To(Equal("root"))
		Expect(user["role"]).To(Equal("admin"))
	})

	It("should return 401 on bad credentials", func() {
		w := login("root", "nope")

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(decode(w)["message"]).To(Equal("invalid username or password"))
	})

	It("should resolve the session from a cookie or a bearer token", func() {
		token := decode(login("alice", "pw"))["token"].(string)

		byCookie := httptest.NewRequest(http.MethodGet, "/me", nil)
		byCookie.AddCookie(&http.Cookie{Name: auth.DefaultCookieName, Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, byCookie)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["user"].(map[string]interface{})["username"]).To(Equal("alice"))

		byHeader := httptest.NewRequest(http.MethodGet, "/me", nil)
		byHeader.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, byHeader)
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("should return 401 without a session", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(decode(w)["code"]).To(Equal("NOT_LOGGED_IN"))
	})

	It("should return 403 when the role does not match", func() {
		token := decode(login("alice", "pw"))["token"].(string)

		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(decode(w)["message"]).To(Equal("permission denied"))
	})

	It("should end the session on logout", func() {
		token := decode(login("root", "pw"))["token"].(string)

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		var count int64
		Expect(db.Model(&sessionDatamodel.Session{}).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())

		me := httptest.NewRequest(http.MethodGet, "/me", nil)
		me.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, me)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should succeed on logout without a session", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
	})
})
