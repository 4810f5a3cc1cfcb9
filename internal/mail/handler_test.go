package mail_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/frahmantamala/enterprise-admin/internal"
	authPostgres "github.com/frahmantamala/enterprise-admin/internal/auth/postgres"
	mailDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/mail"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/enterprise-admin/internal/core/events"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/mail"
	mailPostgres "github.com/frahmantamala/enterprise-admin/internal/mail/postgres"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMail(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Mail Suite")
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) PublishSync(_ context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

var _ = Describe("Mail Handler Integration", func() {
	var (
		db        *gorm.DB
		router    chi.Router
		publisher *recordingPublisher
		alice     = &coreUser.Principal{UserID: 1, Username: "alice", Role: coreUser.RoleEmployee}
		bob       = &coreUser.Principal{UserID: 2, Username: "bob", Role: coreUser.RoleEmployee}
		carol     = &coreUser.Principal{UserID: 3, Username: "carol", Role: coreUser.RoleEmployee}
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
		Expect(db.AutoMigrate(&userDatamodel.User{}, &mailDatamodel.Mail{})).To(Succeed())
		for _, name := range []string{"alice", "bob", "carol"} {
			Expect(db.Create(&userDatamodel.User{Username: name, PasswordHash: "x", Role: coreUser.RoleEmployee}).Error).To(Succeed())
		}

		publisher = &recordingPublisher{}
		service := mail.NewService(mailPostgres.NewMailRepository(db), authPostgres.NewRepository(db), publisher, slogger)
		handler := mail.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/mail/send", handler.Send)
		router.Get("/mail/inbox", handler.Inbox)
		router.Get("/mail/sent", handler.Sent)
		router.Post("/mail/read/{id}", handler.MarkRead)
		router.Post("/mail/reply/{id}", handler.Reply)
	})

	Describe("send", func() {
		It("should deliver to the receiver inbox with the sender name", func() {
			code, body := do(alice, http.MethodPost, "/mail/send", `{"receiver_id":2,"subject":"Hi","content":"Hello bob"}`)
			Expect(code).To(Equal(http.StatusOK))
			Expect(body["mail_id"]).To(BeNumerically(">", 0))
			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeMailReceived))

			code, body = do(bob, http.MethodGet, "/mail/inbox", "")
			Expect(code).To(Equal(http.StatusOK))
			mails := body["mails"].([]interface{})
			Expect(mails).To(HaveLen(1))
			first := mails[0].(map[string]interface{})
			Expect(first["sender_username"]).To(Equal("alice"))
			Expect(first["is_read"]).To(BeFalse())

			_, body = do(alice, http.MethodGet, "/mail/sent", "")
			sent := body["mails"].([]interface{})
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].(map[string]interface{})["receiver_username"]).To(Equal("bob"))
		})

		It("should require receiver, subject and content", func() {
			code, body := do(alice, http.MethodPost, "/mail/send", `{}`)
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(body["status"]).To(Equal("error"))
			Expect(body["message"]).To(ContainSubstring("receiver_id is required"))
			Expect(body["message"]).To(ContainSubstring("subject is required"))
			Expect(body["message"]).To(ContainSubstring("content is required"))
		})

		It("should return 404 for an unknown receiver", func() {
			code, _ := do(alice, http.MethodPost, "/mail/send", `{"receiver_id":99,"subject":"Hi","content":"x"}`)
			Expect(code).To(Equal(http.StatusNotFound))
		})

		It("should return 401 without a principal", func() {
			code, _ := do(nil, http.MethodPost, "/mail/send", `{"receiver_id":2,"subject":"Hi","content":"x"}`)
			Expect(code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("read and reply", func() {
		var mailID int64

		BeforeEach(func() {
			_, body := do(alice, http.MethodPost, "/mail/send", `{"receiver_id":2,"subject":"Plan","content":"Ready?"}`)
			mailID = int64(body["mail_id"].(float64))
		})

		path := func(prefix string) string {
			return prefix + strconv.FormatInt(mailID, 10)
		}

		It("should let the receiver mark it read", func() {
			code, _ := do(bob, http.MethodPost, path("/mail/read/"), "")
			Expect(code).To(Equal(http.StatusOK))

			var m mailDatamodel.Mail
			Expect(db.First(&m, mailID).Error).To(Succeed())
			Expect(m.IsRead).To(BeTrue())
		})

		It("should forbid anyone else from marking it read", func() {
			code, _ := do(carol, http.MethodPost, path("/mail/read/"), "")
			Expect(code).To(Equal(http.StatusForbidden))
		})

		It("should return 404 for unknown mail", func() {
			code, _ := do(bob, http.MethodPost, "/mail/read/999", "")
			Expect(code).To(Equal(http.StatusNotFound))
		})

		It("should reply to the sender and flag the original", func() {
			code, body := do(bob, http.MethodPost, path("/mail/reply/"), `{"content":"Yes"}`)
			Expect(code).To(Equal(http.StatusOK))
			replyID := int64(body["mail_id"].(float64))

			var reply, original mailDatamodel.Mail
			Expect(db.First(&reply, replyID).Error).To(Succeed())
			Expect(reply.Subject).To(Equal("Re: Plan"))
			Expect(reply.ReceiverID).To(Equal(alice.UserID))
			Expect(reply.IsReply).To(BeFalse())

			Expect(db.First(&original, mailID).Error).To(Succeed())
			Expect(original.IsReply).To(BeTrue())
		})

		It("should require reply content", func() {
			code, _ := do(bob, http.MethodPost, path("/mail/reply/"), `{}`)
			Expect(code).To(Equal(http.StatusBadRequest))
		})

		It("should forbid replies from someone other than the receiver", func() {
			code, _ := do(alice, http.MethodPost, path("/mail/reply/"), `{"content":"me again"}`)
			Expect(code).To(Equal(http.StatusForbidden))
		})
	})
})
