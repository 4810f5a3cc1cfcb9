package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal/auth"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	goredis "github.com/redis/go-redis/v9"
)

func TestRedisSessionStore(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Redis Session Store Suite")
}

// memoryRedis implements the three commands the store issues. Any other
// Cmdable method panics on the nil embedded interface.
type memoryRedis struct {
	goredis.Cmdable
	values  map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	raw, ok := value.([]byte)
	if !ok {
		return goredis.NewStatusResult("", errors.New("unexpected value type"))
	}
	m.values[key] = string(raw)
	m.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (m *memoryRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if m.failGet != nil {
		return goredis.NewStringResult("", m.failGet)
	}
	v, ok := m.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (m *memoryRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.values[k]; ok {
			delete(m.values, k)
			delete(m.ttls, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

var _ = ginkgo.Describe("SessionStore", func() {
	var (
		client *memoryRedis
		store  *SessionStore
		clock  = time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)
		ctx    = context.Background()
	)

	session := func() *auth.Session {
		return &auth.Session{
			ID:        "abc",
			UserID:    7,
			Username:  "alice",
			Role:      "employee",
			ExpiresAt: clock.Add(2 * time.Hour),
			CreatedAt: clock,
		}
	}

	ginkgo.BeforeEach(func() {
		client = newMemoryRedis()
		store = NewSessionStore(client, "session:")
		store.now = func() time.Time { return clock }
	})

	ginkgo.It("should expire the key with the session", func() {
		gomega.Expect(store.Create(ctx, session())).To(gomega.Succeed())
		gomega.Expect(client.ttls).To(gomega.HaveKeyWithValue("session:abc", 2*time.Hour))
	})

	ginkgo.It("should refuse a session that is already past its deadline", func() {
		sess := session()
		sess.ExpiresAt = clock
		gomega.Expect(store.Create(ctx, sess)).To(gomega.MatchError(gomega.ContainSubstring("already expired")))
		gomega.Expect(client.values).To(gomega.BeEmpty())
	})

	ginkgo.It("should store JSON and read back the same session", func() {
		gomega.Expect(store.Create(ctx, session())).To(gomega.Succeed())

		var rec map[string]interface{}
		gomega.Expect(json.Unmarshal([]byte(client.values["session:abc"]), &rec)).To(gomega.Succeed())
		gomega.Expect(rec).To(gomega.HaveKeyWithValue("username", "alice"))
		gomega.Expect(rec).To(gomega.HaveKeyWithValue("role", "employee"))

		got, err := store.Get(ctx, "abc")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(got.UserID).To(gomega.Equal(int64(7)))
		gomega.Expect(got.Username).To(gomega.Equal("alice"))
		gomega.Expect(got.ExpiresAt.Equal(clock.Add(2 * time.Hour))).To(gomega.BeTrue())
		gomega.Expect(got.CreatedAt.Equal(clock)).To(gomega.BeTrue())
	})

	ginkgo.It("should return nil for a missing key", func() {
		got, err := store.Get(ctx, "missing")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(got).To(gomega.BeNil())
	})

	ginkgo.It("should surface other redis errors", func() {
		client.failGet = errors.New("connection refused")
		_, err := store.Get(ctx, "abc")
		gomega.Expect(err).To(gomega.MatchError("connection refused"))
	})

	ginkgo.It("should fail on a corrupt value", func() {
		client.values["session:abc"] = "{not json"
		_, err := store.Get(ctx, "abc")
		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("decode session")))
	})

	ginkgo.It("should delete the key", func() {
		gomega.Expect(store.Create(ctx, session())).To(gomega.Succeed())
		gomega.Expect(store.Delete(ctx, "abc")).To(gomega.Succeed())

		got, err := store.Get(ctx, "abc")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(got).To(gomega.BeNil())
	})
})
