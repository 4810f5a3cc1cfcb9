package middleware

import (
	"net/http"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("redaction", func() {
	ginkgo.It("should mask sensitive JSON keys at any depth", func() {
		out := redactBody([]byte(`{"username":"alice","password":"p","nested":{"session_id":"s"},"list":[{"token":"t"}]}`))
		gomega.Expect(out).To(gomega.ContainSubstring(`"username":"alice"`))
		gomega.Expect(out).To(gomega.ContainSubstring(`"password":"[FILTERED]"`))
		gomega.Expect(out).To(gomega.ContainSubstring(`"session_id":"[FILTERED]"`))
		gomega.Expect(out).To(gomega.ContainSubstring(`"token":"[FILTERED]"`))
	})

	ginkgo.It("should mask sensitive headers", func() {
		h := http.Header{}
		h.Set("Authorization", "Bearer x")
		h.Set("Cookie", "enterprise_session=x")
		h.Set("Content-Type", "application/json")

		out := redactHeaders(h)
		gomega.Expect(out["Authorization"]).To(gomega.Equal(filtered))
		gomega.Expect(out["Cookie"]).To(gomega.Equal(filtered))
		gomega.Expect(out["Content-Type"]).To(gomega.Equal("application/json"))
	})

	ginkgo.It("should mask non-JSON bodies that mention secrets", func() {
		gomega.Expect(redactBody([]byte("password=hunter2"))).To(gomega.Equal(filtered))
		gomega.Expect(redactBody([]byte("hello"))).To(gomega.Equal("hello"))
	})
})
