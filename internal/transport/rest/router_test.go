package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Rutuja-Parab/policyzen/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

type stubMounter struct{}

func (stubMounter) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
}

var openAPIPath = filepath.Join("..", "..", "..", "api", "openapi.yml")

var _ = Describe("Router", func() {
	var (
		router *chi.Mux
		mock   sqlmock.Sqlmock
		closer func() error
	)

	BeforeEach(func() {
		db, m, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).NotTo(HaveOccurred())
		mock, closer = m, db.Close

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, db, rest.Handlers{Policies: stubMounter{}}, rest.Options{
			AllowedOrigins: []string{"*"},
			OpenAPIPath:    openAPIPath,
		}, nil)
	})

	AfterEach(func() {
		_ = closer()
	})

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("should report healthy when the database answers", func() {
		mock.ExpectPing()

		w := serve("/api/health")
		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body).To(HaveKeyWithValue("status", "healthy"))
		Expect(body).To(HaveKey("timestamp"))
		Expect(body["components"]).To(HaveKey("database"))
	})

	It("should report unhealthy with 503 when the ping fails", func() {
		mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))

		w := serve("/api/health")
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"unhealthy"`))
		Expect(w.Body.String()).NotTo(ContainSubstring("connection refused"))
	})

	It("should describe the API at the prefix root", func() {
		w := serve("/api/")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(rest.APIName))
		Expect(w.Body.String()).To(ContainSubstring(rest.APIVersion))
	})

	It("should answer ping", func() {
		Expect(serve("/api/ping").Code).To(Equal(http.StatusOK))
	})

	It("should mount resource handlers under the prefix", func() {
		w := serve("/api/policies")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("[]"))
	})

	It("should skip handlers that were not provided", func() {
		Expect(serve("/api/employees").Code).To(Equal(http.StatusNotFound))
	})

	It("should serve the OpenAPI document", func() {
		w := serve("/openapi.yml")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("openapi: 3"))
	})

	It("should echo the trace id", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("X-Trace-ID", "trace-abc")
		router.ServeHTTP(w, req)
		Expect(w.Header().Get("X-Trace-ID")).To(Equal("trace-abc"))
	})
})

var _ = Describe("LoadOpenAPI", func() {
	It("should load and validate the shipped document", func() {
		doc, err := rest.LoadOpenAPI(context.Background(), openAPIPath)
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{
			"/auth/login",
			"/employees/{id}",
			"/policies/{id}/status",
			"/policies/expiring",
			"/dashboard/stats",
			"/search",
			"/audit-logs",
			"/health",
		} {
			Expect(doc.Paths.Value(path)).NotTo(BeNil(), path)
		}
	})

	It("should reject a document that does not parse", func() {
		dir := GinkgoT().TempDir()
		broken := filepath.Join(dir, "openapi.yml")
		Expect(os.WriteFile(broken, []byte("openapi: 3.0.3\ninfo: [\n"), 0o600)).To(Succeed())

		_, err := rest.LoadOpenAPI(context.Background(), broken)
		Expect(err).To(HaveOccurred())
	})
})
