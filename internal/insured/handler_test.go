package insured_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/Rutuja-Parab/policyzen/internal/testsupport"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/Rutuja-Parab/policyzen/internal/vessel"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Handler Integration", func() {
	const companyID = "7f1c3a52-1d8e-4b7a-9a61-3c2f0e8d9b14"

	var (
		db     *gorm.DB
		router chi.Router
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var out map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&out)).To(Succeed())
		return out
	}

	BeforeEach(func() {
		var err error
		db, err = testsupport.OpenSQLite(&entity.Entity{}, &vessel.Vessel{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := vessel.NewService(db, uniqueness.NewGuard(slogger), nil, slogger)
		handler := vessel.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Route("/vessels", handler.Routes)
	})

	It("should create a vessel and its entity row", func() {
		w := do(http.MethodPost, "/vessels", `{"company_id":"`+companyID+`","vessel_name":"Sea Star","imo_number":"IMO1234567"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		body := decode(w)
		Expect(body["vessel_name"]).To(Equal("Sea Star"))
		Expect(body["status"]).To(Equal("ACTIVE"))
		Expect(body["id"]).NotTo(BeEmpty())

		var shadow entity.Entity
		Expect(db.Where("entity_id = ?", body["id"]).First(&shadow).Error).To(Succeed())
		Expect(shadow.Type).To(Equal(entity.TypeShip))
		Expect(*shadow.Description).To(Equal("Vessel: Sea Star"))
	})

	It("should answer a duplicate IMO number with 400 and a detail", func() {
		payload := `{"company_id":"` + companyID + `","vessel_name":"Sea Star","imo_number":"IMO1234567"}`
		Expect(do(http.MethodPost, "/vessels", payload).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodPost, "/vessels", payload)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["detail"]).To(Equal("IMO number already exists"))
	})

	It("should reject a payload missing required fields", func() {
		w := do(http.MethodPost, "/vessels", `{"company_id":"`+companyID+`"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		body := decode(w)
		Expect(body["errors"]).To(HaveLen(2))
	})

	It("should reject a malformed body", func() {
		w := do(http.MethodPost, "/vessels", `{"company_id":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 404 for unknown ids", func() {
		Expect(do(http.MethodGet, "/vessels/does-not-exist", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodDelete, "/vessels/does-not-exist", "").Code).To(Equal(http.StatusNotFound))

		w := do(http.MethodPut, "/vessels/does-not-exist", `{"company_id":"`+companyID+`","vessel_name":"X","imo_number":"IMO0000001"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(decode(w)["detail"]).To(Equal("Vessel not found"))
	})

	It("should update, list and delete", func() {
		created := decode(do(http.MethodPost, "/vessels", `{"company_id":"`+companyID+`","vessel_name":"Sea Star","imo_number":"IMO1234567"}`))
		id := created["id"].(string)

		w := do(http.MethodPut, "/vessels/"+id, `{"company_id":"`+companyID+`","vessel_name":"Sea Queen","imo_number":"IMO1234567"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["vessel_name"]).To(Equal("Sea Queen"))

		w = do(http.MethodGet, "/vessels?company_id="+companyID, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var list []map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list).To(HaveLen(1))

		w = do(http.MethodDelete, "/vessels/"+id, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["message"]).To(Equal("Vessel deleted"))

		var count int64
		Expect(db.Model(&entity.Entity{}).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	It("should return an empty array when nothing matches", func() {
		w := do(http.MethodGet, "/vessels", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(strings.TrimSpace(w.Body.String())).To(Equal("[]"))
	})
})
