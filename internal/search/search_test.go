package search_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/employee"
	"github.com/Rutuja-Parab/policyzen/internal/endorsement"
	"github.com/Rutuja-Parab/policyzen/internal/policy"
	"github.com/Rutuja-Parab/policyzen/internal/search"
	"github.com/Rutuja-Parab/policyzen/internal/testsupport"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/Rutuja-Parab/policyzen/internal/vessel"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestSearch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Search Suite")
}

var _ = Describe("Searcher", func() {
	var (
		db       *gorm.DB
		searcher *search.Searcher
		ctx      context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = testsupport.OpenSQLite(
			&policy.Policy{},
			&endorsement.Endorsement{},
			&employee.Employee{},
			&vessel.Vessel{},
		)
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		searcher = search.NewSearcher(sqlx.NewDb(sqlDB, "sqlite3"), nil)
		ctx = context.Background()

		now := time.Now().UTC()
		companyID := uuid.NewString()
		policyID := uuid.NewString()

		Expect(db.Create(&policy.Policy{
			ID:            policyID,
			EntityID:      uuid.NewString(),
			PolicyNumber:  "POL-ABC123",
			InsuranceType: policy.InsuranceMarine,
			Provider:      "Oceanic Mutual",
			StartDate:     datamodel.NewDate(2025, 1, 1),
			EndDate:       datamodel.NewDate(2026, 1, 1),
			SumInsured:    decimal.NewFromInt(100000),
			PremiumAmount: decimal.NewFromInt(1200),
			Status:        policy.StatusActive,
			CreatedBy:     "agent-1",
			CreatedAt:     now,
			UpdatedAt:     now,
		}).Error).To(Succeed())

		Expect(db.Create(&endorsement.Endorsement{
			ID:                uuid.NewString(),
			PolicyID:          policyID,
			EndorsementNumber: "END-001",
			Description:       "Hull cover raised for abc123",
			EffectiveDate:     datamodel.NewDate(2025, 6, 1),
			CreatedBy:         "agent-1",
			CreatedAt:         now,
			UpdatedAt:         now,
		}).Error).To(Succeed())

		Expect(db.Create(&employee.Employee{
			ID:           uuid.NewString(),
			CompanyID:    companyID,
			EmployeeCode: "ABC123",
			Name:         "Asha Rao",
			Status:       datamodel.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}).Error).To(Succeed())

		Expect(db.Create(&vessel.Vessel{
			ID:         uuid.NewString(),
			CompanyID:  companyID,
			VesselName: "Sea Abc123",
			IMONumber:  "IMO9074729",
			Status:     datamodel.StatusActive,
			CreatedAt:  now,
			UpdatedAt:  now,
		}).Error).To(Succeed())
	})

	It("should leave entities empty when no entity type is given", func() {
		results, err := searcher.Search(ctx, "ABC123", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(results.Policies).To(HaveLen(1))
		Expect(results.Policies[0]).To(HaveKeyWithValue("policy_number", "POL-ABC123"))
		Expect(results.Endorsements).To(HaveLen(1))
		Expect(results.Entities).To(BeEmpty())
		Expect(results.Entities).NotTo(BeNil())
	})

	It("should match case-insensitively", func() {
		results, err := searcher.Search(ctx, "oceanic", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(results.Policies).To(HaveLen(1))
		Expect(results.Endorsements).To(BeEmpty())
	})

	It("should search the table selected by the entity type", func() {
		results, err := searcher.Search(ctx, "abc123", "employee")
		Expect(err).NotTo(HaveOccurred())
		Expect(results.Entities).To(HaveLen(1))
		Expect(results.Entities[0]).To(HaveKeyWithValue("employee_code", "ABC123"))
	})

	It("should accept both VESSEL and SHIP for vessels", func() {
		for _, entityType := range []string{"VESSEL", "SHIP"} {
			results, err := searcher.Search(ctx, "abc123", entityType)
			Expect(err).NotTo(HaveOccurred())
			Expect(results.Entities).To(HaveLen(1))
			Expect(results.Entities[0]).To(HaveKeyWithValue("vessel_name", "Sea Abc123"))
		}
	})

	It("should return no entities for an unknown or tableless type", func() {
		for _, entityType := range []string{"spaceship", "BUILDING"} {
			results, err := searcher.Search(ctx, "abc123", entityType)
			Expect(err).NotTo(HaveOccurred())
			Expect(results.Entities).To(BeEmpty())
			Expect(results.Policies).To(HaveLen(1))
		}
	})

	It("should render timestamps in ISO-8601", func() {
		results, err := searcher.Search(ctx, "POL-ABC", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(results.Policies).To(HaveLen(1))
		Expect(results.Policies[0]["created_at"]).To(BeAssignableToTypeOf(""))
		Expect(results.Policies[0]["created_at"]).To(ContainSubstring("T"))
	})

	It("should cap each branch at ten rows", func() {
		now := time.Now().UTC()
		for i := 0; i < 12; i++ {
			Expect(db.Create(&endorsement.Endorsement{
				ID:                uuid.NewString(),
				PolicyID:          uuid.NewString(),
				EndorsementNumber: uuid.NewString(),
				Description:       "bulk rider",
				EffectiveDate:     datamodel.NewDate(2025, 6, 1),
				CreatedBy:         "agent-1",
				CreatedAt:         now,
				UpdatedAt:         now,
			}).Error).To(Succeed())
		}

		results, err := searcher.Search(ctx, "rider", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(results.Endorsements).To(HaveLen(10))
	})

	It("should reject a blank query", func() {
		_, err := searcher.Search(ctx, "   ", "")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
	})

	Describe("HTTP", func() {
		var router *chi.Mux

		BeforeEach(func() {
			router = chi.NewRouter()
			router.Route("/search", search.NewHandler(transport.NewBaseHandler(nil), searcher).Routes)
		})

		It("should return all three lists", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?q=ABC123", nil))
			Expect(w.Code).To(Equal(http.StatusOK))

			var body map[string][]map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body).To(HaveKey("entities"))
			Expect(body["entities"]).NotTo(BeNil())
			Expect(body["policies"]).To(HaveLen(1))
			Expect(body["endorsements"]).To(HaveLen(1))
		})

		It("should answer 400 when q is missing", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("q is required"))
		})
	})
})

var _ = Describe("Searcher with a text-returning driver", func() {
	It("should send NUMERIC policy columns as JSON numbers", func() {
		mockDB, mock, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM policies`).
			WithArgs("%pol%", "%pol%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "policy_number", "sum_insured", "premium_amount"}).
				AddRow("p-1", "POL-1", "1000000.00", []byte("2500.50")))
		mock.ExpectQuery(`SELECT \* FROM endorsements`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "endorsement_number"}))

		searcher := search.NewSearcher(sqlx.NewDb(mockDB, "sqlmock"), nil)
		w := httptest.NewRecorder()
		search.NewHandler(transport.NewBaseHandler(nil), searcher).
			Search(w, httptest.NewRequest(http.MethodGet, "/search?q=POL", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string][]map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body["policies"]).To(HaveLen(1))
		Expect(body["policies"][0]["sum_insured"]).To(BeNumerically("==", 1000000))
		Expect(body["policies"][0]["premium_amount"]).To(BeNumerically("==", 2500.5))
		Expect(body["policies"][0]["policy_number"]).To(Equal("POL-1"))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})
})

var _ = Describe("Searcher failures", func() {
	It("should report a failing branch as an internal error", func() {
		mockDB, mock, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM policies`).
			WithArgs("%abc%", "%abc%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "policy_number"}).AddRow("p-1", "ABC"))
		mock.ExpectQuery(`SELECT \* FROM endorsements`).WillReturnError(errors.New("relation does not exist"))

		searcher := search.NewSearcher(sqlx.NewDb(mockDB, "sqlmock"), nil)
		w := httptest.NewRecorder()
		search.NewHandler(transport.NewBaseHandler(nil), searcher).
			Search(w, httptest.NewRequest(http.MethodGet, "/search?q=ABC", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("Search failed"))
		Expect(w.Body.String()).NotTo(ContainSubstring("relation does not exist"))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})
})
