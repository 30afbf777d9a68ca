package entity_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	entityDatamodel "github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/Rutuja-Parab/policyzen/internal/employee"
	"github.com/Rutuja-Parab/policyzen/internal/entity"
	entityPostgres "github.com/Rutuja-Parab/policyzen/internal/entity/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/testsupport"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/Rutuja-Parab/policyzen/internal/vehicle"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEntity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Entity Suite")
}

var _ = Describe("Entity Handler Integration", func() {
	const (
		companyA = "0b6f3a1e-2c4d-4e5f-8a9b-1c2d3e4f5a6b"
		companyB = "9d8c7b6a-5f4e-4d3c-9b2a-1f0e9d8c7b6a"
	)

	var router chi.Router

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	BeforeEach(func() {
		db, err := testsupport.OpenSQLite(&entityDatamodel.Entity{}, &employee.Employee{}, &vehicle.Vehicle{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		guard := uniqueness.NewGuard(slogger)
		ctx := context.Background()

		employees := employee.NewService(db, guard, nil, slogger)
		vehicles := vehicle.NewService(db, guard, nil, slogger)
		_, err = employees.Create(ctx, &employee.Employee{CompanyID: companyA, EmployeeCode: "E1", Name: "Jane"})
		Expect(err).NotTo(HaveOccurred())
		_, err = employees.Create(ctx, &employee.Employee{CompanyID: companyB, EmployeeCode: "E1", Name: "Joe"})
		Expect(err).NotTo(HaveOccurred())
		_, err = vehicles.Create(ctx, &vehicle.Vehicle{CompanyID: companyA, RegistrationNumber: "R1", Make: "Tata", Model: "Nexon", Year: 2022})
		Expect(err).NotTo(HaveOccurred())

		service := entity.NewService(entityPostgres.NewEntityRepository(db), slogger)
		handler := entity.NewHandler(transport.NewBaseHandler(slogger), service)
		router = chi.NewRouter()
		router.Route("/entities", handler.Routes)
	})

	decodeList := func(w *httptest.ResponseRecorder) []entityDatamodel.Entity {
		var out []entityDatamodel.Entity
		Expect(json.NewDecoder(w.Body).Decode(&out)).To(Succeed())
		return out
	}

	It("should list every entity without filters", func() {
		w := get("/entities")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decodeList(w)).To(HaveLen(3))
	})

	It("should filter by company and type", func() {
		w := get("/entities?company_id=" + companyA + "&entity_type=employee")
		Expect(w.Code).To(Equal(http.StatusOK))

		list := decodeList(w)
		Expect(list).To(HaveLen(1))
		Expect(*list[0].Description).To(Equal("Employee: Jane"))
	})

	It("should reject an unknown entity type", func() {
		w := get("/entities?entity_type=SPACESHIP")
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["detail"]).To(Equal("Invalid entity type: SPACESHIP"))
	})

	It("should return 404 for an unknown entity row", func() {
		Expect(get("/entities/missing").Code).To(Equal(http.StatusNotFound))
	})
})
