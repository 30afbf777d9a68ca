package dualwrite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/dualwrite"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/Rutuja-Parab/policyzen/internal/employee"
	"github.com/Rutuja-Parab/policyzen/internal/student"
	"github.com/Rutuja-Parab/policyzen/internal/testsupport"
	"github.com/Rutuja-Parab/policyzen/internal/vehicle"
	"github.com/Rutuja-Parab/policyzen/internal/vessel"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestDualWrite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DualWrite Suite")
}

func openStore() *gorm.DB {
	db, err := testsupport.OpenSQLite(
		&entity.Entity{},
		&employee.Employee{},
		&student.Student{},
		&vessel.Vessel{},
		&vehicle.Vehicle{},
	)
	Expect(err).NotTo(HaveOccurred())
	return db
}

func entitiesFor(db *gorm.DB, id string, t entity.Type) []entity.Entity {
	var rows []entity.Entity
	Expect(db.Where("entity_id = ? AND type = ?", id, t).Find(&rows).Error).To(Succeed())
	return rows
}

func countRows(db *gorm.DB, table string) int64 {
	var n int64
	Expect(db.Table(table).Count(&n).Error).To(Succeed())
	return n
}

// kindCase drives the shared lifecycle properties for one record kind.
type kindCase[R dualwrite.Record] struct {
	kind     dualwrite.Kind[R]
	sample   func(companyID string, n int) R
	describe string
	renamed  string
	rename   func(R)
}

func lifecycleSpecs[R dualwrite.Record](tc kindCase[R]) {
	Describe(tc.kind.Label, func() {
		var (
			db      *gorm.DB
			coord   *dualwrite.Coordinator[R]
			ctx     context.Context
			company string
		)

		BeforeEach(func() {
			db = openStore()
			coord = dualwrite.NewCoordinator(db, uniqueness.NewGuard(nil), tc.kind, nil)
			ctx = context.Background()
			company = uuid.NewString()
		})

		It("should create the record and exactly one matching entity row", func() {
			rec, shadow, err := coord.Create(ctx, tc.sample(company, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.GetID()).NotTo(BeEmpty())
			Expect(shadow.EntityID).To(Equal(rec.GetID()))
			Expect(shadow.Type).To(Equal(tc.kind.Type))

			rows := entitiesFor(db, rec.GetID(), tc.kind.Type)
			Expect(rows).To(HaveLen(1))
			Expect(*rows[0].Description).To(Equal(tc.describe))
			Expect(rows[0].CompanyID).To(Equal(company))
		})

		It("should re-derive the entity description on update", func() {
			rec, _, err := coord.Create(ctx, tc.sample(company, 1))
			Expect(err).NotTo(HaveOccurred())

			changed := tc.sample(company, 1)
			tc.rename(changed)
			updated, err := coord.Update(ctx, rec.GetID(), changed)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Describe()).To(Equal(tc.renamed))

			rows := entitiesFor(db, rec.GetID(), tc.kind.Type)
			Expect(rows).To(HaveLen(1))
			Expect(*rows[0].Description).To(Equal(tc.renamed))
		})

		It("should report NotFound on update of a missing id and leave entities untouched", func() {
			_, _, err := coord.Create(ctx, tc.sample(company, 1))
			Expect(err).NotTo(HaveOccurred())
			before := countRows(db, "entities")

			_, err = coord.Update(ctx, uuid.NewString(), tc.sample(company, 2))
			Expect(internal.IsNotFound(err)).To(BeTrue())
			Expect(countRows(db, "entities")).To(Equal(before))
		})

		It("should delete both rows", func() {
			rec, _, err := coord.Create(ctx, tc.sample(company, 1))
			Expect(err).NotTo(HaveOccurred())

			Expect(coord.Delete(ctx, rec.GetID())).To(Succeed())
			Expect(entitiesFor(db, rec.GetID(), tc.kind.Type)).To(BeEmpty())

			_, err = coord.Get(ctx, rec.GetID())
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})

		It("should list records for a company only", func() {
			_, _, err := coord.Create(ctx, tc.sample(company, 1))
			Expect(err).NotTo(HaveOccurred())
			_, _, err = coord.Create(ctx, tc.sample(uuid.NewString(), 2))
			Expect(err).NotTo(HaveOccurred())

			all, err := coord.List(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			mine, err := coord.List(ctx, company)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(1))
			Expect(mine[0].GetCompanyID()).To(Equal(company))
		})
	})
}

var _ = Describe("Coordinator", func() {
	lifecycleSpecs(kindCase[*employee.Employee]{
		kind: employee.Kind,
		sample: func(companyID string, n int) *employee.Employee {
			return employee.Payload{CompanyID: companyID, EmployeeCode: fmt.Sprintf("EMP%03d", n), Name: "Jane Doe"}.ToRecord()
		},
		describe: "Employee: Jane Doe",
		renamed:  "Employee: Janet Doe",
		rename:   func(e *employee.Employee) { e.Name = "Janet Doe" },
	})

	lifecycleSpecs(kindCase[*student.Student]{
		kind: student.Kind,
		sample: func(companyID string, n int) *student.Student {
			return student.Payload{CompanyID: companyID, StudentID: fmt.Sprintf("STU%03d", n), Name: "Ali Khan"}.ToRecord()
		},
		describe: "Student: Ali Khan",
		renamed:  "Student: Alia Khan",
		rename:   func(s *student.Student) { s.Name = "Alia Khan" },
	})

	lifecycleSpecs(kindCase[*vessel.Vessel]{
		kind: vessel.Kind,
		sample: func(companyID string, n int) *vessel.Vessel {
			return vessel.Payload{CompanyID: companyID, VesselName: "Sea Star", IMONumber: fmt.Sprintf("IMO%07d", n)}.ToRecord()
		},
		describe: "Vessel: Sea Star",
		renamed:  "Vessel: Sea Queen",
		rename:   func(v *vessel.Vessel) { v.VesselName = "Sea Queen" },
	})

	lifecycleSpecs(kindCase[*vehicle.Vehicle]{
		kind: vehicle.Kind,
		sample: func(companyID string, n int) *vehicle.Vehicle {
			return vehicle.Payload{CompanyID: companyID, RegistrationNumber: fmt.Sprintf("MH01AB%04d", n), Make: "Toyota", Model: "Corolla", Year: 2021}.ToRecord()
		},
		describe: "Vehicle: Toyota Corolla",
		renamed:  "Vehicle: Toyota Camry",
		rename:   func(v *vehicle.Vehicle) { v.Model = "Camry" },
	})

	Describe("uniqueness", func() {
		var (
			db  *gorm.DB
			ctx context.Context
		)

		BeforeEach(func() {
			db = openStore()
			ctx = context.Background()
		})

		It("should reject a duplicate employee code within one company but allow it across companies", func() {
			coord := dualwrite.NewCoordinator(db, uniqueness.NewGuard(nil), employee.Kind, nil)
			companyA, companyB := uuid.NewString(), uuid.NewString()

			_, _, err := coord.Create(ctx, &employee.Employee{CompanyID: companyA, EmployeeCode: "EMP001", Name: "A"})
			Expect(err).NotTo(HaveOccurred())

			_, _, err = coord.Create(ctx, &employee.Employee{CompanyID: companyA, EmployeeCode: "EMP001", Name: "B"})
			Expect(internal.IsConflict(err)).To(BeTrue())

			_, _, err = coord.Create(ctx, &employee.Employee{CompanyID: companyB, EmployeeCode: "EMP001", Name: "C"})
			Expect(err).NotTo(HaveOccurred())

			Expect(countRows(db, "employees")).To(BeEquivalentTo(2))
			Expect(countRows(db, "entities")).To(BeEquivalentTo(2))
		})

		It("should reject a duplicate IMO number across companies", func() {
			coord := dualwrite.NewCoordinator(db, uniqueness.NewGuard(nil), vessel.Kind, nil)

			_, _, err := coord.Create(ctx, &vessel.Vessel{CompanyID: uuid.NewString(), VesselName: "One", IMONumber: "IMO1234567"})
			Expect(err).NotTo(HaveOccurred())

			_, _, err = coord.Create(ctx, &vessel.Vessel{CompanyID: uuid.NewString(), VesselName: "Two", IMONumber: "IMO1234567"})
			Expect(internal.IsConflict(err)).To(BeTrue())
			Expect(err.Error()).To(Equal("IMO number already exists"))
		})

		It("should reject an update that takes another record's key", func() {
			coord := dualwrite.NewCoordinator(db, uniqueness.NewGuard(nil), vehicle.Kind, nil)
			company := uuid.NewString()

			_, _, err := coord.Create(ctx, &vehicle.Vehicle{CompanyID: company, RegistrationNumber: "R1", Make: "A", Model: "B", Year: 2020})
			Expect(err).NotTo(HaveOccurred())
			second, _, err := coord.Create(ctx, &vehicle.Vehicle{CompanyID: company, RegistrationNumber: "R2", Make: "A", Model: "B", Year: 2020})
			Expect(err).NotTo(HaveOccurred())

			_, err = coord.Update(ctx, second.ID, &vehicle.Vehicle{CompanyID: company, RegistrationNumber: "R1", Make: "A", Model: "B", Year: 2020})
			Expect(internal.IsConflict(err)).To(BeTrue())

			// keeping its own key is fine
			_, err = coord.Update(ctx, second.ID, &vehicle.Vehicle{CompanyID: company, RegistrationNumber: "R2", Make: "A", Model: "C", Year: 2020})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should fall back to the unique index when the guard is bypassed", func() {
			coord := dualwrite.NewCoordinator(db, nil, vessel.Kind, nil)

			_, _, err := coord.Create(ctx, &vessel.Vessel{CompanyID: uuid.NewString(), VesselName: "One", IMONumber: "IMO7654321"})
			Expect(err).NotTo(HaveOccurred())

			_, _, err = coord.Create(ctx, &vessel.Vessel{CompanyID: uuid.NewString(), VesselName: "Two", IMONumber: "IMO7654321"})
			Expect(internal.IsConflict(err)).To(BeTrue())
			Expect(countRows(db, "entities")).To(BeEquivalentTo(1))
		})
	})

	Describe("atomicity", func() {
		var (
			db    *gorm.DB
			ctx   context.Context
			coord *dualwrite.Coordinator[*employee.Employee]
		)

		BeforeEach(func() {
			db = openStore()
			ctx = context.Background()
			coord = dualwrite.NewCoordinator(db, uniqueness.NewGuard(nil), employee.Kind, nil)
		})

		It("should roll back the record insert when the entity insert fails", func() {
			Expect(db.Migrator().DropTable(&entity.Entity{})).To(Succeed())

			_, _, err := coord.Create(ctx, &employee.Employee{CompanyID: uuid.NewString(), EmployeeCode: "EMP009", Name: "X"})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))

			Expect(countRows(db, "employees")).To(BeZero())
		})

		It("should keep the entity row when deleting a missing record", func() {
			rec, _, err := coord.Create(ctx, &employee.Employee{CompanyID: uuid.NewString(), EmployeeCode: "EMP010", Name: "Y"})
			Expect(err).NotTo(HaveOccurred())

			// orphan the entity row by removing the employee behind the coordinator's back
			Expect(db.Exec("DELETE FROM employees WHERE id = ?", rec.ID).Error).To(Succeed())

			err = coord.Delete(ctx, rec.ID)
			Expect(internal.IsNotFound(err)).To(BeTrue())
			Expect(entitiesFor(db, rec.ID, entity.TypeEmployee)).To(HaveLen(1))
		})

		It("should report NotFound when deleting an unknown id", func() {
			err := coord.Delete(ctx, uuid.NewString())
			Expect(internal.IsNotFound(err)).To(BeTrue())
			Expect(err.Error()).To(Equal("Employee not found"))
		})
	})
})
