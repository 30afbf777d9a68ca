package insured_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
	"github.com/Rutuja-Parab/policyzen/internal/employee"
	"github.com/Rutuja-Parab/policyzen/internal/insured"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestInsured(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Insured Suite")
}

type mockStore struct {
	records map[string]*employee.Employee
	failErr error
	seq     int
}

func newMockStore() *mockStore {
	return &mockStore{records: make(map[string]*employee.Employee)}
}

func (m *mockStore) Create(_ context.Context, rec *employee.Employee) (*employee.Employee, *entity.Entity, error) {
	if m.failErr != nil {
		return nil, nil, m.failErr
	}
	m.seq++
	rec.ID = "emp-" + string(rune('0'+m.seq))
	m.records[rec.ID] = rec
	desc := rec.Describe()
	return rec, &entity.Entity{ID: "ent-" + rec.ID, EntityID: rec.ID, Type: entity.TypeEmployee, Description: &desc}, nil
}

func (m *mockStore) Get(_ context.Context, id string) (*employee.Employee, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, internal.NewNotFoundError("Employee not found", internal.ErrCodeRecordNotFound)
	}
	return rec, nil
}

func (m *mockStore) List(_ context.Context, companyID string) ([]*employee.Employee, error) {
	out := make([]*employee.Employee, 0)
	for _, rec := range m.records {
		if companyID == "" || rec.CompanyID == companyID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockStore) Update(_ context.Context, id string, rec *employee.Employee) (*employee.Employee, error) {
	if _, ok := m.records[id]; !ok {
		return nil, internal.NewNotFoundError("Employee not found", internal.ErrCodeRecordNotFound)
	}
	rec.ID = id
	m.records[id] = rec
	return rec, nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return internal.NewNotFoundError("Employee not found", internal.ErrCodeRecordNotFound)
	}
	delete(m.records, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.EventType())
	}
	return out
}

var _ = Describe("Service", func() {
	var (
		store     *mockStore
		publisher *recordingPublisher
		service   *insured.Service[*employee.Employee]
		ctx       context.Context
	)

	BeforeEach(func() {
		store = newMockStore()
		publisher = &recordingPublisher{}
		service = insured.NewService[*employee.Employee](store, publisher, "Employee", nil)
		ctx = internal.ContextWithActor(context.Background(), "user-42")
	})

	It("should publish one event per successful write", func() {
		rec, err := service.Create(ctx, &employee.Employee{CompanyID: "c1", EmployeeCode: "E1", Name: "Jane"})
		Expect(err).NotTo(HaveOccurred())

		_, err = service.Update(ctx, rec.ID, &employee.Employee{CompanyID: "c1", EmployeeCode: "E1", Name: "Janet"})
		Expect(err).NotTo(HaveOccurred())

		Expect(service.Delete(ctx, rec.ID)).To(Succeed())

		Expect(publisher.types()).To(Equal([]string{
			events.EventTypeRecordCreated,
			events.EventTypeRecordUpdated,
			events.EventTypeRecordDeleted,
		}))
	})

	It("should attribute events to the caller and the kind", func() {
		rec, err := service.Create(ctx, &employee.Employee{CompanyID: "c1", EmployeeCode: "E1", Name: "Jane"})
		Expect(err).NotTo(HaveOccurred())

		Expect(publisher.events).To(HaveLen(1))
		ev, ok := publisher.events[0].(*events.RecordEvent)
		Expect(ok).To(BeTrue())
		Expect(ev.Kind).To(Equal("employee"))
		Expect(ev.RecordID).To(Equal(rec.ID))
		Expect(ev.PerformedBy).To(Equal("user-42"))
	})

	It("should not publish when the store rejects the write", func() {
		store.failErr = errors.New("boom")
		_, err := service.Create(ctx, &employee.Employee{CompanyID: "c1", EmployeeCode: "E1", Name: "Jane"})
		Expect(err).To(MatchError("boom"))

		err = service.Delete(ctx, "missing")
		Expect(internal.IsNotFound(err)).To(BeTrue())

		Expect(publisher.events).To(BeEmpty())
	})

	It("should trim the company filter", func() {
		_, err := service.Create(ctx, &employee.Employee{CompanyID: "c1", EmployeeCode: "E1", Name: "Jane"})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Create(ctx, &employee.Employee{CompanyID: "c2", EmployeeCode: "E2", Name: "Joe"})
		Expect(err).NotTo(HaveOccurred())

		list, err := service.List(ctx, "  c2 ")
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Name).To(Equal("Joe"))
	})

	It("should work without a publisher", func() {
		quiet := insured.NewService[*employee.Employee](store, nil, "Employee", nil)
		_, err := quiet.Create(ctx, &employee.Employee{CompanyID: "c1", EmployeeCode: "E1", Name: "Jane"})
		Expect(err).NotTo(HaveOccurred())
	})
})
