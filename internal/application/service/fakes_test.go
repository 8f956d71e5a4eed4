package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
)

// In-memory fakes for the repository interfaces. They reproduce the
// conditional-update semantics of the real implementations so the CAS
// paths in the services are exercised for real.

type fakeLeadStore struct {
	mu    sync.Mutex
	leads map[uuid.UUID]*entity.Lead
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: make(map[uuid.UUID]*entity.Lead)}
}

func (f *fakeLeadStore) Create(ctx context.Context, lead *entity.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	f.leads[lead.ID] = lead
	return nil
}

func (f *fakeLeadStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leads[id], nil
}

func (f *fakeLeadStore) List(ctx context.Context, params *repository.LeadFilterParams) ([]entity.Lead, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Lead, 0, len(f.leads))
	for _, l := range f.leads {
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

type fakePlanStore struct {
	mu    sync.Mutex
	plans map[uuid.UUID]*entity.PricingPlan
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{plans: make(map[uuid.UUID]*entity.PricingPlan)}
}

func (f *fakePlanStore) Create(ctx context.Context, plan *entity.PricingPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	for i := range plan.Rows {
		if plan.Rows[i].ID == uuid.Nil {
			plan.Rows[i].ID = uuid.New()
		}
		plan.Rows[i].PricingPlanID = plan.ID
	}
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.PricingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plans[id], nil
}

func (f *fakePlanStore) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.PricingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.PricingPlan
	for _, p := range f.plans {
		if p.LeadID == leadID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlanStore) UpdateDuration(ctx context.Context, plan *entity.PricingPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans[plan.ID] = plan
	return nil
}

type fakeScopeStore struct {
	mu     sync.Mutex
	scopes map[uuid.UUID]*entity.ScopeOfWork
}

func newFakeScopeStore() *fakeScopeStore {
	return &fakeScopeStore{scopes: make(map[uuid.UUID]*entity.ScopeOfWork)}
}

func (f *fakeScopeStore) Create(ctx context.Context, scope *entity.ScopeOfWork) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if scope.ID == uuid.Nil {
		scope.ID = uuid.New()
	}
	for i := range scope.Selections {
		if scope.Selections[i].ID == uuid.Nil {
			scope.Selections[i].ID = uuid.New()
		}
		scope.Selections[i].ScopeOfWorkID = scope.ID
	}
	f.scopes[scope.ID] = scope
	return nil
}

func (f *fakeScopeStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.ScopeOfWork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scopes[id], nil
}

func (f *fakeScopeStore) GetByPlanID(ctx context.Context, pricingPlanID uuid.UUID) (*entity.ScopeOfWork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.scopes {
		if s.PricingPlanID == pricingPlanID {
			return s, nil
		}
	}
	return nil, nil
}

type fakeItemStore struct {
	items map[uuid.UUID]entity.ScopeItem
}

func newFakeItemStore(items ...entity.ScopeItem) *fakeItemStore {
	f := &fakeItemStore{items: make(map[uuid.UUID]entity.ScopeItem)}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeItemStore) List(ctx context.Context) ([]entity.ScopeItem, error) {
	out := make([]entity.ScopeItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeItemStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ScopeItem, error) {
	var out []entity.ScopeItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeInvoiceStore struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*entity.ProformaInvoice
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: make(map[uuid.UUID]*entity.ProformaInvoice)}
}

func (f *fakeInvoiceStore) Create(ctx context.Context, invoice *entity.ProformaInvoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	f.invoices[invoice.ID] = invoice
	return nil
}

func (f *fakeInvoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProformaInvoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv, ok := f.invoices[id]; ok {
		copied := *inv
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeInvoiceStore) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.ProformaInvoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.ProformaInvoice
	for _, inv := range f.invoices {
		if inv.LeadID == leadID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceStore) ListByPlan(ctx context.Context, pricingPlanID uuid.UUID) ([]entity.ProformaInvoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.ProformaInvoice
	for _, inv := range f.invoices {
		if inv.PricingPlanID == pricingPlanID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceStore) Finalize(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok || inv.IsFinal {
		return false, nil
	}
	now := time.Now()
	inv.IsFinal = true
	inv.FinalizedAt = &now
	return true, nil
}

func (f *fakeInvoiceStore) GetNextReferenceNumber(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.invoices) + 1, nil
}

type fakeAgreementStore struct {
	mu         sync.Mutex
	agreements map[uuid.UUID]*entity.Agreement
	milestones *fakeMilestoneStore
}

func newFakeAgreementStore(milestones *fakeMilestoneStore) *fakeAgreementStore {
	return &fakeAgreementStore{
		agreements: make(map[uuid.UUID]*entity.Agreement),
		milestones: milestones,
	}
}

func (f *fakeAgreementStore) Create(ctx context.Context, agreement *entity.Agreement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if agreement.ID == uuid.Nil {
		agreement.ID = uuid.New()
	}
	f.agreements[agreement.ID] = agreement
	return nil
}

func (f *fakeAgreementStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agreement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.agreements[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAgreementStore) GetWithMilestones(ctx context.Context, id uuid.UUID) (*entity.Agreement, error) {
	agreement, err := f.GetByID(ctx, id)
	if err != nil || agreement == nil {
		return agreement, err
	}
	if f.milestones != nil {
		ms, _ := f.milestones.ListByAgreement(ctx, id)
		agreement.Milestones = ms
	}
	return agreement, nil
}

func (f *fakeAgreementStore) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Agreement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Agreement
	for _, a := range f.agreements {
		if a.LeadID == leadID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAgreementStore) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, target enum.AgreementStatus, updates map[string]interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.agreements[id]
	if !ok || a.Status != expected {
		return false, nil
	}
	a.Status = target
	for key, val := range updates {
		switch key {
		case "client_email":
			a.ClientEmail = val.(string)
		case "sent_at":
			t := val.(time.Time)
			a.SentAt = &t
		case "signer_name":
			s := val.(string)
			a.SignerName = &s
		case "signer_email":
			s := val.(string)
			a.SignerEmail = &s
		case "signature_image":
			s := val.(string)
			a.SignatureImage = &s
		case "signed_at":
			t := val.(time.Time)
			a.SignedAt = &t
		}
	}
	return true, nil
}

func (f *fakeAgreementStore) GetNextReferenceNumber(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.agreements) + 1, nil
}

type fakeMilestoneStore struct {
	mu         sync.Mutex
	milestones map[uuid.UUID]*entity.Milestone
}

func newFakeMilestoneStore() *fakeMilestoneStore {
	return &fakeMilestoneStore{milestones: make(map[uuid.UUID]*entity.Milestone)}
}

func (f *fakeMilestoneStore) Create(ctx context.Context, milestone *entity.Milestone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if milestone.ID == uuid.Nil {
		milestone.ID = uuid.New()
	}
	f.milestones[milestone.ID] = milestone
	return nil
}

func (f *fakeMilestoneStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.milestones[id], nil
}

func (f *fakeMilestoneStore) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Milestone
	for _, m := range f.milestones {
		if m.AgreementID == agreementID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMilestoneStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.milestones, id)
	return nil
}

type fakePaymentStore struct {
	mu       sync.Mutex
	payments []entity.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{}
}

func (f *fakePaymentStore) Create(ctx context.Context, payment *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentStore) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Payment
	for _, p := range f.payments {
		if p.AgreementID == agreementID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) SumByAgreement(ctx context.Context, agreementID uuid.UUID) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, p := range f.payments {
		if p.AgreementID == agreementID {
			total += p.Amount
		}
	}
	return total, nil
}

type fakeKickoffStore struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*entity.KickoffRequest
	projects *fakeProjectStore
}

func newFakeKickoffStore(projects *fakeProjectStore) *fakeKickoffStore {
	return &fakeKickoffStore{
		requests: make(map[uuid.UUID]*entity.KickoffRequest),
		projects: projects,
	}
}

func (f *fakeKickoffStore) Create(ctx context.Context, request *entity.KickoffRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeKickoffStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.KickoffRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.requests[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeKickoffStore) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.KickoffRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.KickoffRequest
	for _, r := range f.requests {
		if r.AgreementID == agreementID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeKickoffStore) HasLiveRequest(ctx context.Context, agreementID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.AgreementID == agreementID && r.Status.IsLive() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeKickoffStore) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, target enum.KickoffStatus, updates map[string]interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Status != expected {
		return false, nil
	}
	r.Status = target
	for key, val := range updates {
		switch key {
		case "return_reason":
			if val == nil {
				r.ReturnReason = nil
			} else {
				s := val.(string)
				r.ReturnReason = &s
			}
		case "return_notes":
			if val == nil {
				r.ReturnNotes = nil
			} else if s, ok := val.(*string); ok {
				r.ReturnNotes = s
			}
		case "returned_by":
			if val == nil {
				r.ReturnedBy = nil
			} else {
				id := val.(uuid.UUID)
				r.ReturnedBy = &id
			}
		case "returned_at":
			if val == nil {
				r.ReturnedAt = nil
			} else {
				t := val.(time.Time)
				r.ReturnedAt = &t
			}
		case "expected_start_date":
			r.ExpectedStartDate = val.(time.Time)
		}
	}
	return true, nil
}

func (f *fakeKickoffStore) Convert(ctx context.Context, requestID uuid.UUID, project *entity.Project) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok || r.Status != enum.KickoffStatusPending {
		return false, nil
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	f.projects.put(project)
	r.Status = enum.KickoffStatusConverted
	r.ProjectID = &project.ID
	return true, nil
}

type fakeProjectStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*entity.Project
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[uuid.UUID]*entity.Project)}
}

func (f *fakeProjectStore) put(project *entity.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[project.ID] = project
}

func (f *fakeProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projects[id], nil
}

func (f *fakeProjectStore) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Project
	for _, p := range f.projects {
		if p.LeadID == leadID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) GetNextReferenceNumber(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.projects) + 1, nil
}

type fakeConsultantStore struct {
	consultants map[uuid.UUID]*entity.Consultant
}

func newFakeConsultantStore(consultants ...*entity.Consultant) *fakeConsultantStore {
	f := &fakeConsultantStore{consultants: make(map[uuid.UUID]*entity.Consultant)}
	for _, c := range consultants {
		f.consultants[c.ID] = c
	}
	return f
}

func (f *fakeConsultantStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Consultant, error) {
	return f.consultants[id], nil
}

func (f *fakeConsultantStore) List(ctx context.Context) ([]entity.Consultant, error) {
	out := make([]entity.Consultant, 0, len(f.consultants))
	for _, c := range f.consultants {
		out = append(out, *c)
	}
	return out, nil
}

// nopNotifier records notification calls without sending anything.
type nopNotifier struct {
	mu        sync.Mutex
	agreement int
	assigned  int
	converted int
}

func (n *nopNotifier) SendAgreementEmail(toEmail, leadName, reference string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.agreement++
	return nil
}

func (n *nopNotifier) SendKickoffAssignedEmail(toEmail, pmName, leadName string, expectedStart time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assigned++
	return nil
}

func (n *nopNotifier) SendProjectCreatedEmail(toEmail, pmName, projectRef string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.converted++
	return nil
}
