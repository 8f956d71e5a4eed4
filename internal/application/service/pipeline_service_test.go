package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
)

type pipelineFixture struct {
	svc        *PipelineService
	plans      *fakePlanStore
	scopes     *fakeScopeStore
	invoices   *fakeInvoiceStore
	agreements *fakeAgreementStore
	lead       *entity.Lead
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	leads := newFakeLeadStore()
	plans := newFakePlanStore()
	scopes := newFakeScopeStore()
	invoices := newFakeInvoiceStore()
	agreements := newFakeAgreementStore(nil)
	svc := NewPipelineService(leads, plans, scopes, invoices, agreements)

	lead := &entity.Lead{Name: "Acme Industries", Email: "ops@acme.test", CreatedBy: uuid.New()}
	if err := leads.Create(context.Background(), lead); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	return &pipelineFixture{svc: svc, plans: plans, scopes: scopes, invoices: invoices, agreements: agreements, lead: lead}
}

func (f *pipelineFixture) reachable(t *testing.T) map[enum.PipelineStage]bool {
	t.Helper()
	snapshot, err := f.svc.Snapshot(context.Background(), f.lead.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	out := make(map[enum.PipelineStage]bool, len(snapshot.Stages))
	for _, stage := range snapshot.Stages {
		out[stage.Stage] = stage.Reachable
	}
	return out
}

func TestSnapshotProgression(t *testing.T) {
	f := newPipelineFixture(t)
	ctx := context.Background()

	// Fresh lead: only pricing is open.
	got := f.reachable(t)
	want := map[enum.PipelineStage]bool{
		enum.PipelineStagePricing:   true,
		enum.PipelineStageScope:     false,
		enum.PipelineStageProforma:  false,
		enum.PipelineStageAgreement: false,
		enum.PipelineStagePayment:   false,
		enum.PipelineStageKickoff:   false,
	}
	for stage, wantReach := range want {
		if got[stage] != wantReach {
			t.Errorf("fresh lead: stage %v reachable = %v, want %v", stage, got[stage], wantReach)
		}
	}

	// A plan opens scope.
	plan := &entity.PricingPlan{LeadID: f.lead.ID, DurationMonths: 6, CreatedBy: uuid.New()}
	if err := f.plans.Create(ctx, plan); err != nil {
		t.Fatalf("create plan: %v", err)
	}
	got = f.reachable(t)
	if !got[enum.PipelineStageScope] {
		t.Error("scope not reachable after plan created")
	}
	if got[enum.PipelineStageProforma] {
		t.Error("proforma reachable without scope or invoice")
	}

	// A scope opens proforma.
	scope := &entity.ScopeOfWork{PricingPlanID: plan.ID, CreatedBy: uuid.New()}
	if err := f.scopes.Create(ctx, scope); err != nil {
		t.Fatalf("create scope: %v", err)
	}
	got = f.reachable(t)
	if !got[enum.PipelineStageProforma] {
		t.Error("proforma not reachable after scope created")
	}
	if got[enum.PipelineStageAgreement] {
		t.Error("agreement reachable without a final invoice")
	}

	// A draft invoice is not enough for the agreement stage.
	invoice := &entity.ProformaInvoice{
		Reference:     "PI-000001",
		PricingPlanID: plan.ID,
		LeadID:        f.lead.ID,
		GrandTotal:    28320,
		CreatedBy:     uuid.New(),
	}
	if err := f.invoices.Create(ctx, invoice); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	got = f.reachable(t)
	if got[enum.PipelineStageAgreement] {
		t.Error("agreement reachable with only a draft invoice")
	}

	// Finalizing opens agreement.
	if won, err := f.invoices.Finalize(ctx, invoice.ID); err != nil || !won {
		t.Fatalf("finalize: won=%v err=%v", won, err)
	}
	got = f.reachable(t)
	if !got[enum.PipelineStageAgreement] {
		t.Error("agreement not reachable after final invoice")
	}
	if got[enum.PipelineStagePayment] || got[enum.PipelineStageKickoff] {
		t.Error("payment/kickoff reachable without signed agreement")
	}

	// An unsigned agreement still keeps payment and kickoff closed.
	now := time.Now()
	agreement := &entity.Agreement{
		Reference:         "AGR-000001",
		ProformaInvoiceID: invoice.ID,
		LeadID:            f.lead.ID,
		Status:            enum.AgreementStatusSent,
		Value:             28320,
		SentAt:            &now,
		CreatedBy:         uuid.New(),
	}
	if err := f.agreements.Create(ctx, agreement); err != nil {
		t.Fatalf("create agreement: %v", err)
	}
	got = f.reachable(t)
	if got[enum.PipelineStagePayment] || got[enum.PipelineStageKickoff] {
		t.Error("payment/kickoff reachable with unsigned agreement")
	}

	// Signing opens both.
	won, err := f.agreements.UpdateStatusIf(ctx, agreement.ID, enum.AgreementStatusSent, enum.AgreementStatusSigned, nil)
	if err != nil || !won {
		t.Fatalf("sign: won=%v err=%v", won, err)
	}
	got = f.reachable(t)
	if !got[enum.PipelineStagePayment] || !got[enum.PipelineStageKickoff] {
		t.Error("payment/kickoff not reachable after signed agreement")
	}
}

func TestSnapshotDraftInvoiceWithoutScope(t *testing.T) {
	f := newPipelineFixture(t)
	ctx := context.Background()

	// Historic data can hold an invoice with no scope; the proforma stage
	// stays visible for it.
	plan := &entity.PricingPlan{LeadID: f.lead.ID, DurationMonths: 6, CreatedBy: uuid.New()}
	if err := f.plans.Create(ctx, plan); err != nil {
		t.Fatalf("create plan: %v", err)
	}
	invoice := &entity.ProformaInvoice{
		Reference:     "PI-000001",
		PricingPlanID: plan.ID,
		LeadID:        f.lead.ID,
		GrandTotal:    1000,
		CreatedBy:     uuid.New(),
	}
	if err := f.invoices.Create(ctx, invoice); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	got := f.reachable(t)
	if !got[enum.PipelineStageProforma] {
		t.Error("proforma not reachable with existing invoice and no scope")
	}
}

func TestSnapshotUnknownLead(t *testing.T) {
	f := newPipelineFixture(t)

	_, err := f.svc.Snapshot(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := apperror.GetAppError(err).Code; code != http.StatusNotFound {
		t.Errorf("error code = %d, want %d", code, http.StatusNotFound)
	}
}
