package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
)

func newPricingFixture(t *testing.T) (*PricingService, *fakeLeadStore, *fakePlanStore, *fakeScopeStore, *entity.Lead) {
	t.Helper()
	leads := newFakeLeadStore()
	plans := newFakePlanStore()
	scopes := newFakeScopeStore()
	svc := NewPricingService(plans, leads, scopes)

	lead := &entity.Lead{Name: "Acme Industries", Email: "ops@acme.test", CreatedBy: uuid.New()}
	if err := leads.Create(context.Background(), lead); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	return svc, leads, plans, scopes, lead
}

func TestCreatePlanDerivesCommittedMeetings(t *testing.T) {
	svc, _, _, _, lead := newPricingFixture(t)

	got, err := svc.CreatePlan(context.Background(), &CreatePlanInput{
		UserID:             uuid.New(),
		LeadID:             lead.ID,
		DurationMonths:     3,
		DiscountPercentage: 10,
		Rows: []TeamRowInput{
			{RoleName: "Senior Consultant", Frequency: "2 per week", RatePerMeeting: 1000, Count: 2},
			{RoleName: "Analyst", Frequency: "Monthly", RatePerMeeting: 500, Count: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	if got.Plan.Rows[0].CommittedMeetings != 24 {
		t.Errorf("row 0 committed meetings = %d, want 24", got.Plan.Rows[0].CommittedMeetings)
	}
	if got.Plan.Rows[1].CommittedMeetings != 3 {
		t.Errorf("row 1 committed meetings = %d, want 3", got.Plan.Rows[1].CommittedMeetings)
	}

	// 24*2*1000 + 3*1*500 = 49500; 10% discount = 4950; taxable 44550;
	// GST 18% = 8019; grand 52569.
	if got.Totals.Subtotal != 49500 {
		t.Errorf("subtotal = %v, want 49500", got.Totals.Subtotal)
	}
	if got.Totals.DiscountAmount != 4950 {
		t.Errorf("discount = %v, want 4950", got.Totals.DiscountAmount)
	}
	if got.Totals.GSTAmount != 8019 {
		t.Errorf("gst = %v, want 8019", got.Totals.GSTAmount)
	}
	if got.Totals.GrandTotal != 52569 {
		t.Errorf("grand total = %v, want 52569", got.Totals.GrandTotal)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	svc, _, _, _, lead := newPricingFixture(t)

	validRow := []TeamRowInput{{RoleName: "Consultant", Frequency: "1 per week", RatePerMeeting: 100, Count: 1}}

	tests := []struct {
		name  string
		input *CreatePlanInput
	}{
		{"zero duration", &CreatePlanInput{LeadID: lead.ID, DurationMonths: 0, Rows: validRow}},
		{"duration over cap", &CreatePlanInput{LeadID: lead.ID, DurationMonths: 61, Rows: validRow}},
		{"negative discount", &CreatePlanInput{LeadID: lead.ID, DurationMonths: 6, DiscountPercentage: -1, Rows: validRow}},
		{"discount over 100", &CreatePlanInput{LeadID: lead.ID, DurationMonths: 6, DiscountPercentage: 101, Rows: validRow}},
		{"no rows", &CreatePlanInput{LeadID: lead.ID, DurationMonths: 6}},
		{"zero count", &CreatePlanInput{LeadID: lead.ID, DurationMonths: 6, Rows: []TeamRowInput{{RoleName: "C", Frequency: "Monthly", RatePerMeeting: 100, Count: 0}}}},
		{"negative rate", &CreatePlanInput{LeadID: lead.ID, DurationMonths: 6, Rows: []TeamRowInput{{RoleName: "C", Frequency: "Monthly", RatePerMeeting: -1, Count: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePlan(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code := apperror.GetAppError(err).Code; code != http.StatusBadRequest {
				t.Errorf("error code = %d, want %d", code, http.StatusBadRequest)
			}
		})
	}
}

func TestCreatePlanUnknownFrequency(t *testing.T) {
	svc, _, _, _, lead := newPricingFixture(t)

	_, err := svc.CreatePlan(context.Background(), &CreatePlanInput{
		LeadID:         lead.ID,
		DurationMonths: 6,
		Rows:           []TeamRowInput{{RoleName: "C", Frequency: "Fortnightly-ish", RatePerMeeting: 100, Count: 1}},
	})
	if err != apperror.ErrInvalidFrequency {
		t.Errorf("err = %v, want ErrInvalidFrequency", err)
	}
}

func TestCreatePlanLeadNotFound(t *testing.T) {
	svc, _, _, _, _ := newPricingFixture(t)

	_, err := svc.CreatePlan(context.Background(), &CreatePlanInput{
		LeadID:         uuid.New(),
		DurationMonths: 6,
		Rows:           []TeamRowInput{{RoleName: "C", Frequency: "Monthly", RatePerMeeting: 100, Count: 1}},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := apperror.GetAppError(err).Code; code != http.StatusNotFound {
		t.Errorf("error code = %d, want %d", code, http.StatusNotFound)
	}
}

func TestUpdateDurationRecomputesRows(t *testing.T) {
	svc, _, _, _, lead := newPricingFixture(t)

	created, err := svc.CreatePlan(context.Background(), &CreatePlanInput{
		UserID:         uuid.New(),
		LeadID:         lead.ID,
		DurationMonths: 2,
		Rows:           []TeamRowInput{{RoleName: "Consultant", Frequency: "1 per week", RatePerMeeting: 1000, Count: 1}},
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if created.Plan.Rows[0].CommittedMeetings != 8 {
		t.Fatalf("committed meetings = %d, want 8", created.Plan.Rows[0].CommittedMeetings)
	}

	updated, err := svc.UpdateDuration(context.Background(), created.Plan.ID, 6)
	if err != nil {
		t.Fatalf("UpdateDuration: %v", err)
	}
	if updated.Plan.DurationMonths != 6 {
		t.Errorf("duration = %d, want 6", updated.Plan.DurationMonths)
	}
	if updated.Plan.Rows[0].CommittedMeetings != 24 {
		t.Errorf("committed meetings = %d, want 24", updated.Plan.Rows[0].CommittedMeetings)
	}
	if updated.Totals.Subtotal != 24000 {
		t.Errorf("subtotal = %v, want 24000", updated.Totals.Subtotal)
	}

	// The change survives a re-read.
	fetched, err := svc.GetPlan(context.Background(), created.Plan.ID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if fetched.Plan.Rows[0].CommittedMeetings != 24 {
		t.Errorf("persisted committed meetings = %d, want 24", fetched.Plan.Rows[0].CommittedMeetings)
	}
}

func TestUpdateDurationRejectedOnceScoped(t *testing.T) {
	svc, _, _, scopes, lead := newPricingFixture(t)

	created, err := svc.CreatePlan(context.Background(), &CreatePlanInput{
		UserID:         uuid.New(),
		LeadID:         lead.ID,
		DurationMonths: 6,
		Rows:           []TeamRowInput{{RoleName: "Consultant", Frequency: "Monthly", RatePerMeeting: 1000, Count: 1}},
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	scope := &entity.ScopeOfWork{PricingPlanID: created.Plan.ID, CreatedBy: uuid.New()}
	if err := scopes.Create(context.Background(), scope); err != nil {
		t.Fatalf("create scope: %v", err)
	}

	_, err = svc.UpdateDuration(context.Background(), created.Plan.ID, 12)
	if err != apperror.ErrPlanLocked {
		t.Errorf("err = %v, want ErrPlanLocked", err)
	}
}
