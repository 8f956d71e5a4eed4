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

type kickoffFixture struct {
	svc        *KickoffService
	kickoffs   *fakeKickoffStore
	projects   *fakeProjectStore
	agreements *fakeAgreementStore
	lead       *entity.Lead
	agreement  *entity.Agreement
	pm        *entity.Consultant
	inactive  *entity.Consultant
	analyst   *entity.Consultant
}

func newKickoffFixture(t *testing.T) *kickoffFixture {
	t.Helper()

	leads := newFakeLeadStore()
	agreements := newFakeAgreementStore(nil)
	projects := newFakeProjectStore()
	kickoffs := newFakeKickoffStore(projects)

	pm := &entity.Consultant{ID: uuid.New(), Name: "Priya Nair", Email: "priya@dealdesk.test", Role: "project-manager", IsActive: true}
	inactive := &entity.Consultant{ID: uuid.New(), Name: "Former PM", Email: "former@dealdesk.test", Role: "project-manager", IsActive: false}
	analyst := &entity.Consultant{ID: uuid.New(), Name: "Junior Analyst", Email: "junior@dealdesk.test", Role: "analyst", IsActive: true}
	consultants := newFakeConsultantStore(pm, inactive, analyst)

	svc := NewKickoffService(kickoffs, projects, agreements, consultants, leads, &nopNotifier{})

	lead := &entity.Lead{Name: "Acme Industries", Email: "ops@acme.test", CreatedBy: uuid.New()}
	if err := leads.Create(context.Background(), lead); err != nil {
		t.Fatalf("create lead: %v", err)
	}

	now := time.Now()
	agreement := &entity.Agreement{
		Reference:         "AGR-000001",
		ProformaInvoiceID: uuid.New(),
		LeadID:            lead.ID,
		Status:            enum.AgreementStatusSigned,
		Value:             50000,
		SignedAt:          &now,
		CreatedBy:         uuid.New(),
	}
	if err := agreements.Create(context.Background(), agreement); err != nil {
		t.Fatalf("create agreement: %v", err)
	}

	return &kickoffFixture{
		svc:        svc,
		kickoffs:   kickoffs,
		projects:   projects,
		agreements: agreements,
		lead:       lead,
		agreement:  agreement,
		pm:         pm,
		inactive:   inactive,
		analyst:    analyst,
	}
}

func (f *kickoffFixture) create(t *testing.T) *entity.KickoffRequest {
	t.Helper()
	request, err := f.svc.CreateKickoff(context.Background(), &CreateKickoffInput{
		UserID:            uuid.New(),
		AgreementID:       f.agreement.ID,
		AssignedPMID:      f.pm.ID,
		ExpectedStartDate: time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("CreateKickoff: %v", err)
	}
	return request
}

func TestCreateKickoffRequiresSignedAgreement(t *testing.T) {
	f := newKickoffFixture(t)

	unsigned := &entity.Agreement{
		Reference:         "AGR-000002",
		ProformaInvoiceID: uuid.New(),
		LeadID:            f.lead.ID,
		Status:            enum.AgreementStatusSent,
		Value:             10000,
		CreatedBy:         uuid.New(),
	}
	if err := f.agreements.Create(context.Background(), unsigned); err != nil {
		t.Fatalf("create agreement: %v", err)
	}

	_, err := f.svc.CreateKickoff(context.Background(), &CreateKickoffInput{
		UserID:            uuid.New(),
		AgreementID:       unsigned.ID,
		AssignedPMID:      f.pm.ID,
		ExpectedStartDate: time.Now().AddDate(0, 1, 0),
	})
	if err != apperror.ErrAgreementNotSigned {
		t.Errorf("err = %v, want ErrAgreementNotSigned", err)
	}
}

func TestCreateKickoffChecksAgreementAndPM(t *testing.T) {
	f := newKickoffFixture(t)
	start := time.Now().AddDate(0, 1, 0)

	// Unknown agreement.
	_, err := f.svc.CreateKickoff(context.Background(), &CreateKickoffInput{
		UserID:            uuid.New(),
		AgreementID:       uuid.New(),
		AssignedPMID:      f.pm.ID,
		ExpectedStartDate: start,
	})
	if code := apperror.GetAppError(err).Code; code != http.StatusNotFound {
		t.Errorf("unknown agreement error code = %d, want %d", code, http.StatusNotFound)
	}

	// Inactive PM.
	_, err = f.svc.CreateKickoff(context.Background(), &CreateKickoffInput{
		UserID:            uuid.New(),
		AgreementID:       f.agreement.ID,
		AssignedPMID:      f.inactive.ID,
		ExpectedStartDate: start,
	})
	if code := apperror.GetAppError(err).Code; code != http.StatusBadRequest {
		t.Errorf("inactive pm error code = %d, want %d", code, http.StatusBadRequest)
	}

	// Wrong role.
	_, err = f.svc.CreateKickoff(context.Background(), &CreateKickoffInput{
		UserID:            uuid.New(),
		AgreementID:       f.agreement.ID,
		AssignedPMID:      f.analyst.ID,
		ExpectedStartDate: start,
	})
	if code := apperror.GetAppError(err).Code; code != http.StatusBadRequest {
		t.Errorf("wrong role error code = %d, want %d", code, http.StatusBadRequest)
	}
}

func TestCreateKickoffOneLivePerAgreement(t *testing.T) {
	f := newKickoffFixture(t)
	request := f.create(t)

	// Pending blocks a second request.
	_, err := f.svc.CreateKickoff(context.Background(), &CreateKickoffInput{
		UserID:            uuid.New(),
		AgreementID:       f.agreement.ID,
		AssignedPMID:      f.pm.ID,
		ExpectedStartDate: time.Now().AddDate(0, 2, 0),
	})
	if err != apperror.ErrConflictingLiveRequest {
		t.Errorf("err = %v, want ErrConflictingLiveRequest", err)
	}

	// So does returned.
	_, err = f.svc.Return(context.Background(), &ReturnKickoffInput{
		RequestID: request.ID,
		ActorID:   uuid.New(),
		Reason:    "Start date clashes with staffing",
	})
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	_, err = f.svc.CreateKickoff(context.Background(), &CreateKickoffInput{
		UserID:            uuid.New(),
		AgreementID:       f.agreement.ID,
		AssignedPMID:      f.pm.ID,
		ExpectedStartDate: time.Now().AddDate(0, 2, 0),
	})
	if err != apperror.ErrConflictingLiveRequest {
		t.Errorf("err after return = %v, want ErrConflictingLiveRequest", err)
	}
}

func TestKickoffReturnResubmitAcceptLifecycle(t *testing.T) {
	f := newKickoffFixture(t)
	actor := uuid.New()
	request := f.create(t)

	// Return for revision: reason required, return fields captured.
	if _, err := f.svc.Return(context.Background(), &ReturnKickoffInput{RequestID: request.ID, ActorID: actor, Reason: ""}); err == nil {
		t.Error("return without reason: expected error, got nil")
	}
	returned, err := f.svc.Return(context.Background(), &ReturnKickoffInput{
		RequestID: request.ID,
		ActorID:   actor,
		Reason:    "Start date clashes with staffing",
		Notes:     strptr("push by two weeks"),
	})
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if returned.Status != enum.KickoffStatusReturned {
		t.Errorf("status = %v, want Returned", returned.Status)
	}
	if returned.ReturnReason == nil || returned.ReturnedBy == nil || returned.ReturnedAt == nil {
		t.Error("return fields not captured")
	}

	// Resubmit reuses the same request and clears the return fields.
	resubmitted, err := f.svc.Resubmit(context.Background(), request.ID, uuid.New())
	if err != nil {
		t.Fatalf("Resubmit: %v", err)
	}
	if resubmitted.ID != request.ID {
		t.Error("resubmit must reuse the same request id")
	}
	if resubmitted.Status != enum.KickoffStatusPending {
		t.Errorf("status = %v, want Pending", resubmitted.Status)
	}
	if resubmitted.ReturnReason != nil || resubmitted.ReturnNotes != nil || resubmitted.ReturnedBy != nil || resubmitted.ReturnedAt != nil {
		t.Error("return fields not cleared on resubmit")
	}

	// Accept converts the request and creates exactly one project.
	accepted, err := f.svc.Accept(context.Background(), request.ID, actor)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if accepted.Status != enum.KickoffStatusConverted {
		t.Errorf("status = %v, want Converted", accepted.Status)
	}
	if accepted.ProjectID == nil {
		t.Fatal("project id not linked on converted request")
	}

	project, err := f.svc.GetProject(context.Background(), *accepted.ProjectID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if project.Reference != "PRJ-000001" {
		t.Errorf("project reference = %q, want %q", project.Reference, "PRJ-000001")
	}
	if project.Name != "Acme Industries Engagement" {
		t.Errorf("project name = %q", project.Name)
	}
	if project.KickoffRequestID != request.ID || project.AgreementID != f.agreement.ID || project.PMID != f.pm.ID {
		t.Error("project linkage wrong")
	}
	if !project.StartDate.Equal(accepted.ExpectedStartDate) {
		t.Errorf("project start date = %v, want %v", project.StartDate, accepted.ExpectedStartDate)
	}

	// A second accept loses and must not create another project.
	if _, err := f.svc.Accept(context.Background(), request.ID, actor); err != apperror.ErrInvalidTransition {
		t.Errorf("double accept err = %v, want ErrInvalidTransition", err)
	}
	projects, err := f.svc.ListProjectsByLead(context.Background(), f.lead.ID)
	if err != nil {
		t.Fatalf("ListProjectsByLead: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("projects = %d, want exactly 1", len(projects))
	}
}

func TestKickoffRejectIsTerminal(t *testing.T) {
	f := newKickoffFixture(t)
	request := f.create(t)

	rejected, err := f.svc.Reject(context.Background(), request.ID, uuid.New())
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != enum.KickoffStatusRejected {
		t.Errorf("status = %v, want Rejected", rejected.Status)
	}

	// No way back from rejected.
	if _, err := f.svc.Resubmit(context.Background(), request.ID, uuid.New()); err != apperror.ErrInvalidTransition {
		t.Errorf("resubmit after reject err = %v, want ErrInvalidTransition", err)
	}
	if _, err := f.svc.Accept(context.Background(), request.ID, uuid.New()); err != apperror.ErrInvalidTransition {
		t.Errorf("accept after reject err = %v, want ErrInvalidTransition", err)
	}

	// The agreement is free for a fresh request once nothing live remains.
	if _, err := f.svc.CreateKickoff(context.Background(), &CreateKickoffInput{
		UserID:            uuid.New(),
		AgreementID:       f.agreement.ID,
		AssignedPMID:      f.pm.ID,
		ExpectedStartDate: time.Now().AddDate(0, 1, 0),
	}); err != nil {
		t.Errorf("create after reject: %v", err)
	}
}

func TestUpdateExpectedDatePendingOnly(t *testing.T) {
	f := newKickoffFixture(t)
	request := f.create(t)
	newDate := time.Now().AddDate(0, 3, 0)

	updated, err := f.svc.UpdateExpectedDate(context.Background(), request.ID, newDate)
	if err != nil {
		t.Fatalf("UpdateExpectedDate: %v", err)
	}
	if !updated.ExpectedStartDate.Equal(newDate) {
		t.Errorf("expected start date = %v, want %v", updated.ExpectedStartDate, newDate)
	}

	if _, err := f.svc.Reject(context.Background(), request.ID, uuid.New()); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := f.svc.UpdateExpectedDate(context.Background(), request.ID, newDate.AddDate(0, 1, 0)); err != apperror.ErrInvalidTransition {
		t.Errorf("update on rejected err = %v, want ErrInvalidTransition", err)
	}
}
