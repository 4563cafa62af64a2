package services

import (
	"context"
	"errors"
	"testing"

	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

func TestStaffCreateRules(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	req := &models.StaffRequest{Name: "Kiran", Phone: "9876511111", Role: models.RoleWaiter}
	if _, err := e.staff.Create(ctx, opsSession, req); !errors.Is(err, ErrForbidden) {
		t.Errorf("ops: err = %v, want ErrForbidden", err)
	}
	st, err := e.staff.Create(ctx, hrSession, req)
	if err != nil {
		t.Fatal(err)
	}
	if !st.IsActive || st.StaffType != models.StaffTypePermanent {
		t.Errorf("staff = %+v", st)
	}

	var verr *models.ValidationError
	if _, err := e.staff.Create(ctx, hrSession, &models.StaffRequest{Name: "X", Phone: "9876511112", Role: models.RoleSales}); !errors.As(err, &verr) {
		t.Errorf("office role: err = %v, want validation error", err)
	}
	missing := "no-such-user"
	if _, err := e.staff.Create(ctx, hrSession, &models.StaffRequest{UserID: &missing, Name: "X", Phone: "9876511113", Role: models.RoleWaiter}); !errors.As(err, &verr) {
		t.Errorf("unknown user: err = %v, want validation error", err)
	}
}

func TestStaffLinkedUserIsUnique(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	st, session := e.linkedStaff(t, "Kiran", models.RoleWaiter)

	var verr *models.ValidationError
	if _, err := e.staff.Create(ctx, hrSession, &models.StaffRequest{UserID: st.UserID, Name: "Again", Phone: "9876511114", Role: models.RoleWaiter}); !errors.As(err, &verr) {
		t.Errorf("second link: err = %v, want validation error", err)
	}

	mine, err := e.staff.Mine(ctx, session)
	if err != nil {
		t.Fatal(err)
	}
	if mine.ID != st.ID {
		t.Errorf("mine = %s, want %s", mine.ID, st.ID)
	}
	if _, err := e.staff.Get(ctx, session, st.ID); err != nil {
		t.Errorf("own record: %v", err)
	}
	other := e.staffMember(t, "Meena", models.RoleWaiter)
	if _, err := e.staff.Get(ctx, session, other.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("other record: err = %v, want ErrForbidden", err)
	}
}

func TestStaffListFilters(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.staffMember(t, "Arun", models.RoleWaiter)
	captain := e.staffMember(t, "Bala", models.RoleCaptain)
	gone := e.staffMember(t, "Chitra", models.RoleWaiter)
	if _, err := e.staff.SetActive(ctx, hrSession, gone.ID, false); err != nil {
		t.Fatal(err)
	}

	waiters, err := e.staff.List(ctx, opsSession, models.StaffFilter{Role: models.RoleWaiter, ActiveOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(waiters) != 1 || waiters[0].Name != "Arun" {
		t.Errorf("active waiters = %v", waiters)
	}
	all, err := e.staff.List(ctx, accountantSession, models.StaffFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}
	if _, err := e.staff.List(ctx, salesSession, models.StaffFilter{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("sales: err = %v, want ErrForbidden", err)
	}

	updated, err := e.staff.Update(ctx, hrSession, captain.ID, &models.StaffRequest{Name: "Bala K", Phone: captain.Phone, Role: models.RoleSubCaptain})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Bala K" || updated.Role != models.RoleSubCaptain || !updated.IsActive {
		t.Errorf("updated = %+v", updated)
	}
}

func TestAvailabilityMergeAndClear(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	st, session := e.linkedStaff(t, "Kiran", models.RoleWaiter)

	_, err := e.avail.SetMine(ctx, session, &models.SetAvailabilityRequest{Dates: map[string]models.AvailabilityStatus{
		"2026-12-20": models.Available,
		"2026-12-21": models.Available,
	}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := e.avail.Set(ctx, opsSession, st.ID, &models.SetAvailabilityRequest{Dates: map[string]models.AvailabilityStatus{
		"2026-12-21": models.Unavailable,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if got.On("2026-12-20") != models.Available || got.On("2026-12-21") != models.Unavailable {
		t.Errorf("dates = %v", got.Dates)
	}

	got, err = e.avail.ClearMine(ctx, session, &models.ClearAvailabilityRequest{Dates: []string{"2026-12-20"}})
	if err != nil {
		t.Fatal(err)
	}
	if got.On("2026-12-20") != models.AvailabilityUnknown {
		t.Errorf("cleared date = %s", got.On("2026-12-20"))
	}

	var verr *models.ValidationError
	if _, err := e.avail.SetMine(ctx, session, &models.SetAvailabilityRequest{Dates: map[string]models.AvailabilityStatus{"20-12-2026": models.Available}}); !errors.As(err, &verr) {
		t.Errorf("bad date: err = %v, want validation error", err)
	}

	other := e.staffMember(t, "Meena", models.RoleWaiter)
	if _, err := e.avail.Get(ctx, session, other.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("other staff: err = %v, want ErrForbidden", err)
	}
	if _, err := e.avail.Get(ctx, salesSession, other.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("sales: err = %v, want ErrForbidden", err)
	}
	_, cs := e.client(t, "Asha")
	if _, err := e.avail.GetMine(ctx, cs); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("client without staff record: err = %v, want ErrNotFound", err)
	}
}

func TestFirmsAndInquiries(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	firms := NewFirmService(e.stores.Firms, e.activity)
	inquiries := NewInquiryService(e.stores.Inquiries, e.activity, logger.Discard())

	f, err := firms.Create(ctx, salesSession, &models.FirmRequest{Name: " Acme Caterers ", GSTNumber: "27aaacr5055k1z5"})
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "Acme Caterers" || f.GSTNumber != "27AAACR5055K1Z5" {
		t.Errorf("firm = %+v", f)
	}
	if _, err := firms.Get(ctx, accountantSession, f.ID); err != nil {
		t.Errorf("accountant read: %v", err)
	}
	if _, err := firms.Create(ctx, opsSession, &models.FirmRequest{Name: "X"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("ops create: err = %v, want ErrForbidden", err)
	}
	if err := firms.Delete(ctx, salesSession, f.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := firms.Get(ctx, salesSession, f.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("deleted firm: err = %v, want ErrNotFound", err)
	}

	lead, err := inquiries.Submit(ctx, &models.InquiryRequest{Name: "Ravi", Phone: "+919876522222", EventDate: "2027-01-15", Attendees: 80})
	if err != nil {
		t.Fatal(err)
	}
	if lead.Status != models.InquiryNew || lead.Phone != "919876522222" {
		t.Errorf("lead = %+v", lead)
	}
	if _, err := inquiries.List(ctx, accountantSession, ""); !errors.Is(err, ErrForbidden) {
		t.Errorf("accountant list: err = %v, want ErrForbidden", err)
	}
	updated, err := inquiries.UpdateStatus(ctx, salesSession, lead.ID, models.InquiryContacted)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.InquiryContacted || updated.HandledBy != salesSession.UserID {
		t.Errorf("updated = %+v", updated)
	}
	open, err := inquiries.List(ctx, salesSession, models.InquiryNew)
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 0 {
		t.Errorf("new inquiries = %d, want 0", len(open))
	}
	var verr *models.ValidationError
	if _, err := inquiries.UpdateStatus(ctx, salesSession, lead.ID, "lost"); !errors.As(err, &verr) {
		t.Errorf("bad status: err = %v, want validation error", err)
	}
}
