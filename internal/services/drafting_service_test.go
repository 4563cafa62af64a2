package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/generative"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

// cannedGenerator answers every prompt with the same JSON document.
type cannedGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *cannedGenerator) GenerateJSON(_ context.Context, prompt string, out generative.Output) error {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return g.err
	}
	if err := json.Unmarshal([]byte(g.reply), out); err != nil {
		return err
	}
	return out.Validate()
}

func newDraftingEnv(t *testing.T, gen generative.Generator) (*testEnv, *DraftingService) {
	t.Helper()
	e := newTestEnv(t)
	svc := NewDraftingService(generative.NewDrafter(gen), e.stores.Orders, e.stores.Invoices, e.stores.Firms, e.stores.Users, logger.Discard())
	return e, svc
}

func TestSuggestWaiterCountFromOrder(t *testing.T) {
	gen := &cannedGenerator{reply: `{"waiters": 4, "captains": 1, "helpers": 2, "rationale": "one waiter per 25 guests"}`}
	e, svc := newDraftingEnv(t, gen)
	_, cs := e.client(t, "Asha")
	o := e.order(t, cs, 100, models.MenuNonVeg)

	got, err := svc.SuggestWaiterCount(context.Background(), opsSession, &WaiterCountRequest{OrderID: o.ID})
	if err != nil {
		t.Fatal(err)
	}
	if got.Waiters != 4 || got.Captains != 1 {
		t.Errorf("suggestion = %+v", got)
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "100 guests") || !strings.Contains(gen.prompts[0], "non-veg") {
		t.Errorf("prompt = %q", gen.prompts)
	}
}

func TestSuggestWaiterCountRoles(t *testing.T) {
	gen := &cannedGenerator{reply: `{"waiters": 2, "captains": 1, "helpers": 1, "rationale": "small party"}`}
	_, svc := newDraftingEnv(t, gen)
	req := func() *WaiterCountRequest { return &WaiterCountRequest{Attendees: 20, MenuType: models.MenuVeg} }

	for _, s := range []auth.Session{adminSession, opsSession, salesSession, accountantSession} {
		if _, err := svc.SuggestWaiterCount(context.Background(), s, req()); err != nil {
			t.Errorf("%s: %v", s.Role, err)
		}
	}
	if _, err := svc.SuggestWaiterCount(context.Background(), hrSession, req()); !errors.Is(err, ErrForbidden) {
		t.Errorf("hr: err = %v, want ErrForbidden", err)
	}
}

func TestSuggestWaiterCountValidation(t *testing.T) {
	gen := &cannedGenerator{}
	_, svc := newDraftingEnv(t, gen)
	ctx := context.Background()

	var verr *models.ValidationError
	if _, err := svc.SuggestWaiterCount(ctx, salesSession, &WaiterCountRequest{MenuType: "vegan"}); !errors.As(err, &verr) {
		t.Errorf("err = %v, want validation error", err)
	}
	if _, err := svc.SuggestWaiterCount(ctx, hrSession, &WaiterCountRequest{Attendees: 10, MenuType: models.MenuVeg}); !errors.Is(err, ErrForbidden) {
		t.Errorf("hr: err = %v, want ErrForbidden", err)
	}
	if len(gen.prompts) != 0 {
		t.Errorf("model called %d times", len(gen.prompts))
	}
}

func TestDraftInvoiceNeedsStoredInvoice(t *testing.T) {
	gen := &cannedGenerator{reply: `{"title": "Tax Invoice", "summary": "Catering", "line_items": [{"description": "Catering", "quantity": 10, "rate": 1200, "amount": 12000}], "notes": "", "payment_terms": "15 days"}`}
	e, svc := newDraftingEnv(t, gen)
	_, cs := e.client(t, "Asha")
	ctx := context.Background()
	o := e.reviewedOrder(t, cs, 10, models.MenuVeg)

	if _, err := svc.DraftInvoice(ctx, accountantSession, o.ID); !errors.Is(err, ErrInvoiceNotReady) {
		t.Fatalf("err = %v, want ErrInvoiceNotReady", err)
	}
	if _, err := e.invoices.Generate(ctx, accountantSession, o.ID); err != nil {
		t.Fatal(err)
	}
	draft, err := svc.DraftInvoice(ctx, accountantSession, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if draft.Title != "Tax Invoice" {
		t.Errorf("draft = %+v", draft)
	}
	if !strings.Contains(gen.prompts[0], "total 15576.00") {
		t.Errorf("prompt lacks computed total: %q", gen.prompts[0])
	}
}

func TestDraftAgreementParties(t *testing.T) {
	gen := &cannedGenerator{reply: `{"title": "Service Agreement", "parties": ["Us", "Them"], "clauses": [{"heading": "Scope", "body": "Staffing"}], "payment_terms": "50% advance"}`}
	e, svc := newDraftingEnv(t, gen)
	ctx := context.Background()
	client, _ := e.client(t, "Asha")

	var verr *models.ValidationError
	if _, err := svc.DraftAgreement(ctx, salesSession, &AgreementRequest{}); !errors.As(err, &verr) {
		t.Errorf("no party: err = %v, want validation error", err)
	}
	if _, err := svc.DraftAgreement(ctx, salesSession, &AgreementRequest{FirmID: "f", ClientID: client.ID}); !errors.As(err, &verr) {
		t.Errorf("two parties: err = %v, want validation error", err)
	}
	draft, err := svc.DraftAgreement(ctx, salesSession, &AgreementRequest{ClientID: client.ID, Terms: "net 30"})
	if err != nil {
		t.Fatal(err)
	}
	if len(draft.Clauses) != 1 {
		t.Errorf("draft = %+v", draft)
	}
	if !strings.Contains(gen.prompts[0], "Asha") || !strings.Contains(gen.prompts[0], "net 30") {
		t.Errorf("prompt = %q", gen.prompts[0])
	}
}

func TestDraftingErrorMapping(t *testing.T) {
	ctx := context.Background()
	req := &WaiterCountRequest{Attendees: 10, MenuType: models.MenuVeg}

	_, svc := newDraftingEnv(t, &cannedGenerator{err: generative.ErrNotConfigured})
	if _, err := svc.SuggestWaiterCount(ctx, adminSession, req); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}

	_, svc = newDraftingEnv(t, &cannedGenerator{reply: `{"waiters": 0, "rationale": ""}`})
	if _, err := svc.SuggestWaiterCount(ctx, adminSession, req); !errors.Is(err, ErrExternal) {
		t.Errorf("schema mismatch: err = %v, want ErrExternal", err)
	}
}
