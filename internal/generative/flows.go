package generative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// WaiterCountInput describes the event a staffing suggestion is made for.
type WaiterCountInput struct {
	Attendees int
	MenuType  string
	EventType string
	Venue     string
}

type WaiterCountSuggestion struct {
	Waiters   int    `json:"waiters"`
	Captains  int    `json:"captains"`
	Helpers   int    `json:"helpers"`
	Rationale string `json:"rationale"`
}

func (s *WaiterCountSuggestion) Validate() error {
	switch {
	case s.Waiters < 1:
		return errors.New("waiters must be at least 1")
	case s.Captains < 0 || s.Helpers < 0:
		return errors.New("counts must not be negative")
	case strings.TrimSpace(s.Rationale) == "":
		return errors.New("rationale is required")
	}
	return nil
}

type DraftLineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// InvoiceDraftInput carries the computed figures; the model only words them.
type InvoiceDraftInput struct {
	InvoiceNumber string
	ClientName    string
	ClientAddress string
	ClientGSTIN   string
	EventDate     string
	EventType     string
	Attendees     int
	MenuType      string
	LineItems     []DraftLineItem
	Subtotal      float64
	GSTAmount     float64
	TotalAmount   float64
}

type InvoiceDraft struct {
	Title        string          `json:"title"`
	Summary      string          `json:"summary"`
	LineItems    []DraftLineItem `json:"line_items"`
	Notes        string          `json:"notes"`
	PaymentTerms string          `json:"payment_terms"`
}

func (d *InvoiceDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if len(d.LineItems) == 0 {
		return errors.New("line_items must not be empty")
	}
	for i, li := range d.LineItems {
		if strings.TrimSpace(li.Description) == "" {
			return fmt.Errorf("line_items[%d].description is required", i)
		}
		if li.Amount < 0 {
			return fmt.Errorf("line_items[%d].amount must not be negative", i)
		}
	}
	return nil
}

type AgreementInput struct {
	PartyName    string
	PartyAddress string
	PartyGSTIN   string
	EventDate    string
	EventType    string
	Venue        string
	Attendees    int
	MenuType     string
	Terms        string
}

type AgreementClause struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type AgreementDraft struct {
	Title        string            `json:"title"`
	Parties      []string          `json:"parties"`
	Clauses      []AgreementClause `json:"clauses"`
	PaymentTerms string            `json:"payment_terms"`
}

func (d *AgreementDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if len(d.Parties) < 2 {
		return errors.New("parties must name both sides")
	}
	if len(d.Clauses) == 0 {
		return errors.New("clauses must not be empty")
	}
	for i, c := range d.Clauses {
		if strings.TrimSpace(c.Heading) == "" || strings.TrimSpace(c.Body) == "" {
			return fmt.Errorf("clauses[%d] needs heading and body", i)
		}
	}
	return nil
}

var prompts = template.Must(template.New("prompts").Parse(`
{{define "waiters"}}You plan staffing for a catering company.
Suggest staff for an event with {{.Attendees}} guests, {{.MenuType}} menu{{if .EventType}}, event type "{{.EventType}}"{{end}}{{if .Venue}}, venue "{{.Venue}}"{{end}}.
Reply with only a JSON object: {"waiters": int, "captains": int, "helpers": int, "rationale": string}.{{end}}

{{define "invoice"}}Write the wording for a catering invoice. Do not change any number.
Invoice {{.InvoiceNumber}} for {{.ClientName}}{{if .ClientAddress}}, {{.ClientAddress}}{{end}}{{if .ClientGSTIN}} (GSTIN {{.ClientGSTIN}}){{end}}.
Event on {{.EventDate}}{{if .EventType}} ({{.EventType}}){{end}}, {{.Attendees}} guests, {{.MenuType}} menu.
Line items:
{{range .LineItems}}- {{.Description}}: {{.Quantity}} x {{printf "%.2f" .Rate}} = {{printf "%.2f" .Amount}}
{{end}}Subtotal {{printf "%.2f" .Subtotal}}, GST {{printf "%.2f" .GSTAmount}}, total {{printf "%.2f" .TotalAmount}} INR.
Reply with only a JSON object: {"title": string, "summary": string, "line_items": [{"description": string, "quantity": int, "rate": number, "amount": number}], "notes": string, "payment_terms": string}.{{end}}

{{define "agreement"}}Draft a service agreement between our catering and event staffing company and {{.PartyName}}{{if .PartyAddress}} of {{.PartyAddress}}{{end}}{{if .PartyGSTIN}} (GSTIN {{.PartyGSTIN}}){{end}}.
{{if .EventDate}}Event date {{.EventDate}}. {{end}}{{if .EventType}}Event type {{.EventType}}. {{end}}{{if .Venue}}Venue {{.Venue}}. {{end}}{{if .Attendees}}{{.Attendees}} guests, {{.MenuType}} menu. {{end}}
{{if .Terms}}Agreed terms: {{.Terms}}
{{end}}Reply with only a JSON object: {"title": string, "parties": [string], "clauses": [{"heading": string, "body": string}], "payment_terms": string}.{{end}}
`))

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}

// Drafter runs the three drafting flows against a Generator.
type Drafter struct {
	gen Generator
}

func NewDrafter(gen Generator) *Drafter {
	return &Drafter{gen: gen}
}

func (d *Drafter) SuggestWaiterCount(ctx context.Context, in WaiterCountInput) (*WaiterCountSuggestion, error) {
	prompt, err := render("waiters", in)
	if err != nil {
		return nil, err
	}
	var out WaiterCountSuggestion
	if err := d.gen.GenerateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *Drafter) DraftInvoice(ctx context.Context, in InvoiceDraftInput) (*InvoiceDraft, error) {
	prompt, err := render("invoice", in)
	if err != nil {
		return nil, err
	}
	var out InvoiceDraft
	if err := d.gen.GenerateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *Drafter) DraftAgreement(ctx context.Context, in AgreementInput) (*AgreementDraft, error) {
	prompt, err := render("agreement", in)
	if err != nil {
		return nil, err
	}
	var out AgreementDraft
	if err := d.gen.GenerateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
