package sms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

func TestFast2SMS_Send(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"return":true,"request_id":"req-42","message":["SMS sent successfully."]}`))
	}))
	defer srv.Close()

	s := NewFast2SMSService(Fast2SMSConfig{APIKey: "key", BaseURL: srv.URL})
	ref, err := s.Send(context.Background(), "9876543210", "Event tomorrow at 6pm")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if ref != "req-42" {
		t.Errorf("ref = %q", ref)
	}
	q := got.URL.Query()
	if q.Get("authorization") != "key" || q.Get("route") != "q" || q.Get("numbers") != "9876543210" {
		t.Errorf("unexpected query %v", q)
	}
	if q.Get("message") != "Event tomorrow at 6pm" {
		t.Errorf("message = %q", q.Get("message"))
	}
}

func TestFast2SMS_ApiRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"return":false,"message":["Invalid Authentication"]}`))
	}))
	defer srv.Close()

	s := NewFast2SMSService(Fast2SMSConfig{APIKey: "bad", BaseURL: srv.URL})
	if _, err := s.Send(context.Background(), "9876543210", "hi"); err == nil {
		t.Fatal("expected error for return=false")
	}
}

func TestFast2SMS_DLTRoute(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"return":true,"request_id":"x"}`))
	}))
	defer srv.Close()

	s := NewFast2SMSService(Fast2SMSConfig{APIKey: "k", BaseURL: srv.URL, Route: "dlt", SenderID: "EVSTAF", TemplateID: "1001"})
	if _, err := s.Send(context.Background(), "9876543210", "6pm|Hall A"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	q := got.URL.Query()
	if q.Get("route") != "dlt" || q.Get("message") != "1001" || q.Get("variables_values") != "6pm|Hall A" {
		t.Errorf("unexpected query %v", q)
	}
}

type flakyProvider struct {
	fail map[string]bool
}

func (p flakyProvider) Cost() float64 { return 0.25 }

func (p flakyProvider) Send(_ context.Context, phone, _ string) (string, error) {
	if p.fail[phone] {
		return "", errors.New("number blocked")
	}
	return "ref-" + phone, nil
}

type memLogs struct {
	mu   sync.Mutex
	rows []*models.SMSLog
}

func (m *memLogs) Create(_ context.Context, l *models.SMSLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, l)
	return nil
}

func TestDispatcher_SendBatchSummarises(t *testing.T) {
	logs := &memLogs{}
	d := NewDispatcher(flakyProvider{fail: map[string]bool{"2222222222": true}}, 1000, logs, logger.Discard())

	summary := d.SendBatch(context.Background(), []Message{
		{OrderID: "o1", StaffID: "s1", Phone: "1111111111", Type: models.SMSTypeEventNotice, Text: "hi"},
		{OrderID: "o1", StaffID: "s2", Phone: "2222222222", Type: models.SMSTypeEventNotice, Text: "hi"},
		{OrderID: "o1", StaffID: "s3", Phone: "3333333333", Type: models.SMSTypeEventNotice, Text: "hi"},
	})
	d.Wait()

	if summary.Sent != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].StaffID != "s2" {
		t.Errorf("failures = %+v", summary.Failures)
	}
	if len(logs.rows) != 3 {
		t.Fatalf("logged %d rows, want 3", len(logs.rows))
	}
	for _, row := range logs.rows {
		if row.Phone == "2222222222" && (row.Status != models.SMSStatusFailed || row.ErrorMessage == "") {
			t.Errorf("failed row not marked: %+v", row)
		}
	}
}

func TestDispatcher_CancelledContext(t *testing.T) {
	d := NewDispatcher(NewMockSMSService(logger.Discard()), 1000, nil, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := d.SendBatch(ctx, []Message{{Phone: "1111111111", Text: "hi"}})
	if summary.Sent != 0 || summary.Failed != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestMockSMSService_RecordsMessages(t *testing.T) {
	m := NewMockSMSService(logger.Discard())
	m.Send(context.Background(), "9876543210", "hello")
	if sent := m.Sent(); len(sent) != 1 || sent[0].Message != "hello" {
		t.Errorf("sent = %+v", sent)
	}
}
