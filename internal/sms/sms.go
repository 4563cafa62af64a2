package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"staffing-backend/pkg/logger"
)

// Provider delivers a single text message and returns the provider's reference id.
type Provider interface {
	Send(ctx context.Context, phone, message string) (string, error)
	// Cost is the price of one message, recorded in the SMS log.
	Cost() float64
}

// Fast2SMSConfig holds SMS configuration
type Fast2SMSConfig struct {
	APIKey     string
	BaseURL    string
	Route      string // "q" (quick/expensive), "dlt" (cheap/production), "v3" (promotional)
	SenderID   string // For DLT and promotional routes
	TemplateID string // For DLT route
	CostPerSMS float64
}

// Fast2SMSService implements Provider for Fast2SMS (India)
type Fast2SMSService struct {
	cfg    Fast2SMSConfig
	client *http.Client
}

func NewFast2SMSService(cfg Fast2SMSConfig) *Fast2SMSService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.fast2sms.com/dev/bulkV2"
	}
	if cfg.Route == "" {
		cfg.Route = "q"
	}
	return &Fast2SMSService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Fast2SMSService) Cost() float64 { return s.cfg.CostPerSMS }

func (s *Fast2SMSService) requestURL(phone, message string) string {
	q := url.Values{}
	q.Set("authorization", s.cfg.APIKey)
	q.Set("numbers", phone)

	switch s.cfg.Route {
	case "dlt":
		q.Set("route", "dlt")
		q.Set("sender_id", s.cfg.SenderID)
		q.Set("message", s.cfg.TemplateID)
		q.Set("variables_values", message)
		q.Set("flash", "0")
	case "v3":
		// Promotional route, 9am-9pm only
		q.Set("route", "v3")
		q.Set("sender_id", s.cfg.SenderID)
		q.Set("message", message)
		q.Set("language", "english")
	default:
		q.Set("route", "q")
		q.Set("message", message)
		q.Set("language", "english")
		q.Set("flash", "0")
	}
	return s.cfg.BaseURL + "?" + q.Encode()
}

// Send sends a single SMS message
func (s *Fast2SMSService) Send(ctx context.Context, phone, message string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(phone, message), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create SMS request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SMS API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp struct {
		Return    bool     `json:"return"`
		RequestID string   `json:"request_id"`
		Message   []string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("SMS API returned unreadable body: %w", err)
	}
	if !apiResp.Return {
		return "", fmt.Errorf("SMS API error: %s", strings.Join(apiResp.Message, "; "))
	}
	return apiResp.RequestID, nil
}

// MockSMSService logs messages instead of sending them. Used when no API key is configured.
type MockSMSService struct {
	log logger.Logger

	mu   sync.Mutex
	sent []SentMessage
}

type SentMessage struct {
	Phone   string
	Message string
}

func NewMockSMSService(log logger.Logger) *MockSMSService {
	return &MockSMSService{log: log}
}

func (s *MockSMSService) Cost() float64 { return 0 }

func (s *MockSMSService) Send(_ context.Context, phone, message string) (string, error) {
	s.log.Info("mock sms", "phone", phone, "message", message)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, SentMessage{Phone: phone, Message: message})
	return fmt.Sprintf("mock-%d", len(s.sent)), nil
}

// Sent returns a copy of every message passed to Send.
func (s *MockSMSService) Sent() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentMessage(nil), s.sent...)
}
