// Package notify delivers new-lead notifications to agency staff via
// the Resend email API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/core/ports"
)

const resendEndpoint = "https://api.resend.com/emails"

// Config holds the Resend delivery settings. Missing APIKey or To
// disables delivery: Send logs and returns nil so lead intake never
// depends on mail configuration.
type Config struct {
	APIKey string
	To     string
	From   string
}

// ResendSender implements ports.LeadSender against the Resend REST API.
type ResendSender struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

func NewResendSender(cfg Config, log zerolog.Logger) *ResendSender {
	return &ResendSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send delivers one lead notification email.
func (s *ResendSender) Send(ctx context.Context, n ports.LeadNotification) error {
	if s.cfg.APIKey == "" || s.cfg.To == "" {
		s.log.Debug().Str("client_id", n.ClientID).Msg("lead notification skipped: missing config")
		return nil
	}

	fullName := strings.TrimSpace(n.FirstName + " " + n.LastName)
	subject := "Nuevo lead web: " + fullName
	if fullName == "" {
		subject = "Nuevo lead web: " + n.Email
	}

	body, err := json.Marshal(resendEmail{
		From:    s.cfg.From,
		To:      []string{s.cfg.To},
		Subject: subject,
		Text:    leadText(n),
	})
	if err != nil {
		return fmt.Errorf("notify: encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		details, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("notify: resend responded %d: %s", resp.StatusCode, details)
	}
	return nil
}

func leadText(n ports.LeadNotification) string {
	services := "-"
	if len(n.ServiceTypes) > 0 {
		services = strings.Join(n.ServiceTypes, ", ")
	}

	lines := []string{
		"Nuevo lead desde el formulario web",
		"",
		line("Nombre", strings.TrimSpace(n.FirstName+" "+n.LastName)),
		line("Email", n.Email),
		line("Teléfono", n.Phone),
		line("Destino", n.Destination),
		line("Fecha de viaje", n.TravelDate),
		line("Viajeros", n.TravelersInfo),
		line("Servicios", services),
		line("Preferencias", n.Preferences),
		line("Comentarios", n.AdditionalComments),
	}
	return strings.Join(lines, "\n")
}

func line(label, value string) string {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	return label + ": " + strings.TrimSpace(value)
}
