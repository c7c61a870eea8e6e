package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/folio-labs/portfolio-backend/config"
)

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// SendEmail sends an email using the Resend API.
//
// Requires environment variables:
//   - RESEND_API_KEY: Resend API key
//   - RESEND_FROM_EMAIL: sender address (e.g., "Site <[email protected]>")
func SendEmail(subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	cfg := config.New()

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if fromEmail == "" {
		return fmt.Errorf("RESEND_FROM_EMAIL environment variable is required")
	}

	payload := ResendEmailRequest{
		From:    fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
