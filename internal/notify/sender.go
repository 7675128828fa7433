package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// Timeout borné sur l'appel au relais : au-delà, l'envoi est compté comme
// un échec de livraison. La commande, elle, est déjà commise.
const requestTimeout = 10 * time.Second

// Sender pousse les emails vers le relais mail. Best-effort : l'appelant
// journalise l'échec et continue, il ne rollback jamais.
type Sender struct {
	baseURL string
	client  *http.Client
}

// NewSender lit MAILER_URL (défaut : le relais local sur 5001).
func NewSender() *Sender {
	baseURL := os.Getenv("MAILER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5001"
	}
	return &Sender{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// ConfirmationRequest est le contrat de POST /send-confirmation.
type ConfirmationRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// ContactRequest est le contrat de POST /send-contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SendConfirmation livre l'email de confirmation de commande.
func (s *Sender) SendConfirmation(ctx context.Context, req ConfirmationRequest) error {
	return s.post(ctx, "/send-confirmation", req)
}

// SendContact relaie un message du formulaire de contact.
func (s *Sender) SendContact(ctx context.Context, req ContactRequest) error {
	return s.post(ctx, "/send-contact", req)
}

func (s *Sender) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("le relais mail a répondu %d", resp.StatusCode)
	}

	log.Printf("📤 Email relayé via %s", path)
	return nil
}
