package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendConfirmation(t *testing.T) {
	var gotPath string
	var gotBody ConfirmationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Setenv("MAILER_URL", srv.URL)
	sender := NewSender()

	err := sender.SendConfirmation(context.Background(), ConfirmationRequest{
		To:      "jane@example.com",
		Subject: "Order Confirmation ORD-123456",
		Text:    "Thank you",
		HTML:    "<p>Thank you</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "/send-confirmation", gotPath)
	assert.Equal(t, "jane@example.com", gotBody.To)
}

func TestSendContact(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Setenv("MAILER_URL", srv.URL)
	sender := NewSender()

	err := sender.SendContact(context.Background(), ContactRequest{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: "Bonjour",
	})
	require.NoError(t, err)
	assert.Equal(t, "/send-contact", gotPath)
}

func TestSendConfirmationRelayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("MAILER_URL", srv.URL)
	sender := NewSender()

	err := sender.SendConfirmation(context.Background(), ConfirmationRequest{To: "x@example.com"})
	assert.Error(t, err)
}

func TestSendConfirmationRelayDown(t *testing.T) {
	// port fermé : l'échec remonte à l'appelant, qui journalise et continue
	t.Setenv("MAILER_URL", "http://127.0.0.1:1")
	sender := NewSender()

	err := sender.SendConfirmation(context.Background(), ConfirmationRequest{To: "x@example.com"})
	assert.Error(t, err)
}
