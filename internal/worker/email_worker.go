package worker

// email_worker.go
// Processes email jobs from QueueEmail. Sends PDF receipts via SMTP behind
// the circuit breaker; failures are scheduled for the retry cron.

import (
	"context"
	"encoding/json"
	"time"

	"parfumpos/internal/infra"
	"parfumpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ReceiptID string `json:"receipt_id,omitempty"`
	ToEmail   string `json:"to_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	PDFPath   string `json:"pdf_path"`
}

// EmailWorker delivers receipt emails through the SMTP circuit breaker and
// tracks the outcome on the Receipt record.
type EmailWorker struct {
	mailer   *infra.Mailer
	cb       *infra.Breaker
	receipts repository.ReceiptRepository
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.Breaker, receipts repository.ReceiptRepository) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, receipts: receipts}
}

// Process sends one email. Success marks the linked receipt sent; failure
// marks it errored with the next retry scheduled.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	sendErr := w.cb.Do(func() error {
		return w.mailer.SendReceipt(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})

	if payload.ReceiptID != "" {
		w.recordOutcome(ctx, payload.ReceiptID, sendErr)
	}

	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: receipt sent")
}

func (w *EmailWorker) recordOutcome(ctx context.Context, receiptID string, sendErr error) {
	id, err := uuid.Parse(receiptID)
	if err != nil {
		return
	}
	receipt, err := w.receipts.FindByID(ctx, id)
	if err != nil {
		return
	}

	if sendErr == nil {
		receipt.Status = "sent"
		receipt.NextRetryAt = nil
		receipt.LastError = nil
		_ = w.receipts.Update(ctx, receipt)
		return
	}

	receipt.Status = "error"
	receipt.RetryCount++
	msg := sendErr.Error()
	receipt.LastError = &msg
	next := time.Now().Add(retryBackoff(receipt.RetryCount))
	receipt.NextRetryAt = &next
	_ = w.receipts.Update(ctx, receipt)
}
