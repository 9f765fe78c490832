package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: creates the delivery record,
// renders the PDF, and hands the customer email off to QueueEmail.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parfumpos/internal/infra"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxReceiptRetries bounds how often the retry cron re-attempts a delivery
// before parking it in the DLQ.
const MaxReceiptRetries = 5

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	TransactionID string  `json:"transaction_id"`
	CustomerEmail *string `json:"customer_email,omitempty"`
}

// ReceiptWorker turns paid transactions into PDF receipts.
type ReceiptWorker struct {
	receipts     repository.ReceiptRepository
	transactions repository.TransactionRepository
	dispatcher   *Dispatcher
	storeName    string
	storagePath  string
}

func NewReceiptWorker(
	receipts repository.ReceiptRepository,
	transactions repository.TransactionRepository,
	dispatcher *Dispatcher,
	storeName string,
	storagePath string,
) *ReceiptWorker {
	return &ReceiptWorker{
		receipts:     receipts,
		transactions: transactions,
		dispatcher:   dispatcher,
		storeName:    storeName,
		storagePath:  storagePath,
	}
}

// Process handles a single receipt job:
//  1. Fetch the transaction with its items
//  2. Create the Receipt record (idempotent per transaction)
//  3. Render the PDF
//  4. Enqueue the customer email, or mark the receipt sent when there is no
//     address to deliver to
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	txID, err := uuid.Parse(payload.TransactionID)
	if err != nil {
		log.Error().Str("transaction_id", payload.TransactionID).Msg("receipt_worker: invalid transaction_id")
		return
	}

	t, err := w.transactions.FindByID(ctx, txID)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", payload.TransactionID).Msg("receipt_worker: transaction not found")
		return
	}

	// Re-dispatched jobs reuse the existing record.
	receipt, err := w.receipts.FindByTransactionID(ctx, txID)
	if err != nil {
		receipt = &model.Receipt{
			TransactionID: txID,
			Email:         payload.CustomerEmail,
			Total:         t.Total,
			Status:        "pending",
		}
		if err := w.receipts.Create(ctx, receipt); err != nil {
			log.Error().Err(err).Str("transaction_id", payload.TransactionID).Msg("receipt_worker: failed to create receipt")
			return
		}
	}

	pdfPath, pdfErr := infra.GenerateReceiptPDF(t, w.storeName, w.storagePath)
	if pdfErr != nil {
		log.Warn().Err(pdfErr).Str("transaction_id", payload.TransactionID).Msg("receipt_worker: PDF generation failed")
		msg := pdfErr.Error()
		receipt.Status = "error"
		receipt.LastError = &msg
		next := time.Now().Add(retryBackoff(1))
		receipt.NextRetryAt = &next
		_ = w.receipts.Update(ctx, receipt)
		return
	}
	receipt.PDFPath = &pdfPath

	if payload.CustomerEmail == nil || *payload.CustomerEmail == "" {
		// Nothing to mail — the archived PDF is the deliverable.
		receipt.Status = "sent"
		_ = w.receipts.Update(ctx, receipt)
		log.Info().Str("pdf", pdfPath).Str("transaction_id", payload.TransactionID).Msg("receipt_worker: PDF archived")
		return
	}

	_ = w.receipts.Update(ctx, receipt)

	emailJob := EmailJobPayload{
		ReceiptID: receipt.ID.String(),
		ToEmail:   *payload.CustomerEmail,
		Subject:   fmt.Sprintf("%s — Receipt #%d", w.storeName, t.Number),
		Body:      fmt.Sprintf("Thank you for your purchase.\nTotal: %s", t.Total.StringFixed(2)),
		PDFPath:   pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", *payload.CustomerEmail).Msg("receipt_worker: failed to enqueue email")
		return
	}
	log.Info().Str("email", *payload.CustomerEmail).Str("transaction_id", payload.TransactionID).Msg("receipt_worker: email job enqueued")
}

// retryBackoff returns the wait before the given retry attempt:
// 1m, 2m, 4m … capped at 30m.
func retryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	wait := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if wait > 30*time.Minute {
		wait = 30 * time.Minute
	}
	return wait
}
