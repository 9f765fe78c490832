package worker

// retry_cron.go
// Background goroutine that periodically re-attempts delivery of receipts
// stuck in status='error' with a next_retry_at in the past. Uses the circuit
// breaker to avoid hammering a downed SMTP server.

import (
	"context"
	"fmt"
	"time"

	"parfumpos/internal/infra"
	"parfumpos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const retryTickInterval = 30 * time.Second

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	Receipts  repository.ReceiptRepository
	Mailer    *infra.Mailer
	CB        *infra.Breaker
	RDB       *redis.Client
	StoreName string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries errored receipts, and re-attempts delivery through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed server
	if cfg.CB.Open() {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	receipts, err := cfg.Receipts.ListPendingRetries(ctx, now, MaxReceiptRetries)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(receipts) == 0 {
		return
	}

	log.Info().Int("count", len(receipts)).Msg("retry_cron: processing errored receipts")

	for i := range receipts {
		receipt := &receipts[i]

		// Check CB state before each send — it may have tripped mid-batch
		if cfg.CB.Open() {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		if receipt.Email == nil || *receipt.Email == "" || receipt.PDFPath == nil {
			// Nothing deliverable — stop retrying.
			receipt.NextRetryAt = nil
			_ = cfg.Receipts.Update(ctx, receipt)
			continue
		}

		number := 0
		if receipt.Transaction != nil {
			number = receipt.Transaction.Number
		}
		subject := fmt.Sprintf("%s — Receipt #%d", cfg.StoreName, number)
		body := fmt.Sprintf("Thank you for your purchase.\nTotal: %s", receipt.Total.StringFixed(2))

		sendErr := cfg.CB.Do(func() error {
			return cfg.Mailer.SendReceipt(*receipt.Email, subject, body, *receipt.PDFPath)
		})

		if sendErr == nil {
			receipt.Status = "sent"
			receipt.NextRetryAt = nil
			receipt.LastError = nil
			_ = cfg.Receipts.Update(ctx, receipt)
			log.Info().
				Str("receipt_id", receipt.ID.String()).
				Int("total_retries", receipt.RetryCount).
				Msg("retry_cron: receipt delivered after retry")
			continue
		}

		receipt.RetryCount++
		msg := sendErr.Error()
		receipt.LastError = &msg

		if receipt.RetryCount >= MaxReceiptRetries {
			receipt.NextRetryAt = nil
			_ = cfg.Receipts.Update(ctx, receipt)
			log.Error().
				Str("receipt_id", receipt.ID.String()).
				Int("retries", receipt.RetryCount).
				Msg("retry_cron: max retries exceeded, moving to DLQ")

			payload := fmt.Sprintf(`{"receipt_id":"%s","transaction_id":"%s"}`, receipt.ID, receipt.TransactionID)
			SendToDLQ(ctx, cfg.RDB, QueueReceipt, "receipt", []byte(payload),
				fmt.Sprintf("max retries (%d) exceeded: %s", MaxReceiptRetries, msg),
				receipt.RetryCount)
			continue
		}

		next := time.Now().Add(retryBackoff(receipt.RetryCount))
		receipt.NextRetryAt = &next
		_ = cfg.Receipts.Update(ctx, receipt)
		log.Warn().
			Str("receipt_id", receipt.ID.String()).
			Int("retry_count", receipt.RetryCount).
			Time("next_retry_at", next).
			Msg("retry_cron: delivery failed, scheduled next attempt")
	}
}
