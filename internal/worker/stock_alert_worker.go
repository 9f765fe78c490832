package worker

// stock_alert_worker.go
// Processes low-stock check jobs dispatched after each paid sale. Queries
// variants at or under the configured limit and mails the operator a digest.
// A Redis SETNX throttle caps the digest to one per hour regardless of how
// many sales trigger the check.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"parfumpos/internal/infra"
	"parfumpos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	stockAlertThrottleKey = "stock_alert:throttle"
	stockAlertInterval    = time.Hour
)

// StockAlertJobPayload is the job envelope sent to QueueStockAlert.
type StockAlertJobPayload struct {
	TransactionID string `json:"transaction_id"`
}

// StockAlertWorker mails the operator when variants run low.
type StockAlertWorker struct {
	products   repository.ProductRepository
	mailer     *infra.Mailer
	cb         *infra.Breaker
	rdb        *redis.Client
	alertEmail string
	storeName  string
	limit      int
}

func NewStockAlertWorker(
	products repository.ProductRepository,
	mailer *infra.Mailer,
	cb *infra.Breaker,
	rdb *redis.Client,
	alertEmail, storeName string,
	limit int,
) *StockAlertWorker {
	return &StockAlertWorker{
		products:   products,
		mailer:     mailer,
		cb:         cb,
		rdb:        rdb,
		alertEmail: alertEmail,
		storeName:  storeName,
		limit:      limit,
	}
}

// Process checks the catalog for low stock and sends at most one digest per
// throttle window.
func (w *StockAlertWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload StockAlertJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("stock_alert_worker: invalid payload")
		return
	}
	if w.alertEmail == "" {
		return
	}

	// One digest per window — the first job in wins, the rest are no-ops.
	ok, err := w.rdb.SetNX(ctx, stockAlertThrottleKey, time.Now().UTC().Format(time.RFC3339), stockAlertInterval).Result()
	if err != nil {
		log.Warn().Err(err).Msg("stock_alert_worker: throttle check failed")
		return
	}
	if !ok {
		return
	}

	variants, err := w.products.ListLowStock(ctx, w.limit)
	if err != nil {
		log.Error().Err(err).Msg("stock_alert_worker: low stock query failed")
		return
	}
	if len(variants) == 0 {
		// Nothing low — release the throttle so the next sale re-checks.
		_ = w.rdb.Del(ctx, stockAlertThrottleKey).Err()
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The following items are at or below the low-stock limit (%d):\n\n", w.limit)
	for _, v := range variants {
		name := v.Name
		if v.Product != nil {
			name = v.Product.Name + " — " + v.Name
		}
		fmt.Fprintf(&b, "  %-40s %d %s\n", name, v.Stock, v.UnitCode)
	}

	subject := fmt.Sprintf("%s — Low stock alert (%d items)", w.storeName, len(variants))
	sendErr := w.cb.Do(func() error {
		return w.mailer.SendReceipt(w.alertEmail, subject, b.String(), "")
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Msg("stock_alert_worker: failed to send digest")
		return
	}
	log.Info().Int("items", len(variants)).Msg("stock_alert_worker: digest sent")
}
