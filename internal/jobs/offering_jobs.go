package jobs

import (
	"context"
	"fmt"

	"brickvest-backend/internal/logger"
	"brickvest-backend/internal/utils"
)

// CloseFilledOfferings administratively closes OPEN offerings whose shares
// are fully subscribed. The close is a single UPDATE, so it cannot interleave
// with an in-flight backer commitment.
func (jr *JobRunner) CloseFilledOfferings() {
	jr.runWithRecovery("CloseFilledOfferings", func() {
		ctx := context.Background()

		query := `
			UPDATE offerings
			SET status = 'CLOSED',
			    date_closed = NOW()
			WHERE status = 'OPEN'
			  AND filled = quantity
			RETURNING id, property_id, filled
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to close filled offerings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, propertyID string
			var filled int32
			if err := rows.Scan(&id, &propertyID, &filled); err != nil {
				logger.Error("Failed to scan closed offering", "error", err)
				continue
			}
			count++
			logger.Debug("Closed fully subscribed offering",
				"offering_id", id,
				"property_id", propertyID,
				"filled", filled)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating closed offerings", "error", err)
			return
		}

		logger.Info("Closed fully subscribed offerings", "count", count)
	})
}

// SendOpenOfferingDigest emails operations a summary of every OPEN offering
// and its fill level.
func (jr *JobRunner) SendOpenOfferingDigest() {
	jr.runWithRecovery("SendOpenOfferingDigest", func() {
		ctx := context.Background()

		opsEmail := jr.config.SendGrid.OpsEmail
		if opsEmail == "" {
			logger.Warn("No ops email configured, skipping digest")
			return
		}

		offerings, err := jr.services.Offering.ListOfferings(ctx, "OPEN", "")
		if err != nil {
			logger.Error("Failed to list open offerings", "error", err)
			return
		}
		if len(offerings) == 0 {
			logger.Info("No open offerings, skipping digest")
			return
		}

		lines := make([]string, 0, len(offerings))
		for _, o := range offerings {
			lines = append(lines, fmt.Sprintf("%s property=%s price=%s filled=%d/%d",
				o.ID, o.PropertyID, utils.FormatPriceCents(o.PriceCents), o.Filled, o.Quantity))
		}

		if err := jr.services.Email.SendOpenOfferingDigest(ctx, opsEmail, lines); err != nil {
			logger.Error("Failed to send open offering digest", "error", err)
			return
		}

		logger.Info("Sent open offering digest", "offerings", len(lines))
	})
}
