package jobs

import (
	"context"
	"time"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/logger"
)

// ExpireStaleBookingRequests rejects REQUESTED bookings older than the
// configured TTL and releases the vehicle and implement holds they carry.
// Without this, a farmer request an operator never answers would pin the
// equipment forever.
func (jr *JobRunner) ExpireStaleBookingRequests() {
	jr.runWithRecovery("ExpireStaleBookingRequests", func() {
		ttl := jr.config.Booking.RequestTTLHours
		if ttl <= 0 {
			logger.Debug("Request expiry disabled", "ttl_hours", ttl)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		expired, err := jr.services.Booking.ExpireStaleRequests(ctx, ttl)
		if err != nil {
			logger.Error("Failed to expire stale booking requests", "error", err)
			return
		}
		if expired > 0 {
			logger.Info("Expired stale booking requests", "count", expired, "ttl_hours", ttl)
		}
	})
}
