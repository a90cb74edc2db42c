package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"hotel-manager/dto"
	"hotel-manager/services/logger"
	"hotel-manager/services/notification"
)

const (
	dashboardRefreshSpec = "*/15 * * * *"
	midnightSpec         = "0 0 * * *"
	jobTimeout           = time.Minute
)

// DashboardRefresher recomputes the cached dashboard summary
type DashboardRefresher interface {
	Refresh(ctx context.Context) (*dto.DashboardSummary, error)
}

// InitCronJobs registers the periodic jobs and starts the scheduler
func InitCronJobs(c *cron.Cron, dashboard DashboardRefresher, notifier notification.Service, log logger.Logger) error {
	if log == nil {
		log = logger.Nop{}
	}
	job := RefreshDashboardJob(dashboard, notifier, log)

	// every quarter hour, and at midnight so arrivals and departures roll over to the new day
	for _, spec := range []string{dashboardRefreshSpec, midnightSpec} {
		if _, err := c.AddFunc(spec, job); err != nil {
			return err
		}
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}

// RefreshDashboardJob returns the function the scheduler runs
func RefreshDashboardJob(dashboard DashboardRefresher, notifier notification.Service, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		summary, err := dashboard.Refresh(ctx)
		if err != nil {
			log.Error("dashboard refresh failed: %v", err)
			return
		}
		log.Debug("dashboard refreshed: %d occupied rooms", summary.OccupiedRooms)

		if notifier == nil {
			return
		}
		msg := notification.NewMessageBuilder(notification.EventDashboardRefreshed).
			Message("%d of %d active rooms occupied", summary.OccupiedRooms, summary.ActiveRooms).
			At(summary.GeneratedAt).
			Build()
		if err := notifier.SendMessage(msg); err != nil {
			log.Error("failed to broadcast dashboard refresh: %v", err)
		}
	}
}
