package analytics

import (
	"go.uber.org/zap"

	"petiscaria/internal/apiclient"
	"petiscaria/internal/config"
)

type Module struct {
	Dashboard  *Dashboard
	Goals      *Goals
	Monitor    *Monitor
	Controller *Controller
}

// NewModule builds the dashboard services. The table monitor is returned
// stopped; callers Start it alongside the feeds.
func NewModule(api *apiclient.Client, cfg config.TablesConfig, logger *zap.Logger) *Module {
	dashboard := NewDashboard(api, logger)
	goals := NewGoals(api, logger)
	monitor := NewMonitor(api, cfg.Count, cfg.RefreshInterval, logger)
	return &Module{
		Dashboard:  dashboard,
		Goals:      goals,
		Monitor:    monitor,
		Controller: NewController(dashboard, goals, monitor, logger),
	}
}
