package core

import (
	"time"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
)

// recordRun stores a finished report in the history store, if one is configured.
// Tracking failures are logged and never abort the run.
func recordRun(cfg *contract.Config, mgr contract.HistoryManager, startTime time.Time, report *schema.Report) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(startTime, cfg.ConfigParams())
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return
	}
	if runID <= 0 {
		return // no-op backend
	}

	if err := store.RecordCompleteness(runID, report.Completeness); err != nil {
		contract.LogWarn("Failed to record completeness history", err)
	}
	if err := store.EndRun(runID, time.Now(), report.Configs.TotalServers, len(report.Insights)); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}
