// Seed fills the local store with sample entries spanning the last two
// weeks, for development and demos.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"unitflow/internal/config"
	"unitflow/internal/logger"
	"unitflow/internal/model"
	"unitflow/internal/store"

	"github.com/google/uuid"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenDB()
	if err != nil {
		log.Fatal(err)
	}
	st, err := store.New(db)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	now := time.Now()
	samples := []struct {
		age      time.Duration
		typ      string
		severity string
		unit     string
		qty      string
		notes    string
	}{
		{2 * time.Hour, model.TypeReplenishment, model.SeverityLow, "4 West", "12", "restocked gloves"},
		{5 * time.Hour, model.TypeIncident, model.SeverityHigh, "ICU", "", "cart blocked fire exit"},
		{26 * time.Hour, model.TypeHandoff, model.SeverityMedium, "4 West", "", "two carts pending"},
		{3 * 24 * time.Hour, model.TypeMaintenance, model.SeverityLow, "Pharmacy", "1", "scanner battery swapped"},
		{9 * 24 * time.Hour, model.TypeReplenishment, model.SeverityLow, "ER", "30", "saline topped up"},
	}

	logs := st.LoadLogs(ctx)
	for _, s := range samples {
		logs = append(logs, model.LogRecord{
			ID:       uuid.NewString(),
			Ts:       now.Add(-s.age).UnixMilli(),
			Author:   "Sample Author",
			Shift:    "Day",
			Unit:     s.unit,
			Type:     s.typ,
			Severity: s.severity,
			Qty:      s.qty,
			Notes:    s.notes,
		})
	}
	if err := st.SaveLogs(ctx, logs); err != nil {
		log.Fatal(err)
	}
	logger.Info("seeded", "added", len(samples), "total", len(logs))
}
