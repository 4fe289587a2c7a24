// generate-actions runs one generation pass over open discrepancies without
// going through the HTTP surface. Intended for Cloud Scheduler / cron.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     go run ./cmd/generate-actions [-zone A]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/engine"
)

func main() {
	zone := flag.String("zone", "", "Optional: restrict generation to one warehouse zone")
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall run timeout")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	gen := engine.NewGenerator(engine.DatabaseStore{}, engine.DatabaseStore{}, config.GetLogger())
	result, err := gen.Generate(ctx, engine.Scope{Zone: *zone})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if len(result.Actions) > 0 {
		ids := make([]string, 0, len(result.Actions))
		for _, a := range result.Actions {
			ids = append(ids, a.ID)
		}
		if err := config.PublishActionEvent(ctx, config.ActionEventMessage{
			EventType:  "action.generated",
			ActionIds:  ids,
			Count:      len(ids),
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "event publish failed (actions already persisted): %v\n", err)
		}
	}

	fmt.Printf("generated=%d skipped_duplicates=%d failed=%d\n",
		len(result.Actions), result.SkippedDuplicates, result.FailedCount)
	if result.FailedCount > 0 {
		os.Exit(2)
	}
}
