// Command migrate applies the SQL files under migrations/ through the Atlas CLI.
//
// The atlas binary must be on PATH, and migrations/atlas.sum must be current
// (run `atlas migrate hash --dir file://migrations` after adding a file).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"salon-booking/internal/pkg/config"
	"salon-booking/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	if err := run(*dir, *dryRun, *timeout); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(dir string, dryRun bool, timeout time.Duration) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Booking.Store != config.StoreDriverPostgres {
		return errs.Newf("BOOKING_STORE is %q, nothing to migrate", cfg.Booking.Store)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return errs.Wrap(err, "failed to initialize atlas client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: "file://" + dir,
		DryRun: dryRun,
	})
	if err != nil {
		return errs.Wrap(err, "atlas migrate apply")
	}

	for _, applied := range res.Applied {
		slog.Info("applied migration", "version", applied.Version, "name", applied.Name)
	}
	slog.Info("migrations complete",
		"current", res.Current,
		"target", res.Target,
		"applied", len(res.Applied),
		"dry_run", dryRun,
	)
	return nil
}
