package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cory-johannsen/dfcombat/internal/sim"
	"github.com/cory-johannsen/dfcombat/internal/storage/postgres"
)

// record stores every attack of rep in the attack log and prints each
// attacker's running summary.
func record(ctx context.Context, rt *sim.Runtime, rep sim.Report, out io.Writer) error {
	if !rt.Config.Database.Enabled {
		return errors.New("--record needs database.enabled in the config")
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, rt.Config.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pool.Ready(ctx); err != nil {
		return err
	}

	rounds, results := rep.Results()
	entries := make([]postgres.AttackEntry, len(results))
	for i, r := range results {
		entries[i] = postgres.EntryFromResult(rounds[i], r)
	}
	repo := pool.AttackLog()
	if err := repo.RecordAll(ctx, entries); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nRecorded %d attack(s).\n", len(entries))

	for _, c := range rep.Combatants {
		s, err := repo.SummaryFor(ctx, c.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-28s attacks=%d hit_rate=%.0f%% damage=%d kills=%d\n",
			c.ID, s.Attacks, 100*s.HitRate(), s.TotalDamage, s.Kills)
	}
	return nil
}
