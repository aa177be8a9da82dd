package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	tournamentdb "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating tournaments table...")
			if _, err := db.NewCreateTable().Model((*tournamentdb.Tournament)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}

			fmt.Println("Creating tournament_events table...")
			if _, err := db.NewCreateTable().Model((*tournamentdb.Event)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}

			// The projector and undo both read the log in total order.
			if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_tournament_events_order ON tournament_events (tournament_id, created_at, id);`); err != nil {
				return fmt.Errorf("failed to create event order index: %w", err)
			}

			fmt.Println("tournament tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping tournament tables...")
			if _, err := db.NewDropTable().Model((*tournamentdb.Event)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*tournamentdb.Tournament)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("tournament tables dropped successfully!")
			return nil
		},
	)
}
