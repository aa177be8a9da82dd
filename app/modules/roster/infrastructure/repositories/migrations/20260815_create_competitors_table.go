package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	rosterdb "github.com/showdown-live/scorebot/app/modules/roster/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating competitors table...")
			if _, err := db.NewCreateTable().Model((*rosterdb.Competitor)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("competitors table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping competitors table...")
			if _, err := db.NewDropTable().Model((*rosterdb.Competitor)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("competitors table dropped successfully!")
			return nil
		},
	)
}
