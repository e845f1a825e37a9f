package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	appRepos "github.com/yigit/studentsvc/internal/app/repositories"
	"github.com/yigit/studentsvc/internal/bootstrap"
	"github.com/yigit/studentsvc/internal/pkg/logger"
	"github.com/yigit/studentsvc/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("studentctl failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "studentctl",
		Usage: "manage the student database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   bootstrap.DefaultConfigPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"STUDENT_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply pending schema migrations",
				Action: migrateAction,
			},
			{
				Name:   "seed",
				Usage:  "insert the default students into an empty table",
				Action: seedAction,
			},
			{
				Name:  "import",
				Usage: "insert students from the first sheet of an .xlsx workbook",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "workbook with Name, Score, Graduate columns",
						Required: true,
					},
				},
				Action: importAction,
			},
		},
	}
}

// withDatabase loads configuration and hands fn an open pool.
func withDatabase(c *cli.Context, fn func(pool *pgxpool.Pool, lgr zerolog.Logger) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}

	pool, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(pool, lgr)
}

func migrateAction(c *cli.Context) error {
	return withDatabase(c, func(pool *pgxpool.Pool, lgr zerolog.Logger) error {
		return bootstrap.RunMigrations(c.Context, pool, lgr)
	})
}

func seedAction(c *cli.Context) error {
	return withDatabase(c, func(pool *pgxpool.Pool, lgr zerolog.Logger) error {
		inserted, err := seed.CreateDefaultData(c.Context, appRepos.NewStudentRepository(pool), lgr)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "inserted %d students\n", inserted)
		return nil
	})
}

func importAction(c *cli.Context) error {
	file, err := os.Open(c.Path("file"))
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	return withDatabase(c, func(pool *pgxpool.Pool, lgr zerolog.Logger) error {
		result, err := seed.ImportStudentsFromExcel(c.Context, appRepos.NewStudentRepository(pool), file, lgr)
		fmt.Fprintf(c.App.Writer, "imported %d students, skipped %d rows\n", result.Imported, result.Skipped)
		return err
	})
}
