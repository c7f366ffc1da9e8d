package internal

import (
	"context"

	"kassa/internal/cli"
	"kassa/internal/config"
	"kassa/internal/data"
	"kassa/internal/logging"
	"kassa/internal/pos"
	"kassa/internal/session"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *cli.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		pos.Module(),
		data.Module(),
		session.Module(),
		cli.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}
