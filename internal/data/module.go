package data

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"data",
		fx.Provide(NewStore),
		fx.Provide(NewGateway),
	)
}
