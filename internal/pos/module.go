package pos

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"pos",
		fx.Provide(NewClient),
	)
}
