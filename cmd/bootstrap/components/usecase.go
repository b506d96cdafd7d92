package components

import (
	"cineapp/internal/pkg/clock"
	"cineapp/internal/usecase/commands"
	"cineapp/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewShowtimeCommands,
		commands.NewRoomCommands,
		commands.NewMovieCommands,
		commands.NewCustomerCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewShowtimeQueries,
		queries.NewRoomQueries,
		queries.NewMovieQueries,
		queries.NewCustomerQueries,
	),
)
