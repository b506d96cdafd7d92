package components

import (
	"cineapp/internal/handler"
	"cineapp/internal/handler/api"
	"cineapp/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewShowtimeHandler,
		api.NewRoomHandler,
		api.NewMovieHandler,
		api.NewCustomerHandler,
		middleware.NewRequestLogger,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	reservations *api.ReservationHandler,
	showtimes *api.ShowtimeHandler,
	rooms *api.RoomHandler,
	movies *api.MovieHandler,
	customers *api.CustomerHandler,
) handler.Handlers {
	return handler.Handlers{
		Reservations: reservations,
		Showtimes:    showtimes,
		Rooms:        rooms,
		Movies:       movies,
		Customers:    customers,
	}
}
