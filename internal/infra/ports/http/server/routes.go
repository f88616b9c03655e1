package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/qrave1/meetspace/internal/application/config"
	"github.com/qrave1/meetspace/internal/infra/ports/http/handlers"
	"github.com/qrave1/meetspace/internal/infra/ports/http/middleware"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

func New(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	roomHandler *handlers.RoomHandler,
	wsHandler *handlers.WebSocketHandler,
) *echo.Echo {
	e := echo.New()

	e.Validator = &requestValidator{validate: validator.New()}

	api := e.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		v1 := api.Group("/v1")
		v1.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		{
			v1.GET("/me", authHandler.GetMe)

			v1.GET("/ws", wsHandler.Handle)

			v1.GET("/rooms", roomHandler.ListRoomsHandler)
			v1.POST("/rooms", roomHandler.CreateRoomHandler)
			v1.GET("/rooms/:id", roomHandler.GetRoomHandler)
			v1.PUT("/rooms/:id", roomHandler.UpdateRoomHandler)
			v1.DELETE("/rooms/:id", roomHandler.DeleteRoomHandler)
			v1.POST("/rooms/:id/join", roomHandler.JoinRoomHandler)
			v1.POST("/rooms/:id/messages", roomHandler.SendMessageHandler)
			v1.GET("/rooms/:id/messages", roomHandler.ListMessagesHandler)
		}
	}

	e.Static("/", "web")

	return e
}
