package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qrave1/meetspace/internal/domain/input"
	"github.com/qrave1/meetspace/internal/infra/appctx"
	"github.com/qrave1/meetspace/internal/infra/ports/http/dto"
	"github.com/qrave1/meetspace/internal/usecase"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{roomUsecase: roomUsecase}
}

func (h *RoomHandler) CreateRoomHandler(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room, err := h.roomUsecase.CreateRoom(c.Request().Context(), &input.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewRoomResponseFromModel(room))
}

func (h *RoomHandler) ListRoomsHandler(c echo.Context) error {
	rooms, err := h.roomUsecase.ListRooms(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}

	resp := dto.ListRoomsResponse{
		Rooms: make([]dto.RoomResponse, 0, len(rooms)),
	}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, dto.NewRoomResponseFromModel(room))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) GetRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	room, err := h.roomUsecase.GetRoom(c.Request().Context(), roomID)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewRoomResponseFromModel(room))
}

func (h *RoomHandler) UpdateRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	var req dto.UpdateRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room, err := h.roomUsecase.UpdateRoom(c.Request().Context(), roomID, &input.UpdateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewRoomResponseFromModel(room))
}

func (h *RoomHandler) DeleteRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	if err := h.roomUsecase.DeleteRoom(c.Request().Context(), roomID); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *RoomHandler) JoinRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	room, err := h.roomUsecase.JoinRoom(c.Request().Context(), roomID, userID.String())
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewRoomResponseFromModel(room))
}

func (h *RoomHandler) SendMessageHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	var req dto.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.roomUsecase.SendMessage(c.Request().Context(), roomID, req.Sender, req.Body)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewMessageResponseFromModel(msg))
}

func (h *RoomHandler) ListMessagesHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	messages, err := h.roomUsecase.GetMessages(c.Request().Context(), roomID)
	if err != nil {
		return domainError(c, err)
	}

	resp := dto.ListMessagesResponse{
		Messages: make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, dto.NewMessageResponseFromModel(msg))
	}

	return c.JSON(http.StatusOK, resp)
}
