package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/meetspace/internal/application/constant"
	"github.com/qrave1/meetspace/internal/infra/appctx"
	"github.com/qrave1/meetspace/internal/infra/ports/http/dto"
	"github.com/qrave1/meetspace/internal/usecase"
)

type AuthHandler struct {
	userUsecase usecase.UserUsecase
}

func NewAuthHandler(userUsecase usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{
		userUsecase: userUsecase,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userUsecase.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		slog.Error("register user failed", slog.String(constant.Email, req.Email), slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userUsecase.ValidateCredentials(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		slog.Error("validate credentials failed", slog.String(constant.Email, req.Email), slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	token, err := h.userUsecase.GenerateJWT(user)
	if err != nil {
		slog.Error("generate JWT failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create token"})
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

func (h *AuthHandler) GetMe(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user ID in context"})
	}

	user, err := h.userUsecase.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}

	resp := dto.GetMeResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}

	return c.JSON(http.StatusOK, resp)
}
