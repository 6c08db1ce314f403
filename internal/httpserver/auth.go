package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopbackend/internal/service"
	"shopbackend/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return failJSON(c, err)
	}

	l.Info("user_registered", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User registered successfully. Please verify your email.",
		"user":    user,
		"success": true,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	token, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return failJSON(c, err)
	}

	l.Info("user_logged_in", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome " + user.Name,
		"token":   token,
		"success": true,
	})
}

func (h *AuthHTTP) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	if err := h.Svc.ForgotPassword(ctx, req.Email); err != nil {
		return failJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "OTP sent successfully",
	})
}

func (h *AuthHTTP) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.Param("email")

	var req struct {
		OTP string `json:"otp"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	if err := h.Svc.VerifyOTP(ctx, email, req.OTP); err != nil {
		return failJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "OTP verified successfully",
	})
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.Param("email")

	var req struct {
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	if err := h.Svc.ChangePassword(ctx, email, req.NewPassword, req.ConfirmPassword); err != nil {
		return failJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (h *AuthHTTP) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()

	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "token is required", "success": false})
	}

	if err := h.Svc.VerifyEmail(ctx, token); err != nil {
		return failJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Email verified successfully",
	})
}
