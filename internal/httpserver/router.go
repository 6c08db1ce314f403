package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "shopbackend/internal/middleware/auth"
)

type Deps struct {
	Auth    *AuthHTTP
	Cart    *CartHTTP
	Product *ProductHTTP
	AuthMW  *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to the backend server of the E-Commerce App"})
	})

	api := e.Group("/api")

	user := api.Group("/user")
	user.POST("/register", d.Auth.Register)
	user.POST("/login", d.Auth.Login)
	user.POST("/forgotPassword", d.Auth.ForgotPassword)
	user.POST("/verifyOTP/:email", d.Auth.VerifyOTP)
	user.POST("/changePassword/:email", d.Auth.ChangePassword)
	user.GET("/verifyEmail", d.Auth.VerifyEmail)

	product := api.Group("/product")
	product.POST("/add", d.Product.Create)
	product.GET("/all", d.Product.ListAll)
	product.GET("/search", d.Product.SearchProducts)
	product.GET("/:id", d.Product.GetByID)
	product.PUT("/:id", d.Product.UpdateByID)
	product.DELETE("/:id", d.Product.DeleteByID)

	cart := api.Group("/cart")
	cart.Use(d.AuthMW.RequireAuth)
	cart.POST("/add", d.Cart.AddItem)
	cart.GET("/user", d.Cart.GetCart)
	cart.DELETE("/remove/:productId", d.Cart.RemoveItem)
	cart.DELETE("/clear", d.Cart.ClearCart)
	cart.POST("/decreaseQty", d.Cart.DecreaseQty)
}
