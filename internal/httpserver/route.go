package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	GalleryHandler *GalleryHTTP
	AuthHandler    *AuthHTTP
	DB             *gorm.DB
	UploadDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	api := e.Group("/api/v1", d.AuthHandler.LoadSession)
	api.GET("/gallery", d.GalleryHandler.GetGallery)
	api.GET("/products", d.GalleryHandler.GetProducts)
	api.GET("/contact", d.GalleryHandler.GetContact)

	admin := api.Group("/admin")
	admin.POST("/login", d.AuthHandler.Login)
	admin.POST("/logout", d.AuthHandler.LogOut)
	admin.GET("/dashboard", d.GalleryHandler.Dashboard)
	admin.POST("/products", d.GalleryHandler.CreateProduct)
	admin.DELETE("/products/:id", d.GalleryHandler.DeleteProduct)
	admin.PUT("/contact", d.GalleryHandler.UpdateContact)
	admin.PUT("/credentials", d.GalleryHandler.UpdateCredentials)
}
