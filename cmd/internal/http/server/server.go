package server

import (
	"net/http"
	"notekeeper/cmd/internal/http/handler"
	authmw "notekeeper/cmd/internal/http/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Options struct {
	BodyLimit  string
	Notes      *handler.DefaultNoteRoute
	Users      *handler.DefaultUserRoute
	Categories *handler.DefaultCategoryRoute
	Auth       *authmw.AuthMiddlewareConfig
}

// New builds the echo instance with the global middleware and the whole route table.
func New(opts *Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	bodyLimit := opts.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "1M"
	}
	e.Use(middleware.BodyLimit(bodyLimit))

	// Auth
	e.POST("/api/auth/register", opts.Users.CreateUser)
	e.POST("/api/auth/login", opts.Users.CreateLogin)

	api := e.Group("/api", authmw.NewAuthMiddleware(opts.Auth))
	api.GET("/auth/me", opts.Users.GetSelf)

	// Notes
	api.GET("/notes", opts.Notes.GetNotes)
	api.GET("/notes/:id", opts.Notes.GetNote)
	api.POST("/notes", opts.Notes.CreateNote)
	api.PUT("/notes/:id", opts.Notes.UpdateNote)
	api.DELETE("/notes/:id", opts.Notes.DeleteNote)
	api.GET("/notes/:id/categories", opts.Notes.GetNoteCategories)
	api.POST("/notes/:id/categories", opts.Notes.AddCategories)
	api.DELETE("/notes/:id/categories/:categoryId", opts.Notes.RemoveCategory)

	// Categories
	api.GET("/categories", opts.Categories.GetCategories)
	api.POST("/categories", opts.Categories.CreateCategory)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)
	return e
}

func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
