package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ktucyber/internal/auth"
	"ktucyber/internal/config"
	"ktucyber/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	documentHandler *handler.DocumentHandler,
	profileHandler *handler.ProfileHandler,
	socialHandler *handler.SocialHandler,
	taxonomyHandler *handler.TaxonomyHandler,
	feedHandler *handler.FeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/verify-email", authHandler.VerifyEmail)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	api.GET("/home", feedHandler.Home)
	api.GET("/documents/:slug", documentHandler.Get)
	api.GET("/profiles/:username", profileHandler.PublicProfile)
	api.GET("/profiles/:username/documents", profileHandler.PublicDocuments)
	api.GET("/subjects/search", taxonomyHandler.SearchSubjects)
	api.GET("/subjects/:slug", taxonomyHandler.GetSubject)
	api.GET("/subjects/:slug/documents", taxonomyHandler.SubjectDocuments)
	api.GET("/universities/search", taxonomyHandler.SearchUniversities)

	// Secured routes. The middleware gates the route on a valid signed
	// cookie; handlers re-parse the cookie to get typed claims.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.CookieName,
	}))

	secured.GET("/auth/session", authHandler.Session)

	// Document routes
	secured.POST("/documents", documentHandler.Upload)
	secured.POST("/documents/file", documentHandler.UploadFile)
	secured.PUT("/documents/:id", documentHandler.Update)
	secured.DELETE("/documents/:id", documentHandler.Delete)
	secured.POST("/documents/:id/bookmark", documentHandler.Bookmark)
	secured.DELETE("/documents/:id/bookmark", documentHandler.Unbookmark)
	secured.POST("/documents/:id/download", documentHandler.RecordDownload)
	secured.DELETE("/documents/:id/download", documentHandler.RemoveDownload)

	// Profile routes
	secured.GET("/profile", profileHandler.Me)
	secured.DELETE("/profile", profileHandler.DeleteAccount)
	secured.PUT("/profile/settings", profileHandler.UpdateSettings)
	secured.POST("/profile/picture", profileHandler.UploadProfilePicture)
	secured.GET("/profile/documents", profileHandler.UploadedDocuments)
	secured.GET("/profile/downloads", profileHandler.DownloadedDocuments)
	secured.GET("/profile/bookmarks", profileHandler.BookmarkedDocuments)

	// Social routes
	secured.POST("/users/:id/follow", socialHandler.Follow)
	secured.DELETE("/users/:id/follow", socialHandler.Unfollow)
	secured.GET("/users/:id/followers", socialHandler.Followers)
	secured.GET("/users/:id/following", socialHandler.Following)
	secured.GET("/notifications", socialHandler.Notifications)
	secured.PUT("/notifications/:id/read", socialHandler.MarkNotificationRead)

	// Taxonomy routes
	secured.POST("/universities", taxonomyHandler.CreateUniversity)
	secured.POST("/subjects", taxonomyHandler.CreateSubject)
	secured.POST("/home/refresh", feedHandler.Refresh)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
