package routes

import (
	"net/http"
	"time"

	"bookcircle/handlers"
	"bookcircle/middleware"
	"bookcircle/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.UserHandler.RegisterUserHandler)
		api.POST("/login", hb.UserHandler.AuthenticateUserHandler)

		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/logout", hb.UserHandler.RevokeUserAuthTokenHandler)
	}
}

// RegisterUserRoutes registers profile, credit and notification endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.UserHandler.GetProfileHandler)
		api.PUT("/me", hb.UserHandler.UpdateProfileHandler)
		api.PUT("/me/password", hb.UserHandler.UpdateUserPasswordHandler)
		api.DELETE("/me", hb.UserHandler.DeleteUserHandler)

		api.GET("/me/credits/balance", hb.UserHandler.GetCreditBalanceHandler)
		api.GET("/me/credits/transactions", hb.UserHandler.GetCreditTransactionsHandler)
		api.GET("/me/referrals", hb.UserHandler.GetReferralInfoHandler)

		api.GET("/me/notifications", hb.UserHandler.ListNotificationsHandler)
		api.POST("/me/notifications/read", hb.UserHandler.MarkNotificationsReadHandler)

		api.GET("/:id", hb.UserHandler.GetUserByIDHandler)
	}
}

// RegisterSocietyRoutes registers society creation, join and browse endpoints.
func RegisterSocietyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/societies")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.SocietyHandler.RequestCreateSocietyHandler)
		api.POST("/join", hb.SocietyHandler.JoinSocietyHandler)
		api.GET("/:id", hb.SocietyHandler.GetSocietyHandler)
		api.GET("/:id/books", hb.BookHandler.ListSocietyBooksHandler)
	}
}

// RegisterBookRoutes registers book listing endpoints.
func RegisterBookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/books")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.BookHandler.CreateBookHandler)
		api.GET("/mine", hb.BookHandler.ListMyBooksHandler)
		api.GET("/lookup/:isbn", hb.BookHandler.LookupISBNHandler)
		api.GET("/:id", hb.BookHandler.GetBookHandler)
		api.PUT("/:id", hb.BookHandler.UpdateBookHandler)
		api.DELETE("/:id", hb.BookHandler.DeleteBookHandler)
		api.POST("/:id/cover", hb.BookHandler.UploadBookCoverHandler)
	}
}

// RegisterRentalRoutes registers the borrow, return and extension endpoints.
func RegisterRentalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/rentals")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/quote", hb.RentalHandler.QuoteRentalHandler)
		api.POST("", hb.RentalHandler.BorrowBookHandler)
		api.GET("/borrowed", hb.RentalHandler.BorrowerHistoryHandler)
		api.GET("/lent", hb.RentalHandler.LenderHistoryHandler)
		api.GET("/:id", hb.RentalHandler.GetRentalHandler)
		api.POST("/:id/return-request", hb.RentalHandler.RequestReturnHandler)
		api.POST("/:id/confirm-return", hb.RentalHandler.ConfirmReturnHandler)
		api.POST("/:id/pay-late-fees", hb.RentalHandler.PayLateFeesHandler)
		api.GET("/:id/extension-quote", hb.RentalHandler.CalculateExtensionHandler)
		api.POST("/:id/extensions", hb.RentalHandler.RequestExtensionHandler)
	}

	ext := r.Group("/api/extensions")
	{
		ext.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		ext.GET("", hb.RentalHandler.ListExtensionRequestsHandler)
		ext.POST("/:id/decide", hb.RentalHandler.DecideExtensionHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AuthAdminMiddleware())
		adminGroup.GET("/users", hb.AdminHandler.GetAllUsersHandler)
		adminGroup.GET("/societies", hb.AdminHandler.ListSocietiesHandler)
		adminGroup.GET("/rentals", hb.AdminHandler.ListRentalsHandler)
		adminGroup.POST("/societies/:id/approve", hb.AdminHandler.ApproveSocietyHandler)
		adminGroup.POST("/societies/:id/reject", hb.AdminHandler.RejectSocietyHandler)
		adminGroup.POST("/users/:id/commission-free", hb.AdminHandler.GrantCommissionFreeHandler)
		adminGroup.POST("/users/:id/credits", hb.AdminHandler.GrantCreditsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterSocietyRoutes(r, hb)
	RegisterBookRoutes(r, hb)
	RegisterRentalRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
