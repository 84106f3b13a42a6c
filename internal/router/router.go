package router

import (
	"fmt"
	"strings"

	"github.com/aevi-next/internal/cache"
	"github.com/aevi-next/internal/config"
	publichandlers "github.com/aevi-next/internal/http/handlers/public"
	"github.com/aevi-next/internal/logger"
	"github.com/aevi-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the storefront route table.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "aevi"
	}
	signinRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:signin", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(CartSessionMiddleware(cfg.Session))
	r.Use(UserIdentityMiddleware(cfg, c.UserRepo))

	api := r.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/bestsellers", handler.ListBestsellers)
			products.GET("/new", handler.ListNew)
			products.GET("/category/:category", handler.ListByCategory)
			products.GET("/search", handler.SearchProducts)
			products.GET("/filter", handler.FilterProducts)
			products.GET("/:id", handler.GetProduct)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.GET("/count", handler.GetCartCount)
			cart.POST("/add", handler.AddCartItem)
			cart.PUT("/update/:item_id", handler.UpdateCartItem)
			cart.DELETE("/remove/:item_id", handler.RemoveCartItem)
		}

		wishlist := api.Group("/wishlist", RequireUser())
		{
			wishlist.GET("", handler.GetWishlist)
			wishlist.POST("/add", handler.AddWishlistItem)
			wishlist.DELETE("/remove/:product_id", handler.RemoveWishlistItem)
		}

		user := api.Group("/user", RequireUser())
		{
			user.GET("/profile", handler.GetProfile)
			user.PUT("/profile", handler.UpdateProfile)
		}

		api.POST("/newsletter/unsubscribe", handler.UnsubscribeNewsletter)
	}

	r.POST("/submit-contact", handler.SubmitContact)
	r.POST("/subscribe-newsletter", handler.SubscribeNewsletter)

	r.POST("/signup", handler.SignUp)
	r.POST("/signin", RateLimitMiddleware(cache.Client(), signinRule, nil), handler.SignIn)
	r.GET("/logout", RequireUser(), handler.Logout)
	r.POST("/forgot-password", handler.ForgotPassword)
	r.POST("/reset-password", handler.ResetPassword)
	r.GET("/confirm", handler.ConfirmEmail)

	return r
}
