package router

import (
	"github.com/gin-gonic/gin"
	"github.com/seonkim/beanshop-backend/config"
	"github.com/seonkim/beanshop-backend/internal/app/controller"
	"github.com/seonkim/beanshop-backend/internal/middleware"
)

type Router struct {
	userController      *controller.UserController
	productController   *controller.ProductController
	orderController     *controller.OrderController
	wishListController  *controller.WishListController
	uploadController    *controller.UploadController
	orderFeedController *controller.OrderFeedController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	userController *controller.UserController,
	productController *controller.ProductController,
	orderController *controller.OrderController,
	wishListController *controller.WishListController,
	uploadController *controller.UploadController,
	orderFeedController *controller.OrderFeedController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		userController:      userController,
		productController:   productController,
		orderController:     orderController,
		wishListController:  wishListController,
		uploadController:    uploadController,
		orderFeedController: orderFeedController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

// routePolicies declares who may call each registered route. 표에 없는
// 라우트는 로그인 필수로 처리된다.
var routePolicies = []middleware.RoutePolicy{
	{Method: "GET", Path: "/health", Access: middleware.AccessPublic},

	{Method: "POST", Path: "/users", Access: middleware.AccessPublic},
	{Method: "POST", Path: "/users/login", Access: middleware.AccessPublic},
	{Method: "POST", Path: "/users/logout", Access: middleware.AccessPublic},
	{Method: "DELETE", Path: "/users", Access: middleware.AccessPublic},

	{Method: "GET", Path: "/products", Access: middleware.AccessPublic},
	{Method: "GET", Path: "/products/:id", Access: middleware.AccessPublic},
	{Method: "POST", Path: "/products", Access: middleware.AccessAdmin},
	{Method: "PUT", Path: "/products/:id", Access: middleware.AccessAdmin},
	{Method: "DELETE", Path: "/products/:id", Access: middleware.AccessAdmin},

	{Method: "POST", Path: "/orders/write", Access: middleware.AccessAuthenticated},
	{Method: "GET", Path: "/orders/lists", Access: middleware.AccessAuthenticated},
	{Method: "GET", Path: "/orders/lists/today", Access: middleware.AccessAuthenticated},
	{Method: "GET", Path: "/orders/lists/:orderId", Access: middleware.AccessAuthenticated},
	{Method: "PUT", Path: "/orders/modify", Access: middleware.AccessAdmin},
	{Method: "DELETE", Path: "/orders/delete/:orderId", Access: middleware.AccessAuthenticated},

	{Method: "POST", Path: "/api/v1/wishlists/:email", Access: middleware.AccessAuthenticated},
	{Method: "GET", Path: "/api/v1/wishlists/:email", Access: middleware.AccessAuthenticated},
	{Method: "PUT", Path: "/api/v1/wishlists/:email/:wishId", Access: middleware.AccessAuthenticated},
	{Method: "DELETE", Path: "/api/v1/wishlists/:email/:wishId", Access: middleware.AccessAuthenticated},

	{Method: "POST", Path: "/api/v1/uploads/presigned-url", Access: middleware.AccessAdmin},

	{Method: "GET", Path: "/ws/orders", Access: middleware.AccessAdmin},
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(r.authMiddleware.Authenticate())
	router.Use(r.authMiddleware.Authorize(routePolicies))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "BEANSHOP API is running",
		})
	})

	users := router.Group("/users")
	{
		users.POST("", r.userController.Register)
		users.POST("/login", r.userController.Login)
		users.POST("/logout", r.userController.Logout)
		users.DELETE("", r.userController.Delete)
	}

	products := router.Group("/products")
	{
		products.GET("", r.productController.List)
		products.GET("/:id", r.productController.Get)
		products.POST("", r.productController.Create)
		products.PUT("/:id", r.productController.Update)
		products.DELETE("/:id", r.productController.Delete)
	}

	orders := router.Group("/orders")
	{
		orders.POST("/write", r.orderController.Create)
		orders.GET("/lists", r.orderController.ListByEmail)
		orders.GET("/lists/today", r.orderController.ListToday)
		orders.GET("/lists/:orderId", r.orderController.Get)
		orders.PUT("/modify", r.orderController.UpdateStatus)
		orders.DELETE("/delete/:orderId", r.orderController.Delete)
	}

	wishlists := router.Group("/api/v1/wishlists")
	{
		wishlists.POST("/:email", r.wishListController.Add)
		wishlists.GET("/:email", r.wishListController.List)
		wishlists.PUT("/:email/:wishId", r.wishListController.UpdateQuantity)
		wishlists.DELETE("/:email/:wishId", r.wishListController.Delete)
	}

	uploads := router.Group("/api/v1/uploads")
	{
		uploads.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
	}

	router.GET("/ws/orders", r.orderFeedController.Connect)

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
