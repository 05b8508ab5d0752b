package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"nagoyameshi/controllers"
	"nagoyameshi/db"
	"nagoyameshi/middleware"
	"nagoyameshi/policy"
)

// Initialize wires all routes and middlewares: public pages, member pages
// behind the access gates, and the back office behind the admin guard.
func Initialize(r *gin.Engine, database *gorm.DB, services *controllers.Services) {
	controllers.RegisterValidators()

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(services.Config.Cors.AllowedOrigins))
	r.Use(Logger(services.Log))
	r.Use(db.SetDBtoContext(database))
	r.Use(controllers.SetServicesToContext(services))
	r.Use(controllers.LoadFlash())
	r.Use(controllers.LoadPrincipal())

	if services.Images != nil {
		r.Static("/storage", services.Images.Dir)
	}

	// Public
	r.GET("/", Gate(policy.HomeFeature), controllers.Home)
	r.GET("/company", Gate(policy.CompanyFeature), controllers.Company)
	r.GET("/terms", Gate(policy.TermsFeature), controllers.Terms)

	restaurants := r.Group("/restaurants")
	restaurants.GET("", Gate(policy.RestaurantsFeature), controllers.Restaurants)
	restaurants.GET("/:id", Gate(policy.RestaurantsFeature), controllers.ShowRestaurant)
	restaurants.GET("/:id/qrcode", Gate(policy.RestaurantsFeature), controllers.RestaurantQRCode)

	// Auth
	guest := r.Group("")
	guest.Use(Guest())
	guest.GET("/login", controllers.FormPage)
	guest.POST("/login", controllers.Login)
	guest.GET("/register", controllers.FormPage)
	guest.POST("/register", controllers.Register)
	r.POST("/logout", controllers.Logout)

	// Members
	profile := r.Group("/user")
	profile.Use(Gate(policy.ProfileFeature))
	profile.GET("", controllers.Profile)
	profile.GET("/:id/edit", controllers.EditProfile)
	profile.PUT("/:id", controllers.UpdateProfile)

	restaurants.GET("/:id/reviews", Gate(policy.ReviewsFeature), controllers.Reviews)

	reviews := restaurants.Group("/:id/reviews")
	reviews.Use(Gate(policy.ReviewWriteFeature))
	reviews.GET("/create", controllers.CreateReview)
	reviews.POST("", controllers.StoreReview)
	reviews.GET("/:review_id/edit", controllers.EditReview)
	reviews.PUT("/:review_id", controllers.UpdateReview)
	reviews.DELETE("/:review_id", controllers.DestroyReview)

	reservations := r.Group("")
	reservations.Use(Gate(policy.ReservationsFeature))
	reservations.GET("/reservations", controllers.Reservations)
	reservations.DELETE("/reservations/:id", controllers.DestroyReservation)
	reservations.GET("/restaurants/:id/reservations/create", controllers.CreateReservation)
	reservations.POST("/restaurants/:id/reservations", controllers.StoreReservation)

	favorites := r.Group("/favorites")
	favorites.Use(Gate(policy.FavoritesFeature))
	favorites.GET("", controllers.Favorites)
	favorites.POST("/:restaurant_id", controllers.StoreFavorite)
	favorites.DELETE("/:restaurant_id", controllers.DestroyFavorite)

	subscription := r.Group("/subscription")
	subscription.GET("/create", Gate(policy.SubscribeFeature), controllers.CreateSubscription)
	subscription.POST("", Gate(policy.SubscribeFeature), controllers.StoreSubscription)
	subscription.GET("/payment/:id", Gate(policy.ProfileFeature), controllers.ConfirmPayment)

	manage := subscription.Group("")
	manage.Use(Gate(policy.SubscriptionManageFeature))
	manage.GET("/edit", controllers.EditSubscription)
	manage.PUT("", controllers.UpdateSubscription)
	manage.GET("/cancel", controllers.CancelSubscription)
	manage.DELETE("", controllers.DestroySubscription)

	// Back office
	r.GET(AdminLoginPath, AdminGuest(), controllers.FormPage)
	r.POST(AdminLoginPath, AdminGuest(), controllers.AdminLogin)
	r.POST("/admin/logout", controllers.AdminLogout)

	admin := r.Group("/admin")
	admin.Use(Adminizer())
	admin.GET("/home", controllers.AdminHome)

	admin.GET("/users", controllers.AdminUsers)
	admin.GET("/users/:id", controllers.AdminShowUser)

	admin.GET("/restaurants", controllers.AdminRestaurants)
	admin.GET("/restaurants/create", controllers.AdminCreateRestaurant)
	admin.POST("/restaurants", controllers.AdminStoreRestaurant)
	admin.GET("/restaurants/:id", controllers.AdminShowRestaurant)
	admin.GET("/restaurants/:id/edit", controllers.AdminEditRestaurant)
	admin.PUT("/restaurants/:id", controllers.AdminUpdateRestaurant)
	admin.DELETE("/restaurants/:id", controllers.AdminDestroyRestaurant)

	admin.GET("/categories", controllers.AdminCategories)
	admin.POST("/categories", controllers.AdminStoreCategory)
	admin.PUT("/categories/:id", controllers.AdminUpdateCategory)
	admin.DELETE("/categories/:id", controllers.AdminDestroyCategory)

	admin.GET("/company", controllers.AdminCompany)
	admin.GET("/company/:id/edit", controllers.AdminEditCompany)
	admin.PUT("/company/:id", controllers.AdminUpdateCompany)

	admin.GET("/terms", controllers.AdminTerms)
	admin.GET("/terms/:id/edit", controllers.AdminEditTerm)
	admin.PUT("/terms/:id", controllers.AdminUpdateTerm)

	services.Log.Info("routes initialized")
}
