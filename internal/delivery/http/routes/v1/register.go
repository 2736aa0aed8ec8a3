package v1

import (
	"local-link/internal/delivery/http/handler"
	"local-link/internal/delivery/http/middleware"
	"local-link/internal/pkg/jwt"
	"local-link/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Dependencies carries the already-wired usecases into route
// registration. They are built once in the app container so their
// event callbacks stay attached.
type Dependencies struct {
	JWT     jwt.Service
	Auth    usecase.AuthUsecase
	Search  usecase.SearchUsecase
	Listing usecase.ListingUsecase
	Booking usecase.BookingUsecase
	Profile usecase.ProfileUsecase
}

func Register(r fiber.Router, d Dependencies) {
	if r == nil {
		return
	}

	viewerMw := middleware.NewViewerMiddleware(d.JWT)

	authHandler := handler.NewAuthHandler(d.Auth)
	searchHandler := handler.NewSearchHandler(d.Search)
	listingHandler := handler.NewListingHandler(d.Listing)
	bookingHandler := handler.NewBookingHandler(d.Booking)
	userHandler := handler.NewUserHandler(d.Profile)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	// Browsing the catalog works without a token; smart match simply
	// has no viewer profile to compare against then.
	catalogGroup := r.Group("/catalog", viewerMw.Optional())
	searchHandler.RegisterRoutes(catalogGroup)

	protected := r.Group("", viewerMw.Required())

	listingsGroup := protected.Group("/listings")
	listingHandler.RegisterRoutes(listingsGroup)

	bookingsGroup := protected.Group("/bookings")
	bookingHandler.RegisterRoutes(bookingsGroup)

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)
}
