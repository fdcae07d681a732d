package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"tumaBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	providerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleProvider))
	customerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleCustomer))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.GetProfile))
	mux.Put("/user/me", authMiddleware.ThenFunc(app.userHandler.UpdateProfile))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Post("/user/push_token", authMiddleware.ThenFunc(app.userHandler.RegisterPushToken))

	// Services
	mux.Post("/service", providerMiddleware.ThenFunc(app.serviceHandler.CreateService))
	mux.Get("/service/get", standardMiddleware.ThenFunc(app.serviceHandler.GetServices))
	mux.Get("/service/featured", standardMiddleware.ThenFunc(app.serviceHandler.GetFeaturedServices))
	mux.Get("/service/provider/:provider_id", standardMiddleware.ThenFunc(app.serviceHandler.GetServicesByProvider))
	mux.Get("/service/:id", standardMiddleware.ThenFunc(app.serviceHandler.GetServiceByID))
	mux.Put("/service/:id", providerMiddleware.ThenFunc(app.serviceHandler.UpdateService))
	mux.Del("/service/:id", providerMiddleware.ThenFunc(app.serviceHandler.DeleteService))

	// Bookings
	mux.Post("/booking", customerMiddleware.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Get("/booking/my", authMiddleware.ThenFunc(app.bookingHandler.GetMyBookings))
	mux.Get("/booking/provider", providerMiddleware.ThenFunc(app.bookingHandler.GetProviderBookings))
	mux.Get("/booking/:id", authMiddleware.ThenFunc(app.bookingHandler.GetBookingByID))
	mux.Post("/booking/:id/accept", providerMiddleware.ThenFunc(app.bookingHandler.Accept))
	mux.Post("/booking/:id/decline", providerMiddleware.ThenFunc(app.bookingHandler.Decline))
	mux.Post("/booking/:id/start", providerMiddleware.ThenFunc(app.bookingHandler.Start))
	mux.Post("/booking/:id/complete", providerMiddleware.ThenFunc(app.bookingHandler.Complete))
	mux.Post("/booking/:id/cancel", customerMiddleware.ThenFunc(app.bookingHandler.Cancel))
	mux.Put("/booking/:id/notes", authMiddleware.ThenFunc(app.bookingHandler.UpdateNotes))
	mux.Put("/booking/:id/amount", providerMiddleware.ThenFunc(app.bookingHandler.UpdateAmount))

	// Messages
	mux.Post("/message", authMiddleware.ThenFunc(app.messageHandler.SendMessage))
	mux.Get("/booking/:booking_id/messages", authMiddleware.ThenFunc(app.messageHandler.GetMessages))
	mux.Post("/booking/:booking_id/read", authMiddleware.ThenFunc(app.messageHandler.MarkRead))
	mux.Get("/conversations", authMiddleware.ThenFunc(app.messageHandler.GetConversations))
	mux.Get("/messages/unread_total", authMiddleware.ThenFunc(app.messageHandler.GetUnreadTotal))
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	// Reviews
	mux.Post("/review", customerMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/review/provider/:provider_id", standardMiddleware.ThenFunc(app.reviewHandler.GetProviderReviews))
	mux.Post("/review/:id/helpful", authMiddleware.ThenFunc(app.reviewHandler.MarkHelpful))
	mux.Post("/review/:id/response", providerMiddleware.ThenFunc(app.reviewHandler.RespondToReview))

	// Favorites
	mux.Post("/favorites/provider/:provider_id", customerMiddleware.ThenFunc(app.favoriteHandler.Toggle))
	mux.Get("/favorites/check/:provider_id", customerMiddleware.ThenFunc(app.favoriteHandler.IsFavorite))
	mux.Get("/favorites", customerMiddleware.ThenFunc(app.favoriteHandler.GetFavorites))

	// Payments
	mux.Post("/payment/intent", customerMiddleware.ThenFunc(app.paymentHandler.CreateIntent))
	mux.Post("/payment/confirm", customerMiddleware.ThenFunc(app.paymentHandler.ConfirmPayment))

	// Media
	mux.Post("/media/upload", authMiddleware.ThenFunc(app.mediaHandler.Upload))

	return mux
}
