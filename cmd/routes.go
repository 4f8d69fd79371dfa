package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON, app.identify)
	streamMiddleware := alice.New(app.recoverPanic, app.logRequest, app.identify)

	mux := pat.New()

	// Jobs
	mux.Post("/job", standardMiddleware.ThenFunc(app.jobHandler.CreateJob))
	mux.Get("/job", standardMiddleware.ThenFunc(app.jobHandler.ListJobs))
	mux.Get("/job/archived", standardMiddleware.ThenFunc(app.historyHandler.Archived))
	mux.Get("/job/:id", standardMiddleware.ThenFunc(app.jobHandler.GetJob))
	mux.Post("/job/:id/start", standardMiddleware.ThenFunc(app.jobHandler.StartJob))
	mux.Post("/job/:id/complete", standardMiddleware.ThenFunc(app.jobHandler.CompleteJob))
	mux.Post("/job/:id/cancel", standardMiddleware.ThenFunc(app.jobHandler.CancelJob))
	mux.Post("/job/:id/images", standardMiddleware.ThenFunc(app.jobHandler.UploadImage))
	mux.Get("/job/:id/bids", standardMiddleware.ThenFunc(app.jobHandler.ListBids))
	mux.Get("/job/:id/messages", standardMiddleware.ThenFunc(app.jobHandler.ListMessages))

	// Bids
	mux.Post("/bid", standardMiddleware.ThenFunc(app.bidHandler.SubmitBid))
	mux.Post("/bid/:id/accept", standardMiddleware.ThenFunc(app.bidHandler.AcceptBid))

	// Providers
	mux.Get("/provider", standardMiddleware.ThenFunc(app.providerHandler.ListProviders))
	mux.Get("/provider/nearby", standardMiddleware.ThenFunc(app.providerHandler.Nearby))
	mux.Get("/provider/:id", standardMiddleware.ThenFunc(app.providerHandler.GetProvider))
	mux.Put("/provider/:id", standardMiddleware.ThenFunc(app.providerHandler.UpsertProvider))
	mux.Put("/provider/:id/location", standardMiddleware.ThenFunc(app.providerHandler.UpdateLocation))
	mux.Get("/provider/:id/reviews", standardMiddleware.ThenFunc(app.providerHandler.ListReviews))

	// Reviews
	mux.Post("/review", standardMiddleware.ThenFunc(app.reviewHandler.CreateReview))

	// Safety
	mux.Get("/safety/:job_id", standardMiddleware.ThenFunc(app.safetyHandler.State))
	mux.Post("/safety/:job_id/confirm", standardMiddleware.ThenFunc(app.safetyHandler.Confirm))
	mux.Post("/safety/:job_id/emergency", standardMiddleware.ThenFunc(app.safetyHandler.Emergency))

	// Notifications & messages
	mux.Get("/notifications", standardMiddleware.ThenFunc(app.notificationHandler.List))
	mux.Post("/notifications/:id/read", standardMiddleware.ThenFunc(app.notificationHandler.MarkRead))
	mux.Post("/message", standardMiddleware.ThenFunc(app.messageHandler.SendMessage))

	// Realtime & ops
	mux.Get("/ws/safety", streamMiddleware.ThenFunc(app.safetyHandler.Stream))
	mux.Get("/metrics", promhttp.Handler())

	return mux
}
