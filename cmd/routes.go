package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	// File downloads stream their own content type.
	fileMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	adminMiddleware := standardMiddleware.Append(app.requireAdminKey)

	mux := pat.New()

	// Orders
	mux.Post("/api/create-order", standardMiddleware.ThenFunc(app.orderHandler.CreateOrder))
	mux.Post("/api/verify-payment", standardMiddleware.ThenFunc(app.orderHandler.VerifyPayment))
	mux.Post("/api/resend-email", standardMiddleware.ThenFunc(app.orderHandler.ResendEmail))

	// Downloads
	mux.Get("/api/download-pdf/:token", standardMiddleware.ThenFunc(app.downloadHandler.DownloadPage))
	mux.Get("/api/download-file/:token/:itemIndex", fileMiddleware.ThenFunc(app.downloadHandler.DownloadFile))

	// Admin
	mux.Get("/api/admin/stats", adminMiddleware.ThenFunc(app.adminHandler.GetStats))
	mux.Get("/api/private/payment-count", adminMiddleware.ThenFunc(app.adminHandler.GetPaymentCount))

	// Contact
	mux.Post("/contact", standardMiddleware.ThenFunc(app.contactHandler.Contact))

	// Liveness
	mux.Get("/health", standardMiddleware.ThenFunc(app.health))
	mux.Get("/", standardMiddleware.ThenFunc(app.home))

	return mux
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"success":true,"message":"ok"}`))
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"success":true,"message":"reelstore api"}`))
}
