package http

import (
	"net/http"

	"health-management/internal/delivery/http/handler"
	"health-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authRequired        bool
	appointmentHandler  *handler.AppointmentHandler
	roomHandler         *handler.RoomHandler
	diagnosisHandler    *handler.DiagnosisHandler
	hospitalHandler     *handler.HospitalHandler
	authHandler         *handler.AuthHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	authRequired bool,
	appointmentHandler *handler.AppointmentHandler,
	roomHandler *handler.RoomHandler,
	diagnosisHandler *handler.DiagnosisHandler,
	hospitalHandler *handler.HospitalHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authRequired:        authRequired,
		appointmentHandler:  appointmentHandler,
		roomHandler:         roomHandler,
		diagnosisHandler:    diagnosisHandler,
		hospitalHandler:     hospitalHandler,
		authHandler:         authHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

// Setup registers every route. CORS wraps the router itself so that
// preflight requests are answered before route matching.
func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Hospitals (public)
	api.HandleFunc("/hospitals", r.hospitalHandler.ListHospitals).Methods(http.MethodGet)
	api.HandleFunc("/hospitals/nearby", r.hospitalHandler.NearbyHospitals).Methods(http.MethodGet)

	// Auth routes (protected)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.authMiddleware.Authenticate)
	auth.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.AuthenticateIf(r.authRequired))
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/user/{patientId}", r.appointmentHandler.ListByPatient).Methods(http.MethodGet)
	appointments.HandleFunc("/doctor/{doctorEmail}", r.appointmentHandler.ListByDoctor).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}/details", r.appointmentHandler.UpdateDetails).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Video room
	room := api.PathPrefix("/room").Subrouter()
	room.Use(r.authMiddleware.AuthenticateIf(r.authRequired))
	room.HandleFunc("", r.roomHandler.IssueToken).Methods(http.MethodGet)

	// AI diagnosis (rate limited per client IP)
	ai := api.NewRoute().Subrouter()
	ai.Use(r.authMiddleware.AuthenticateIf(r.authRequired))
	ai.Handle("/diagnosis", r.rateLimitMiddleware.Handle(http.HandlerFunc(r.diagnosisHandler.SubmitDiagnosis))).Methods(http.MethodPost)
	ai.Handle("/recommendations", r.rateLimitMiddleware.Handle(http.HandlerFunc(r.diagnosisHandler.SubmitRecommendation))).Methods(http.MethodPost)
	ai.HandleFunc("/diagnosis/{id}", r.diagnosisHandler.GetJob).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Recover)

	return r.corsMiddleware.Handle(r.loggingMiddleware.Handle(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
