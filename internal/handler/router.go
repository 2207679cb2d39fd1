package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "ai-tutoring-system"

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Session      *SessionHandler
	Auth         *AuthHandler
	Chat         *ChatHandler
	Document     *DocumentHandler
	Notes        *NotesHandler
	Conversation *ConversationHandler
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(h Handlers, sessions *SessionMiddleware, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no session required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"` + serviceName + `"}`))
	}).Methods(http.MethodGet)

	// API prefix; every API route runs inside a browser session
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(sessions.Middleware)

	api.HandleFunc("/session", h.Session.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/session/page", h.Session.SetPage).Methods(http.MethodPut)

	api.HandleFunc("/auth/signup", h.Auth.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)

	// Protected routes (require a logged-in session)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(sessions.RequireLogin)

	protected.HandleFunc("/chats", h.Chat.ListChats).Methods(http.MethodGet)
	protected.HandleFunc("/chats", h.Chat.CreateChat).Methods(http.MethodPost)
	protected.HandleFunc("/chats/new", h.Chat.NewChat).Methods(http.MethodPost)
	protected.HandleFunc("/chats/select", h.Chat.SelectChat).Methods(http.MethodPost)

	protected.HandleFunc("/documents", h.Document.ListDocuments).Methods(http.MethodGet)
	protected.HandleFunc("/documents", h.Document.UploadDocument).Methods(http.MethodPost)
	protected.HandleFunc("/documents/select", h.Document.SelectDocument).Methods(http.MethodPost)
	protected.HandleFunc("/documents/{name}", h.Document.DeleteDocument).Methods(http.MethodDelete)

	protected.HandleFunc("/notes/document", h.Notes.PreviewDocument).Methods(http.MethodGet)
	protected.HandleFunc("/notes/enhance", h.Notes.Enhance).Methods(http.MethodPost)
	protected.HandleFunc("/notes/enhanced.pdf", h.Notes.DownloadPDF).Methods(http.MethodGet)

	protected.HandleFunc("/chat/messages", h.Conversation.GetMessages).Methods(http.MethodGet)
	protected.HandleFunc("/chat/messages", h.Conversation.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/chat/messages", h.Conversation.ClearMessages).Methods(http.MethodDelete)

	// Configure CORS; the session cookie needs credentials
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return otelhttp.NewHandler(c.Handler(router), serviceName)
}
