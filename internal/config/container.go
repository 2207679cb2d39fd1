package config

import (
	"context"

	"ai-tutoring-system/internal/domain"
	"ai-tutoring-system/internal/infra/supabase"
	"ai-tutoring-system/internal/infra/vertex"
	"ai-tutoring-system/internal/repository"
	"ai-tutoring-system/internal/repository/memory"
	"ai-tutoring-system/internal/service"
	"ai-tutoring-system/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient *supabase.SupabaseClient
	Generator      *vertex.Generator

	SessionStore domain.SessionStore
	RecordStore  domain.RecordStore
	BlobStore    domain.BlobStore

	AuthService         domain.AuthService
	ChatHistoryService  domain.ChatHistoryService
	DocumentService     domain.DocumentService
	NotesService        domain.NotesService
	ConversationService domain.ConversationService
}

// NewContainer creates a new dependency injection container. Missing backend
// or model credentials are logged; the affected endpoints answer 503.
func NewContainer(ctx context.Context) *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFile())

	// Initialize Supabase client
	supabaseClient := supabase.NewSupabaseClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("Supabase not configured; auth and storage endpoints are unavailable", "error", err)
	}

	// Text generation is optional at start-up
	var generator domain.TextGenerator
	vertexGen, err := vertex.NewGenerator(ctx,
		config.GetGCPProjectID(),
		config.GetGCPLocation(),
		config.GetGeminiModel(),
		config.GetGCPCredentialsFile(),
		appLogger,
	)
	if err != nil {
		appLogger.Warn("Vertex AI not configured; chat and enhancement are unavailable", "error", err)
	} else {
		generator = vertexGen
	}

	// Initialize repositories
	recordStore := repository.NewChatHistoryRepository(supabaseClient, config.GetChatHistoryTable(), appLogger)
	blobStore := repository.NewDocumentBlobRepository(supabaseClient, config.GetStorageBucket(), appLogger)
	sessionStore := memory.NewSessionRepository(config.GetSessionTTL())

	// Note enhancement pipeline
	fetcher := service.NewDocumentFetcher(blobStore, appLogger)
	extractor := service.NewTextExtractor(service.NewPDFTextEngine(config.GetPDFTextEngine(), appLogger), appLogger)
	enhancer := service.NewNoteEnhancer(generator, appLogger)
	renderer := service.NewNotesRenderer(config.GetNotesFontFile(), appLogger)

	return &Container{
		Config:         config,
		Logger:         appLogger,
		SupabaseClient: supabaseClient,
		Generator:      vertexGen,

		SessionStore: sessionStore,
		RecordStore:  recordStore,
		BlobStore:    blobStore,

		AuthService:         service.NewAuthService(supabaseClient, appLogger),
		ChatHistoryService:  service.NewChatHistoryService(recordStore, blobStore, appLogger),
		DocumentService:     service.NewDocumentService(blobStore, config.GetMaxFileSize(), appLogger),
		NotesService:        service.NewNotesService(fetcher, extractor, enhancer, renderer, appLogger),
		ConversationService: service.NewConversationService(generator, appLogger),
	}
}

// syncer is implemented by loggers that buffer output
type syncer interface {
	Sync() error
}

// Close releases external clients and flushes buffered log entries
func (c *Container) Close() error {
	var err error
	if c.Generator != nil {
		err = c.Generator.Close()
	}
	if s, ok := c.Logger.(syncer); ok {
		// Syncing a terminal stdout fails with EINVAL on Linux; that is not a lost entry.
		_ = s.Sync()
	}
	return err
}
