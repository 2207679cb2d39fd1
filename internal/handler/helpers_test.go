package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-tutoring-system/internal/domain"
	"ai-tutoring-system/internal/repository/memory"
	apperrors "ai-tutoring-system/pkg/errors"
)

// MockHandlerLogger discards everything
type MockHandlerLogger struct{}

func NewMockHandlerLogger() domain.Logger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})             {}
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})             {}

type stubAuthService struct {
	loginErr error
	// expired makes EnsureFresh behave like a refused token refresh
	expired bool
}

func (s *stubAuthService) SignUp(ctx context.Context, email, password, displayName string) error {
	return nil
}

func (s *stubAuthService) Login(ctx context.Context, state *domain.SessionState, email, password string) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	state.Login(domain.AuthSession{
		AccessToken:  "tok",
		RefreshToken: "refresh",
		User:         domain.SupabaseUser{ID: "u-1", Email: email},
	})
	return nil
}

func (s *stubAuthService) Logout(ctx context.Context, state *domain.SessionState) {
	state.Reset()
}

func (s *stubAuthService) EnsureFresh(ctx context.Context, state *domain.SessionState) error {
	if s.expired {
		state.Reset()
		return apperrors.NewUnauthorizedError("Your session has expired. Please log in again.")
	}
	return nil
}

type stubChatService struct {
	chats []domain.ChatHistory
}

func (s *stubChatService) List(ctx context.Context, state *domain.SessionState) ([]domain.ChatHistory, error) {
	return s.chats, nil
}

func (s *stubChatService) StartNew(state *domain.SessionState) { state.CreatingChat = true }

func (s *stubChatService) Create(ctx context.Context, state *domain.SessionState, name string) (*domain.ChatHistory, error) {
	chat := domain.ChatHistory{ID: domain.FirstChatID, Name: name, Owner: state.Username}
	s.chats = append(s.chats, chat)
	state.SelectChat(name)
	return &chat, nil
}

func (s *stubChatService) Select(ctx context.Context, state *domain.SessionState, name string) error {
	state.SelectChat(name)
	return nil
}

type stubDocumentService struct {
	uploaded map[string][]byte
}

func (s *stubDocumentService) List(ctx context.Context, state *domain.SessionState) ([]domain.StoredObject, error) {
	out := make([]domain.StoredObject, 0, len(s.uploaded))
	for name, data := range s.uploaded {
		out = append(out, domain.StoredObject{Name: name, Size: int64(len(data))})
	}
	return out, nil
}

func (s *stubDocumentService) Upload(ctx context.Context, state *domain.SessionState, filename string, data []byte) (*domain.StoredObject, error) {
	s.uploaded[filename] = data
	return &domain.StoredObject{Name: filename, Size: int64(len(data))}, nil
}

func (s *stubDocumentService) Delete(ctx context.Context, state *domain.SessionState, filename string) error {
	delete(s.uploaded, filename)
	return nil
}

func (s *stubDocumentService) Select(ctx context.Context, state *domain.SessionState, filename string) error {
	state.SelectDocument(filename)
	return nil
}

type stubNotesService struct {
	enhanceErr error
}

func (s *stubNotesService) Preview(ctx context.Context, state *domain.SessionState) (string, error) {
	return "preview text", nil
}

func (s *stubNotesService) Enhance(ctx context.Context, state *domain.SessionState, instruction string) (string, error) {
	if s.enhanceErr != nil {
		return "", s.enhanceErr
	}
	state.EnhancedNotes = "### Notes"
	state.EnhancedNotesPDF = []byte("%PDF-1.3 test")
	return state.EnhancedNotes, nil
}

func (s *stubNotesService) EnhancedPDF(state *domain.SessionState) ([]byte, error) {
	return state.EnhancedNotesPDF, nil
}

type stubConversationService struct{}

func (s *stubConversationService) Converse(ctx context.Context, transcript domain.Transcript, message string) (string, domain.Transcript, error) {
	return "reply", transcript.WithExchange(message, "reply"), nil
}

func (s *stubConversationService) Send(ctx context.Context, state *domain.SessionState, message string) (string, error) {
	reply, updated, err := s.Converse(ctx, state.Messages, message)
	if err != nil {
		return "", err
	}
	state.Messages = updated
	return reply, nil
}

func (s *stubConversationService) Clear(state *domain.SessionState) { state.Messages = domain.Transcript{} }

type testServer struct {
	handler  http.Handler
	sessions *memory.SessionRepository
	notes    *stubNotesService
	auth     *stubAuthService
	docs     *stubDocumentService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := NewMockHandlerLogger()
	ts := &testServer{
		sessions: memory.NewSessionRepository(time.Hour),
		notes:    &stubNotesService{},
		auth:     &stubAuthService{},
		docs:     &stubDocumentService{uploaded: make(map[string][]byte)},
	}
	cookies := NewSessionCookies([]byte("0123456789abcdef0123456789abcdef"), []byte("abcdef0123456789"), log)
	sessions := NewSessionMiddleware(ts.sessions, cookies, ts.auth, log)
	ts.handler = NewRouter(Handlers{
		Session:      NewSessionHandler(log),
		Auth:         NewAuthHandler(ts.auth, sessions, log),
		Chat:         NewChatHandler(&stubChatService{}, log),
		Document:     NewDocumentHandler(ts.docs, 1024, log),
		Notes:        NewNotesHandler(ts.notes, log),
		Conversation: NewConversationHandler(&stubConversationService{}, log),
	}, sessions, []string{"http://localhost:5173"})
	return ts
}

// do sends req, carrying over the session cookie from prev if any.
func (ts *testServer) do(req *http.Request, prev *http.Cookie) *httptest.ResponseRecorder {
	if prev != nil {
		req.AddCookie(prev)
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// sessionCookie returns the last session cookie set, as a browser keeps it.
func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionCookieName {
			found = c
		}
	}
	if found == nil {
		t.Fatalf("expected %s cookie in response", SessionCookieName)
	}
	return found
}
