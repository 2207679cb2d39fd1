package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"ai-tutoring-system/internal/domain"
)

type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	downloads int
	err       error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(ctx context.Context, path string, data io.Reader, contentType string, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[path] = b
	return nil
}

func (f *fakeBlobStore) List(ctx context.Context, prefix string, token string) ([]domain.StoredObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	var out []domain.StoredObject
	for path, data := range f.objects {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		out = append(out, domain.StoredObject{Name: rest, Size: int64(len(data))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, paths []string, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, p := range paths {
		delete(f.objects, p)
	}
	return nil
}

func (f *fakeBlobStore) Download(ctx context.Context, path string, token string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads++
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, path)
	}
	return data, nil
}

type fakeRecordStore struct {
	mu      sync.Mutex
	rows    []domain.ChatHistory
	readErr error
	saveErr error
}

func (f *fakeRecordStore) ListChatHistories(ctx context.Context, owner string, token string) ([]domain.ChatHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []domain.ChatHistory
	for _, row := range f.rows {
		if row.Owner == owner {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) LatestChatHistoryID(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return "", f.readErr
	}
	latest, max := "", -1
	for _, row := range f.rows {
		if n, err := domain.ParseChatID(row.ID); err == nil && n > max {
			latest, max = row.ID, n
		}
	}
	return latest, nil
}

func (f *fakeRecordStore) InsertChatHistory(ctx context.Context, record *domain.ChatHistory, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rows = append(f.rows, *record)
	return nil
}

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
	history [][]domain.ConversationTurn
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeGenerator) Chat(ctx context.Context, history []domain.ConversationTurn, message string) (string, error) {
	f.history = append(f.history, history)
	f.prompts = append(f.prompts, message)
	return f.reply, f.err
}

type fakeAuthBackend struct {
	session   *domain.AuthSession
	signInErr error
	signUpErr error
	signedOut []string
	signedUp  []string

	// refreshed maps accepted refresh tokens to the pair they are exchanged for
	refreshed  map[string]*domain.AuthSession
	refreshErr error
	refreshes  []string
}

func (f *fakeAuthBackend) SignUp(email, password, displayName string) error {
	f.signedUp = append(f.signedUp, displayName)
	return f.signUpErr
}

func (f *fakeAuthBackend) SignIn(email, password string) (*domain.AuthSession, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAuthBackend) SignOut(token string) error {
	f.signedOut = append(f.signedOut, token)
	return nil
}

func (f *fakeAuthBackend) Refresh(refreshToken string) (*domain.AuthSession, error) {
	f.refreshes = append(f.refreshes, refreshToken)
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	if session, ok := f.refreshed[refreshToken]; ok {
		return session, nil
	}
	return nil, fmt.Errorf("invalid_grant: Invalid Refresh Token")
}

type fakePDFEngine struct {
	pages []string
	err   error
}

func (f *fakePDFEngine) Name() string { return "fake" }

func (f *fakePDFEngine) PageTexts(pdfBytes []byte) ([]string, error) {
	return f.pages, f.err
}

// loggedInState returns a session of user alice with chat Bio selected.
func loggedInState() *domain.SessionState {
	state := domain.NewSessionState("sess-1")
	state.Username = "alice"
	state.UserID = "u-1"
	state.AccessToken = "tok"
	state.SelectedChat = "Bio"
	return state
}
