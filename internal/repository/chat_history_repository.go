package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-tutoring-system/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// ChatHistoryRepository implements domain.RecordStore on a Supabase table
type ChatHistoryRepository struct {
	supabaseClient domain.SupabaseClient
	table          string
	logger         domain.Logger
}

// NewChatHistoryRepository creates a new chat-history repository
func NewChatHistoryRepository(supabaseClient domain.SupabaseClient, table string, logger domain.Logger) *ChatHistoryRepository {
	return &ChatHistoryRepository{
		supabaseClient: supabaseClient,
		table:          table,
		logger:         logger,
	}
}

type chatHistoryRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedAt   string `json:"created_at"`
	DisplayName string `json:"displayname"`
}

// createdAtLayouts covers timestamptz output and naive ISO strings.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02T15:04:05",
}

func parseCreatedAt(value string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func (row chatHistoryRow) toDomain() domain.ChatHistory {
	return domain.ChatHistory{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: parseCreatedAt(row.CreatedAt),
		Owner:     row.DisplayName,
	}
}

// ListChatHistories returns the owner's chats, oldest first
func (r *ChatHistoryRepository) ListChatHistories(ctx context.Context, owner string, token string) ([]domain.ChatHistory, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	resp, _, err := client.From(r.table).
		Select("id,name,created_at,displayname", "", false).
		Eq("displayname", owner).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list chat histories: %w", err)
	}

	var rows []chatHistoryRow
	if len(resp) > 0 {
		if err := json.Unmarshal(resp, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	histories := make([]domain.ChatHistory, 0, len(rows))
	for _, row := range rows {
		histories = append(histories, row.toDomain())
	}
	return histories, nil
}

// idPageSize is the page requested per round trip. PostgREST may return
// fewer rows than asked (max-rows), so only an empty page ends the scan.
const idPageSize = 1000

// LatestChatHistoryID returns the numerically highest ID across all owners.
// Text ordering would rank ID9999 above ID10000, so every ID is read page by
// page and the maximum is computed here.
func (r *ChatHistoryRepository) LatestChatHistoryID(ctx context.Context, token string) (string, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return "", fmt.Errorf("failed to get client: %w", err)
	}

	var ids []string
	for offset := 0; ; {
		resp, _, err := client.From(r.table).
			Select("id", "", false).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(offset, offset+idPageSize-1, "").
			Execute()
		if err != nil {
			return "", fmt.Errorf("failed to read chat history ids: %w", err)
		}

		var rows []struct {
			ID string `json:"id"`
		}
		if len(resp) > 0 {
			if err := json.Unmarshal(resp, &rows); err != nil {
				return "", fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}
		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		offset += len(rows)
	}
	return r.maxChatID(ids), nil
}

func (r *ChatHistoryRepository) maxChatID(ids []string) string {
	latest, max := "", -1
	for _, id := range ids {
		n, err := domain.ParseChatID(id)
		if err != nil {
			r.logger.Warn("Skipping malformed chat history id", "id", id)
			continue
		}
		if n > max {
			latest, max = id, n
		}
	}
	return latest
}

// InsertChatHistory inserts one row
func (r *ChatHistoryRepository) InsertChatHistory(ctx context.Context, record *domain.ChatHistory, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	data := map[string]interface{}{
		"id":          record.ID,
		"name":        record.Name,
		"created_at":  record.CreatedAt.UTC().Format(time.RFC3339),
		"displayname": record.Owner,
	}

	if _, _, err := client.From(r.table).Insert(data, false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to insert chat history: %w", err)
	}

	r.logger.Info("Chat history created", "id", record.ID, "owner", record.Owner)
	return nil
}
