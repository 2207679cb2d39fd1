package vertex

import (
	"context"
	"fmt"
	"strings"

	"ai-tutoring-system/internal/domain"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

const modelRole = "model"

// Generator implements domain.TextGenerator with Gemini on Vertex AI
type Generator struct {
	client *genai.Client
	model  string
	logger domain.Logger
}

// NewGenerator creates a Vertex AI client for projectID/location. When
// credentialsFile is empty, application-default credentials are used.
func NewGenerator(ctx context.Context, projectID, location, model, credentialsFile string, logger domain.Logger) (*Generator, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("vertex: projectID and location cannot be empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	logger.Info("Vertex AI client initialized", "project", projectID, "location", location, "model", model)

	return &Generator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends a single prompt with no conversation history
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	return responseText(resp)
}

// Chat replays history in order and sends message as the next user turn
func (g *Generator) Chat(ctx context.Context, history []domain.ConversationTurn, message string) (string, error) {
	model := g.client.GenerativeModel(g.model)

	chat := model.StartChat()
	chat.History = toContents(history)

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}
	return responseText(resp)
}

// Close releases the underlying gRPC connection
func (g *Generator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// toContents converts transcript turns into Gemini history; assistant turns
// use the "model" role.
func toContents(history []domain.ConversationTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := string(domain.RoleUser)
		if turn.Role == domain.RoleAssistant {
			role = modelRole
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}
	return contents
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", domain.ErrEmptyGeneration
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", domain.ErrEmptyGeneration
	}
	return sb.String(), nil
}
