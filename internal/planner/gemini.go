package planner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"airemote/internal/models"
)

// GeminiPlanner plans steps with the Gemini API.
type GeminiPlanner struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	rateChan chan struct{} // token bucket
}

// NewGemini creates a Gemini-backed planner. concurrentReqs bounds
// simultaneous API calls.
func NewGemini(ctx context.Context, apiKey, modelName string, host HostContext, concurrentReqs int) (*GeminiPlanner, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetTopP(0.95)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemPrompt(host))},
	}

	if concurrentReqs <= 0 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiPlanner{
		client:   client,
		model:    model,
		rateChan: rateChan,
	}, nil
}

func (p *GeminiPlanner) Close() error {
	return p.client.Close()
}

// acquireRate blocks until a rate slot is available.
func (p *GeminiPlanner) acquireRate(ctx context.Context) error {
	select {
	case <-p.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (p *GeminiPlanner) releaseRate() {
	p.rateChan <- struct{}{}
}

// Plan asks the model for the next batch of steps toward the command.
func (p *GeminiPlanner) Plan(ctx context.Context, command string, stepNum int, screenshot []byte) (*models.Plan, error) {
	if err := p.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer p.releaseRate()

	parts := []genai.Part{genai.Text(UserMessage(command, stepNum))}
	if len(screenshot) > 0 {
		parts = append(parts, genai.ImageData("png", screenshot))
	}

	resp, err := p.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty model response")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}

	plan, err := ExtractPlan(text)
	if err != nil {
		log.Printf("[Planner] Unparseable model reply: %.200s", text)
		return nil, err
	}
	return plan, nil
}
