package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

var anthropicVersion = "bedrock-2023-05-31"

const defaultMaxTokens = 1024

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessageRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	System           string          `json:"system,omitempty"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (c *Client) Generate(ctx context.Context, messages []models.ChatMessage) (string, error) {
	// The messages API carries the system instruction in a dedicated field;
	// system-role turns are folded into it in order.
	var systemParts []string
	turns := make([]claudeMessage, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			systemParts = append(systemParts, m.Content)
		case models.RoleUser, models.RoleAssistant:
			turns = append(turns, claudeMessage{Role: m.Role, Content: m.Content})
		}
	}

	payload := claudeMessageRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        defaultMaxTokens,
		System:           strings.Join(systemParts, "\n\n"),
		Messages:         turns,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("unable to serialize claude request: %w", err)
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.ChatModelID,
		Body:        raw,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", classify(c.ChatModelID, err)
	}

	var response claudeMessageResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return "", faults.Wrap(faults.KindProviderUnavailable, "undecodable claude response", err)
	}

	var content string
	if len(response.Content) > 0 {
		content = response.Content[0].Text
	}

	return content, nil
}
