package teamsync_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// ChatRequest is one conversational turn sent to the assistant, with a
// context snapshot of the user's teams so the model can ground its reply.
type ChatRequest struct {
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// SendChatMessage posts a chat turn and returns the assistant's raw reply
// text. Any embedded action markers are the caller's problem.
func (c *TeamSyncApiClient) SendChatMessage(ctx context.Context, message string, chatContext map[string]interface{}) (string, error) {
	payload, err := json.Marshal(ChatRequest{Message: message, Context: chatContext})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	body, err := c.Post(ctx, ChatEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal chat response: %w", err)
	}
	return resp.Response, nil
}
