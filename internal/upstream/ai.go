package upstream

import (
	"context"
)

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Response string `json:"response"`
}

// Complete sends a natural-language prompt to the backend-proxied AI
// completion endpoint and returns the raw free-text reply. The reply is
// untrusted and must be validated before structural use.
func (c *Client) Complete(ctx context.Context, token, path, prompt string) (string, error) {
	var result completionResponse
	if err := c.postJSON(ctx, token, path, completionRequest{Prompt: prompt}, &result); err != nil {
		return "", err
	}
	return result.Response, nil
}
