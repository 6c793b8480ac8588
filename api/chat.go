package api

import "context"

// Chat sends a message with the prior conversation history and returns
// the tutor's reply. conversationID may be empty for a fresh thread;
// the backend then assigns one and returns it in the response.
func (c *Client) Chat(ctx context.Context, message string, history []ChatTurn, conversationID string) (*ChatResponse, error) {
	payload := chatRequest{
		Message:        message,
		History:        history,
		ConversationID: conversationID,
	}

	var resp ChatResponse
	if err := c.postJSON(ctx, "/chat", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Calculate submits a data-URL-encoded drawing for analysis and returns
// the detected expression/result pairs. vars carries an optional
// variable-substitution mapping (empty by default).
func (c *Client) Calculate(ctx context.Context, image string, vars map[string]string) ([]ExprResult, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	payload := calculateRequest{Image: image, DictOfVars: vars}

	var resp calculateResponse
	if err := c.postJSON(ctx, "/calculate", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
