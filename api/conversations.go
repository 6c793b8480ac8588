package api

import "context"

// Conversations lists the user's saved conversation threads.
func (c *Client) Conversations(ctx context.Context) ([]ConversationSummary, error) {
	var list []ConversationSummary
	if err := c.getJSON(ctx, "/conversations", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// NewConversation asks the backend to open a fresh thread and returns
// its assigned id.
func (c *Client) NewConversation(ctx context.Context) (string, error) {
	var resp newConversationResponse
	if err := c.postJSON(ctx, "/conversations/new", struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.ConversationID, nil
}
