package api

// User is the identity resolved from a bearer token via /users/me
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ConversationSummary is one entry of the /conversations listing
type ConversationSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ChatTurn is one prior exchange sent as chat history. Only sender and
// text travel over the wire; transient placeholders are stripped before
// the request is built.
type ChatTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type chatRequest struct {
	Message        string     `json:"message"`
	History        []ChatTurn `json:"history"`
	ConversationID string     `json:"conversation_id,omitempty"`
}

// ChatResponse is the tutor's reply. ConversationID is set when the
// backend opened a new thread for this exchange.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type calculateRequest struct {
	Image      string            `json:"image"`
	DictOfVars map[string]string `json:"dict_of_vars"`
}

// ExprResult is one detected expression/result pair from drawing analysis
type ExprResult struct {
	Expr   string `json:"expr"`
	Result any    `json:"result"`
}

type calculateResponse struct {
	Data []ExprResult `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type newConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
