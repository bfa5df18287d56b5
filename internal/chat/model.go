package chat

// Request is the body of POST /api/chat
type Request struct {
	Query string `json:"query"`
}

// Reply is returned verbatim from the model
type Reply struct {
	Reply string `json:"reply"`
}
