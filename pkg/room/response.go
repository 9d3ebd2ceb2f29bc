package room

// Message is the format expected from a websocket client
type Message struct {
	Action string `json:"action"`
	Values []int  `json:"values"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Response is sent to websocket clients
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newResponse(key string, data interface{}, ctx string) *Response {
	return &Response{
		Key:     key,
		Data:    data,
		Context: ctx,
	}
}
