package domain

// Message is one outgoing text unit handed to the dispatcher.
type Message struct {
	Text string `json:"text"`
}

// TextMessages wraps each string in its own Message.
func TextMessages(texts ...string) []Message {
	out := make([]Message, len(texts))
	for i, t := range texts {
		out[i] = Message{Text: t}
	}
	return out
}
