package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Content types negotiated at stream start.
const (
	ContentTypeJSON = "application/json"
	ContentTypeSSE  = "text/event-stream"
)

// Encoder frames events for one stream. The framing is chosen once from the
// caller's Accept preference: if it contains the JSON token, events are
// newline-delimited JSON; otherwise SSE text frames are produced.
type Encoder struct {
	accept string
}

// NewEncoder creates an Encoder from the caller's Accept header value.
func NewEncoder(accept string) *Encoder {
	return &Encoder{accept: strings.ToLower(accept)}
}

// ContentType returns the negotiated response content type.
func (e *Encoder) ContentType() string {
	if strings.Contains(e.accept, ContentTypeJSON) {
		return ContentTypeJSON
	}
	return ContentTypeSSE
}

// Encode serializes one event using the negotiated framing. Events are plain
// data structs; a marshal failure can only mean a programming error, so it
// panics rather than returning an error every caller would have to ignore.
func (e *Encoder) Encode(ev Event) []byte {
	payload, err := json.Marshal(ev)
	if err != nil {
		panic(fmt.Sprintf("protocol: unencodable event %q: %v", ev.Type, err))
	}

	if e.ContentType() == ContentTypeJSON {
		return append(payload, '\n')
	}

	var b strings.Builder
	b.Grow(len(payload) + len(ev.Type) + 16)
	b.WriteString("event: ")
	b.WriteString(string(ev.Type))
	b.WriteString("\ndata: ")
	b.Write(payload)
	b.WriteString("\n\n")
	return []byte(b.String())
}
