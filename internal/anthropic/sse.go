package anthropic

import (
	"bufio"
	"io"
	"strings"
)

// SSEEvent is one server-sent event from a streaming response.
type SSEEvent struct {
	// Type holds the "event:" field, or "" when the stream omitted it.
	Type string

	// Data is the payload assembled from the event's "data:" lines.
	// Multiple data lines are joined with newlines.
	Data string
}

// SSEScanner parses server-sent events from a response body. Events
// are delimited by blank lines; comment lines and fields other than
// "event" and "data" are skipped.
//
//	scanner := NewSSEScanner(body)
//	for scanner.Next() {
//	    event := scanner.Event()
//	}
//	if err := scanner.Err(); err != nil {
//	    // stream failed mid-read
//	}
type SSEScanner struct {
	reader  *bufio.Reader
	current SSEEvent
	err     error
}

// NewSSEScanner creates a scanner reading SSE events from reader.
func NewSSEScanner(reader io.Reader) *SSEScanner {
	return &SSEScanner{
		reader: bufio.NewReaderSize(reader, 64*1024),
	}
}

// Next advances to the next event. It returns false when the stream
// ends or a read fails; Err distinguishes the two.
func (scanner *SSEScanner) Next() bool {
	scanner.current = SSEEvent{}

	var dataLines []string
	var eventType string
	hasData := false

	for {
		line, err := scanner.reader.ReadString('\n')

		if err != nil && line == "" {
			if err == io.EOF {
				// A stream that ends without a trailing blank line
				// still delivers its last event.
				if hasData {
					scanner.current = SSEEvent{
						Type: eventType,
						Data: strings.Join(dataLines, "\n"),
					}
					scanner.err = io.EOF
					return true
				}
				return false
			}
			scanner.err = err
			return false
		}

		line = strings.TrimRight(line, "\r\n")

		// Blank line ends the current event.
		if line == "" {
			if hasData {
				scanner.current = SSEEvent{
					Type: eventType,
					Data: strings.Join(dataLines, "\n"),
				}
				return true
			}
			eventType = ""
			continue
		}

		// Comment line.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, hasColon := strings.Cut(line, ":")
		if !hasColon {
			field = line
			value = ""
		} else {
			// A single space after the colon is part of the syntax,
			// not the value.
			value = strings.TrimPrefix(value, " ")
		}

		switch field {
		case "data":
			dataLines = append(dataLines, value)
			hasData = true
		case "event":
			eventType = value
		}
	}
}

// Event returns the most recently parsed event. Only valid after Next
// returns true.
func (scanner *SSEScanner) Event() SSEEvent {
	return scanner.current
}

// Err returns the first read error, or nil when the stream ended
// cleanly.
func (scanner *SSEScanner) Err() error {
	if scanner.err == io.EOF {
		return nil
	}
	return scanner.err
}
