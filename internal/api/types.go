package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// --- Record ID ---

// RecordID is the server-assigned identifier of a record. Servers hand out
// either strings or integers, so the JSON kind is kept alongside the text and
// the ID re-encodes exactly as it was received.
type RecordID struct {
	text    string
	numeric bool
}

// StringID builds an ID that encodes as a JSON string.
func StringID(s string) RecordID {
	return RecordID{text: s}
}

// IntID builds an ID that encodes as a JSON number.
func IntID(n int64) RecordID {
	return RecordID{text: strconv.FormatInt(n, 10), numeric: true}
}

// ParseRecordID interprets user input (a CLI argument) as an ID. Integer
// literals become numeric IDs, everything else a string ID.
func ParseRecordID(s string) (RecordID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RecordID{}, fmt.Errorf("record id is required")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntID(n), nil
	}
	return StringID(s), nil
}

// String returns the ID as it appears in URL paths.
func (id RecordID) String() string {
	return id.text
}

// IsZero reports whether the ID was never assigned.
func (id RecordID) IsZero() bool {
	return id.text == "" && !id.numeric
}

// SameAs compares IDs by their path form, ignoring the JSON kind.
func (id RecordID) SameAs(other RecordID) bool {
	return id.text == other.text
}

func (id RecordID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.text), nil
	}
	return json.Marshal(id.text)
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = RecordID{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode record id: %w", err)
		}
		*id = StringID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode record id: %w", err)
		}
		*id = RecordID{text: n.String(), numeric: true}
		return nil
	}
}

// --- Record ---

// Record is one student entry as served by the collection endpoint.
type Record struct {
	ID      RecordID `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
}

// RecordInput is the body of create and update requests.
type RecordInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// --- Errors ---

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if msg, ok := extractAPIErrorBody([]byte(e.Body)); ok {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, body)
}
