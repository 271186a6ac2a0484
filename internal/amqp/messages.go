package amqp

import (
	"encoding/json"
	"time"
)

// ImportRequest asks the worker to load a ledger export and store it. The
// payload carries only the location; the worker reads the file itself.
type ImportRequest struct {
	Path        string    `json:"path"`
	SkipRows    int       `json:"skip_rows"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewImportRequest creates a request for the CSV export at path.
func NewImportRequest(path string, skipRows int) *ImportRequest {
	return &ImportRequest{
		Path:        path,
		SkipRows:    skipRows,
		RequestedAt: time.Now(),
	}
}

// ToJSON serializes the request.
func (m *ImportRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ImportRequestFromJSON deserializes a request.
func ImportRequestFromJSON(data []byte) (*ImportRequest, error) {
	var msg ImportRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
