package responseformat

import (
	"encoding/json"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// ErrorResponse is the body written for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteResponse writes the response in the appropriate format based on the query parameter
// JSON is the default format. MessagePack is used when format=msgpack is specified
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, data any, headers map[string]string) error {
	return f.write(w, req, http.StatusOK, data, headers)
}

// WriteError writes an ErrorResponse with the given status code in the requested format
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, err error) error {
	return f.write(w, req, status, ErrorResponse{Error: err.Error()}, nil)
}

func (f *Formatter) write(w http.ResponseWriter, req *http.Request, status int, data any, headers map[string]string) error {
	// Set any provided headers first
	for k, v := range headers {
		w.Header().Set(k, v)
	}

	// Always set CORS header
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Check if MessagePack is requested via format=msgpack query parameter
	if req.URL.Query().Get("format") == "msgpack" {
		return f.writeMsgPack(w, status, data)
	}

	// Default to JSON format (when no format parameter or any other value)
	return f.writeJSON(w, status, data)
}

func (f *Formatter) writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func (f *Formatter) writeMsgPack(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/x-msgpack")
	w.WriteHeader(status)
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}
