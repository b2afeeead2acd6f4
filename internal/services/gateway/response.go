package gateway

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
)

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// Response is a decoded successful response. Body is nil for a null
// success value (204, empty body or a non-JSON content type).
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
}

// IsNull reports whether the response carried no JSON value.
func (r *Response) IsNull() bool {
	return r == nil || len(r.Body) == 0
}

// Decode unmarshals the body into v. A null response leaves v untouched.
func (r *Response) Decode(v interface{}) error {
	if r.IsNull() || v == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.NewDecodeError(r.StatusCode, err)
	}
	return nil
}

func decodeResponse(raw *rawResponse) (*Response, error) {
	resp := &Response{
		StatusCode: raw.status,
		Header:     raw.header,
	}

	trimmed := bytes.TrimSpace(raw.body)
	if raw.status == http.StatusNoContent || len(trimmed) == 0 || !isJSON(raw.header) {
		return resp, nil
	}
	if !json.Valid(trimmed) {
		return nil, errors.NewDecodeError(raw.status, nil)
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return resp, nil
	}

	resp.Body = json.RawMessage(trimmed)
	return resp, nil
}

func isJSON(header http.Header) bool {
	mediaType, _, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
		Detail  string          `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	if len(payload.Error) > 0 {
		var text string
		if json.Unmarshal(payload.Error, &text) == nil && text != "" {
			return text
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return payload.Detail
}

// Blob is a binary success payload.
type Blob struct {
	ContentType string
	Filename    string
	Data        []byte
}

func newBlob(raw *rawResponse) *Blob {
	blob := &Blob{
		ContentType: raw.header.Get("Content-Type"),
		Data:        raw.body,
	}
	if disposition := raw.header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			blob.Filename = params["filename"]
		}
	}
	return blob
}
