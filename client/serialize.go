package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// encodeBody serializes the request body per its declared type. It returns
// the wire bytes and the Content-Type to send; both are empty when the
// request carries no body.
func encodeBody(req *Request) ([]byte, string, error) {
	if req.Body == nil {
		return nil, "", nil
	}

	bodyType := req.BodyType
	if bodyType == "" {
		bodyType = contentTypeJSON
	}

	// Pre-serialized payloads pass through under the declared type.
	switch b := req.Body.(type) {
	case []byte:
		return b, bodyType, nil
	case string:
		return []byte(b), bodyType, nil
	}

	switch mediaType(bodyType) {
	case contentTypeJSON:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", NewValidationError(fmt.Sprintf("body is not serializable as JSON: %v", err), "body")
		}
		return data, bodyType, nil
	case contentTypeForm:
		values, err := formValues(req.Body)
		if err != nil {
			return nil, "", err
		}
		return []byte(values.Encode()), bodyType, nil
	default:
		return nil, "", NewValidationError(fmt.Sprintf("unsupported body type %q", bodyType), "bodyType")
	}
}

func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func formValues(body any) (url.Values, error) {
	values := make(url.Values)
	switch b := body.(type) {
	case url.Values:
		return b, nil
	case map[string]string:
		for k, v := range b {
			values.Set(k, v)
		}
	case map[string]any:
		for k, v := range b {
			values.Set(k, fmt.Sprintf("%v", v))
		}
	default:
		return nil, NewValidationError("form bodies must be a map of parameters", "body")
	}
	return values, nil
}

// decodeBody parses a response body as JSON. An empty body decodes to an
// empty object; bytes that are not valid JSON are surfaced as a raw string
// so a diagnostic body is never lost.
func decodeBody(raw []byte) any {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return map[string]any{}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return string(raw)
	}
	return parsed
}
