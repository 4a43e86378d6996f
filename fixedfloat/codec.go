package fixedfloat

import (
	"bytes"
	"encoding/json"
	"errors"
)

// SuccessCode is the envelope code of a successful call.
const SuccessCode = 0

var (
	errMissingCode = errors.New("response envelope has no code")
	errMissingData = errors.New("response envelope has no data")
)

// envelope is the wrapper around every response body.
type envelope struct {
	Code *int            `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// encode serializes a request payload. The result is what gets signed and
// sent.
func encode(payload any) ([]byte, error) {
	if payload == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(payload)
}

// decode unwraps the envelope and, on success, decodes data into out. A
// non-zero code becomes an ApplicationError and data is left untouched.
func decode(method string, body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &DecodeError{Method: method, Body: body, Err: err}
	}
	if env.Code == nil {
		return &DecodeError{Method: method, Body: body, Err: errMissingCode}
	}
	if *env.Code != SuccessCode {
		return &ApplicationError{Method: method, Code: *env.Code, Message: env.Msg}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return &DecodeError{Method: method, Body: body, Err: errMissingData}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &DecodeError{Method: method, Body: body, Err: err}
	}
	return nil
}

// isEnvelope reports whether body is a JSON object carrying a code.
func isEnvelope(body []byte) bool {
	var env envelope
	return json.Unmarshal(body, &env) == nil && env.Code != nil
}
