package channel

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// JSON method codec.
//
//	call:    {"method": "getPlatformVersion", "args": null}
//	success: ["iOS 17.4"]
//	error:   ["UNAVAILABLE", "platform version unavailable", null]
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformed is returned for payloads that are not valid calls or envelopes.
var ErrMalformed = errors.New("malformed message")

type wireCall struct {
	Method string      `json:"method"`
	Args   interface{} `json:"args"`
}

// EncodeMethodCall serializes a call.
func EncodeMethodCall(call MethodCall) ([]byte, error) {
	return json.Marshal(wireCall{Method: call.Method, Args: call.Arguments})
}

// DecodeMethodCall parses a call. The method name is required.
func DecodeMethodCall(data []byte) (MethodCall, error) {
	var w wireCall
	if err := json.Unmarshal(data, &w); err != nil {
		return MethodCall{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.Method == "" {
		return MethodCall{}, fmt.Errorf("%w: missing method", ErrMalformed)
	}
	return MethodCall{Method: w.Method, Arguments: w.Args}, nil
}

// EncodeSuccessEnvelope wraps a result in a one-element array.
func EncodeSuccessEnvelope(result interface{}) ([]byte, error) {
	return json.Marshal([]interface{}{result})
}

// EncodeErrorEnvelope wraps an error in a [code, message, details] array.
func EncodeErrorEnvelope(e *Error) ([]byte, error) {
	var msg interface{}
	if e.Message != "" {
		msg = e.Message
	}
	return json.Marshal([]interface{}{e.Code, msg, e.Details})
}

// DecodeEnvelope parses a reply. An error envelope is returned as *Error.
func DecodeEnvelope(data []byte) (interface{}, error) {
	var parts []interface{}
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch len(parts) {
	case 1:
		return parts[0], nil
	case 3:
		code, ok := parts[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: error code is not a string", ErrMalformed)
		}
		e := &Error{Code: code, Details: parts[2]}
		if parts[1] != nil {
			msg, ok := parts[1].(string)
			if !ok {
				return nil, fmt.Errorf("%w: error message is not a string", ErrMalformed)
			}
			e.Message = msg
		}
		return nil, e
	default:
		return nil, fmt.Errorf("%w: envelope has %d elements", ErrMalformed, len(parts))
	}
}
