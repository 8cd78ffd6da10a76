package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	MsgNetworkError  = "Network error. Please check your connection."
	MsgRequestConfig = "Request configuration error"
	MsgRequestFailed = "Request failed"
	MsgUnknown       = "An error occurred"
	MsgBadResponse   = "Invalid response from server"
)

// Failure is every request or response failure, normalized to
// {result, status:false, msg, data:null}.
type Failure struct {
	Result int    `json:"result"`
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data"`

	details json.RawMessage
	cause   error
}

func NewFailure(result int, msg string) *Failure {
	return &Failure{Result: result, Msg: msg}
}

// NetworkFailure is returned when no response was received.
func NetworkFailure(cause error) *Failure {
	return &Failure{Result: http.StatusServiceUnavailable, Msg: MsgNetworkError, cause: cause}
}

// ConfigFailure is returned when the request could not be built.
func ConfigFailure(cause error) *Failure {
	return &Failure{Result: http.StatusBadRequest, Msg: MsgRequestConfig, cause: cause}
}

// FromEnvelope normalizes an error envelope. httpStatus and the status text
// fill in whatever the envelope leaves out.
func FromEnvelope(env *Envelope, httpStatus int) *Failure {
	f := &Failure{Result: httpStatus}
	if env != nil {
		if env.Result != 0 {
			f.Result = env.Result
		}
		f.Msg = strings.TrimSpace(env.Msg)
		if len(env.Data) > 0 && string(env.Data) != "null" {
			f.details = env.Data
		}
	}
	if f.Msg == "" {
		if httpStatus >= 200 && httpStatus < 300 {
			f.Msg = MsgRequestFailed
		} else if text := http.StatusText(httpStatus); text != "" {
			f.Msg = text
		} else {
			f.Msg = MsgUnknown
		}
	}
	return f
}

func (f *Failure) WithCause(err error) *Failure {
	f.cause = err
	return f
}

func (f *Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s (%d): %v", f.Msg, f.Result, f.cause)
	}
	return fmt.Sprintf("%s (%d)", f.Msg, f.Result)
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// Details is the raw data the server attached to the error envelope.
func (f *Failure) Details() json.RawMessage {
	return f.details
}

// FieldErrors reads server-side validation details shaped as
// {"field": "msg"} or {"field": ["msg", ...]}. Other shapes yield nil.
func (f *Failure) FieldErrors() map[string]string {
	if len(f.details) == 0 {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(f.details, &raw); err != nil {
		return nil
	}
	out := make(map[string]string, len(raw))
	for field, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[field] = s
			continue
		}
		var list []string
		if err := json.Unmarshal(v, &list); err == nil && len(list) > 0 {
			out[field] = strings.Join(list, "; ")
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Describe is Msg followed by any field errors, for terminal output.
func (f *Failure) Describe() string {
	fields := f.FieldErrors()
	if len(fields) == 0 {
		return f.Msg
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(f.Msg)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %s", k, fields[k])
	}
	return b.String()
}
