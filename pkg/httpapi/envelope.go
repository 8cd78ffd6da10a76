package httpapi

import (
	"encoding/json"
	"net/http"
)

// Envelope is the shape of every API response.
type Envelope struct {
	Result int             `json:"result"`
	Status bool            `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// WriteEnvelope writes a successful envelope whose result mirrors the HTTP status.
func WriteEnvelope(w http.ResponseWriter, status int, msg string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return WriteJSON(w, status, &Envelope{
		Result: status,
		Status: true,
		Msg:    msg,
		Data:   raw,
	})
}

// WriteFailure writes an error envelope. data may be nil.
func WriteFailure(w http.ResponseWriter, status int, msg string, data any) error {
	raw := json.RawMessage("null")
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		raw = b
	}
	return WriteJSON(w, status, &Envelope{
		Result: status,
		Status: false,
		Msg:    msg,
		Data:   raw,
	})
}
