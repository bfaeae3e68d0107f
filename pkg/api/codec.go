// Package api defines the splitsense.v1 RPC surface: message types, procedure
// names, and Connect handler and client constructors for each service.
//
// Messages travel as JSON over the Connect protocol. Handlers and clients
// built here register JSONCodec, so any Connect client that speaks
// "application/json" can call the server.
package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec marshals plain Go structs with encoding/json under the codec
// name "json", which Connect maps to the application/json content type.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
