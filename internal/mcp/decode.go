package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/anoonan/folio/internal/errors"
)

// checker is implemented by request types that validate themselves after decoding.
type checker interface {
	check() error
}

// decode unmarshals tool arguments into T through JSON, then runs T's check
// if it has one. Every failure is an INVALID_REQUEST.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, errors.NewInvalidRequest(fmt.Sprintf("invalid arguments: %v", err))
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, errors.NewInvalidRequest(fmt.Sprintf("invalid arguments: %v", err))
	}
	if c, ok := any(&result).(checker); ok {
		if err := c.check(); err != nil {
			return result, err
		}
	}
	return result, nil
}
