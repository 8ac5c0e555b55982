package arr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marks network failures and non-2xx responses.
	ErrTransport = errors.New("platform transport error")
	// ErrDecode marks response bodies that could not be decoded.
	ErrDecode = errors.New("platform decode error")
	// ErrUnauthorized marks a rejected API key.
	ErrUnauthorized = errors.New("platform rejected api key")
)

// wrap tags err with marker while keeping the operation in the message.
func wrap(marker error, operation, message string, err error) error {
	detail := strings.TrimSpace(operation)
	if message = strings.TrimSpace(message); message != "" {
		detail += ": " + message
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}
