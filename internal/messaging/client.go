// Package messaging defines the interface for outbound WhatsApp-style
// delivery and provides an HTTP gateway implementation.
package messaging

import "context"

// Sender dispatches a text message with an optional attachment URL to a phone
// number. Tests inject a stub that records calls without hitting the network.
type Sender interface {
	Send(ctx context.Context, to, message, fileURL string) (map[string]any, error)
}
