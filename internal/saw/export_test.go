package saw

import "log/slog"

// NewWithCaller returns a Client backed by the given caller instead of a real
// SOAP client.
func NewWithCaller(l *slog.Logger, c caller) *Client {
	return &Client{soap: c, log: l}
}
