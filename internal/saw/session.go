package saw

import "fmt"

// Session is an authenticated connection to the server. Close must be called
// to release the remote session.
type Session struct {
	client *Client
	id     string

	closed bool
}

// Login opens a session with the given credentials.
func (c *Client) Login(username, password string) (*Session, error) {
	id, err := c.Logon(username, password)
	if err != nil {
		return nil, fmt.Errorf("login failed for %s: %w", username, err)
	}
	c.log.Debug("Obtained session", "sessionID", id)
	return &Session{client: c, id: id}, nil
}

// ID returns the remote session identifier.
func (s *Session) ID() string {
	return s.id
}

// Close logs the session off. It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.client.Logoff(s.id); err != nil {
		return fmt.Errorf("could not log off session: %w", err)
	}
	s.client.log.Debug("Session closed", "sessionID", s.id)
	return nil
}
