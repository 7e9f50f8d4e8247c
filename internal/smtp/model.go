package smtp

import (
	"bytes"

	"github.com/google/uuid"
)

type state int

const (
	stateCommand state = iota
	stateAuthUsername
	stateAuthPassword
	stateData
	stateClosed
)

// Session is the protocol state of one connection. It is owned by the
// goroutine serving that connection.
type Session struct {
	ID         string
	RemoteAddr string

	state         state
	authenticated bool
	authUsername  string
	data          bytes.Buffer
}

func newSession(remoteAddr string) *Session {
	return &Session{
		ID:         uuid.NewString(),
		RemoteAddr: remoteAddr,
		state:      stateCommand,
	}
}

func (s *Session) Authenticated() bool {
	return s.authenticated
}
