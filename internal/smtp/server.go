package smtp

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/netip"
	"strings"

	"github.com/OliverSchlueter/cctv-smtp/internal/credentials"
	"github.com/OliverSchlueter/cctv-smtp/internal/pipeline"
	"github.com/OliverSchlueter/goutils/sloki"
)

type Authenticator interface {
	Matches(username, password string) bool
}

type AddressPolicy interface {
	AddressAllowed(addr netip.Addr) bool
}

type MessageHandler interface {
	Handle(ctx context.Context, msg pipeline.Message) error
}

type Server struct {
	addr        string
	credentials Authenticator
	policy      AddressPolicy
	handler     MessageHandler
	decode      pipeline.Decoder
}

type Configuration struct {
	Addr        string
	Credentials Authenticator
	Policy      AddressPolicy
	Handler     MessageHandler
	// Decoder defaults to pipeline.DecodeMessage.
	Decoder pipeline.Decoder
}

func NewServer(config Configuration) *Server {
	if config.Addr == "" {
		config.Addr = ":2525"
	}
	if config.Decoder == nil {
		config.Decoder = pipeline.DecodeMessage
	}

	return &Server{
		addr:        config.Addr,
		credentials: config.Credentials,
		policy:      config.Policy,
		handler:     config.Handler,
		decode:      config.Decoder,
	}
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	defer listener.Close()

	slog.Info("Listening for SMTP connections", slog.String("addr", listener.Addr().String()))
	return s.Serve(listener)
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Warn("Failed to accept connection", sloki.WrapError(err))
			continue
		}

		if !s.policy.AddressAllowed(peerAddr(conn.RemoteAddr())) {
			slog.Warn("Dropping connection from disallowed address", slog.String("remote_addr", conn.RemoteAddr().String()))
			conn.Close()
			continue
		}

		go s.handle(context.Background(), conn)
	}
}

func peerAddr(addr net.Addr) netip.Addr {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.AddrPort().Addr()
	}

	ap, err := netip.ParseAddrPort(addr.String())
	if err != nil {
		return netip.Addr{}
	}
	return ap.Addr()
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	session := newSession(conn.RemoteAddr().String())
	log := slog.With(slog.String("session", session.ID), slog.String("remote_addr", session.RemoteAddr))

	log.Debug("New connection established", "protocol", conn.RemoteAddr().Network())

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	if err := writeLine(w, StatusServiceReady); err != nil {
		log.Warn("Failed to send greeting", sloki.WrapError(err))
		return
	}

	for session.state != stateClosed {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if session.state == stateData {
					log.Warn("Connection closed during DATA, discarding message", slog.Int("size", session.data.Len()))
				} else {
					log.Debug("Connection closed by peer")
				}
				return
			}
			log.Warn("Failed to read from connection", sloki.WrapError(err))
			return
		}

		if err := s.step(ctx, log, session, w, line); err != nil {
			log.Warn("Failed to write to connection", sloki.WrapError(err))
			return
		}
	}

	log.Debug("Connection closed")
}

// step feeds one received line into the session's state machine.
func (s *Server) step(ctx context.Context, log *slog.Logger, session *Session, w *bufio.Writer, line string) error {
	switch session.state {
	case stateData:
		if strings.TrimSpace(line) == "." {
			return s.finishData(ctx, log, session, w)
		}
		session.data.WriteString(line)
		return nil

	case stateAuthUsername:
		log.Debug("C: <username>")
		session.authUsername = line
		session.state = stateAuthPassword
		return writeLine(w, StatusAuthPassword)

	case stateAuthPassword:
		log.Debug("C: <password>")
		return s.finishAuth(log, session, w, line)

	default:
		log.Debug("C: " + strings.TrimRight(line, "\r\n"))
		return s.handleCommand(session, w, line)
	}
}

func (s *Server) handleCommand(session *Session, w *bufio.Writer, line string) error {
	cmd, arg := ParseCommand(line)

	switch cmd {
	case CmdHelo, CmdEhlo:
		return writeLine(w, StatusHello)

	case CmdMail, CmdRcpt:
		return writeLine(w, StatusOK)

	case CmdEndData:
		return writeLine(w, StatusMailAccepted)

	case CmdQuit:
		session.state = stateClosed
		return writeLine(w, StatusConnClosed)

	case CmdAuth:
		if strings.EqualFold(arg, "LOGIN") {
			session.state = stateAuthUsername
			return writeLine(w, StatusAuthUsername)
		}

	case CmdData:
		if session.authenticated {
			session.data.Reset()
			session.state = stateData
			return writeLine(w, StatusStartMailData)
		}
	}

	if session.authenticated {
		return writeLine(w, StatusBadCommand)
	}
	return writeLine(w, StatusAuthRequired)
}

func (s *Server) finishAuth(log *slog.Logger, session *Session, w *bufio.Writer, passwordLine string) error {
	session.state = stateCommand

	username := decodeAuthLine(session.authUsername)
	password := decodeAuthLine(passwordLine)
	session.authUsername = ""

	if !s.credentials.Matches(username, password) {
		log.Warn("Authentication failed")
		return writeLine(w, StatusAuthenticationFailed)
	}

	session.authenticated = true
	log.Info("Authentication successful")
	return writeLine(w, StatusAuthSuccess)
}

// decodeAuthLine decodes a base64 AUTH LOGIN response after dropping control
// bytes picked up on the wire. Undecodable input yields an empty string, which
// never matches.
func decodeAuthLine(line string) string {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(credentials.StripControl(line)))
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (s *Server) finishData(ctx context.Context, log *slog.Logger, session *Session, w *bufio.Writer) error {
	raw := make([]byte, session.data.Len())
	copy(raw, session.data.Bytes())
	session.data.Reset()
	session.state = stateCommand

	log.Debug("Email received", slog.Int("size", len(raw)))

	msg, err := s.decode(raw)
	if err != nil {
		log.Warn("Failed to decode authenticated email", sloki.WrapError(err))
		return writeLine(w, StatusParseFailed)
	}

	if err := s.handler.Handle(ctx, msg); err != nil {
		log.Warn("Failed to process alarm email", sloki.WrapError(err))
	}

	return writeLine(w, StatusMailAccepted)
}

func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line + "\r\n"); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	slog.Debug("S: " + line)
	return nil
}
