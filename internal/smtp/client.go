package smtp

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/OliverSchlueter/goutils/sloki"
	"github.com/wneessen/go-mail"
)

// Envelope describes one submission made by SendMail.
type Envelope struct {
	Username string
	Password string
	From     string
	To       string
}

// ComposeMail builds a plain text RFC 5322 message as the camera would send it.
func ComposeMail(from, to, subject, body string) ([]byte, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("failed to set From address: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("failed to set To address: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write message: %w", err)
	}
	return buf.Bytes(), nil
}

// SendMail submits data to the decoy at addr the way the camera does:
// EHLO, AUTH LOGIN, MAIL, RCPT, DATA and QUIT.
func SendMail(addr string, env Envelope, data []byte) error {
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server %s: %w", addr, err)
	}
	defer conn.Close()

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)

	if err := expectStatus(reader, "220"); err != nil {
		return fmt.Errorf("failed to read server greeting: %w", err)
	}

	steps := []struct {
		line string
		code string
		name string
	}{
		{"EHLO localhost", "250", "EHLO"},
		{"AUTH LOGIN", "334", "AUTH LOGIN"},
		{base64.StdEncoding.EncodeToString([]byte(env.Username)), "334", "AUTH username"},
		{base64.StdEncoding.EncodeToString([]byte(env.Password)), "235", "AUTH password"},
		{fmt.Sprintf("MAIL FROM:<%s>", env.From), "250", "MAIL FROM"},
		{fmt.Sprintf("RCPT TO:<%s>", env.To), "250", "RCPT TO"},
		{"DATA", "354", "DATA"},
	}
	for _, step := range steps {
		if err := writeLineC(writer, step.line); err != nil {
			return fmt.Errorf("%s command failed: %w", step.name, err)
		}
		if err := expectStatus(reader, step.code); err != nil {
			return fmt.Errorf("%s command failed: %w", step.name, err)
		}
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		if strings.HasPrefix(line, ".") {
			line = "." + line
		}
		if err := writeLineC(writer, line); err != nil {
			return fmt.Errorf("email data submission failed: %w", err)
		}
	}

	if err := writeLineC(writer, "."); err != nil {
		return fmt.Errorf("email data submission failed: %w", err)
	}
	if err := expectStatus(reader, "250"); err != nil {
		return fmt.Errorf("email data submission failed: %w", err)
	}

	if err := writeLineC(writer, "QUIT"); err != nil {
		return fmt.Errorf("QUIT command failed: %w", err)
	}
	if err := expectStatus(reader, "221"); err != nil {
		return fmt.Errorf("QUIT command failed: %w", err)
	}

	return nil
}

func expectStatus(r *bufio.Reader, code string) error {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		slog.Debug("S: " + line)

		if strings.HasPrefix(line, code+" ") {
			return nil
		}

		if !strings.HasPrefix(line, code+"-") {
			return fmt.Errorf("expected status %s, got %s", code, line)
		}
	}
}

func writeLineC(writer *bufio.Writer, line string) error {
	if _, err := writer.WriteString(line + "\r\n"); err != nil {
		slog.Error("Failed to write line", sloki.WrapError(err))
		return err
	}
	if err := writer.Flush(); err != nil {
		slog.Error("Failed to flush writer", sloki.WrapError(err))
		return err
	}

	slog.Debug("C: " + line)
	return nil
}
