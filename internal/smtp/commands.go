package smtp

import "strings"

type Command int

const (
	CmdUnknown Command = iota
	CmdHelo
	CmdEhlo
	CmdMail
	CmdRcpt
	CmdAuth
	CmdData
	CmdQuit
	// CmdEndData is a lone "." received outside of DATA.
	CmdEndData
)

var commandVerbs = map[string]Command{
	"HELO": CmdHelo,
	"EHLO": CmdEhlo,
	"MAIL": CmdMail,
	"RCPT": CmdRcpt,
	"AUTH": CmdAuth,
	"DATA": CmdData,
	"QUIT": CmdQuit,
	".":    CmdEndData,
}

func (c Command) String() string {
	for verb, cmd := range commandVerbs {
		if cmd == c {
			return verb
		}
	}
	return "UNKNOWN"
}

// ParseCommand splits a command line into its verb and the remaining argument.
// Verbs are matched case-insensitively; anything else is CmdUnknown.
func ParseCommand(line string) (Command, string) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

	cmd, ok := commandVerbs[strings.ToUpper(verb)]
	if !ok {
		cmd = CmdUnknown
	}

	return cmd, strings.TrimSpace(arg)
}
