package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/DavidGamba/go-getoptions"
	"github.com/OliverSchlueter/cctv-smtp/internal/smtp"
)

// Sends a fake camera alarm to a running decoy.
func main() {
	var server, username, password, subject, eventType, input string
	opt := getoptions.New()
	opt.StringVar(&server, "server", "localhost:2525", opt.Alias("s"))
	opt.StringVar(&username, "username", "", opt.Alias("u"), opt.Required())
	opt.StringVar(&password, "password", "", opt.Alias("p"), opt.Required())
	opt.StringVar(&subject, "subject", "CCTV Alarm")
	opt.StringVar(&eventType, "event", "Motion")
	opt.StringVar(&input, "input", "")
	remaining, err := opt.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, opt.Help())
		log.Fatal(err)
	}
	if len(remaining) != 0 {
		log.Printf("Unhandled parameters: %v\n", remaining)
	}

	body := "<Alarm>"
	if input != "" {
		body += "<Input1>" + input + "</Input1>"
	}
	body += "<EventType>" + eventType + "</EventType><ExtraText></ExtraText>"
	body += "<DateTime>" + time.Now().Format("2006-01-02T15:04:05") + "</DateTime></Alarm>"

	data, err := smtp.ComposeMail("camera@cctv.local", "alarm@cctv.local", subject, body)
	if err != nil {
		log.Fatalf("failed to compose alarm mail: %s", err)
	}

	env := smtp.Envelope{
		Username: username,
		Password: password,
		From:     "camera@cctv.local",
		To:       "alarm@cctv.local",
	}
	if err := smtp.SendMail(server, env, data); err != nil {
		log.Fatalf("failed to send alarm mail: %s", err)
	}

	log.Printf("Sent %s alarm to %s", eventType, server)
}
