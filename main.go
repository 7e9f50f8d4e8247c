package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DavidGamba/go-getoptions"
	"github.com/OliverSchlueter/cctv-smtp/internal/config"
	"github.com/OliverSchlueter/cctv-smtp/internal/credentials"
	"github.com/OliverSchlueter/cctv-smtp/internal/pipeline"
	"github.com/OliverSchlueter/cctv-smtp/internal/policy"
	"github.com/OliverSchlueter/cctv-smtp/internal/smtp"
	"github.com/OliverSchlueter/cctv-smtp/internal/webhook"
	"github.com/OliverSchlueter/goutils/sloki"
)

func main() {
	var configPath, listen string
	opt := getoptions.New()
	opt.StringVar(&configPath, "config", "", opt.Alias("c"), opt.Description("optional YAML config file"))
	opt.StringVar(&listen, "listen", "", opt.Alias("l"), opt.Description("listen address, overrides CCTV_LISTEN_ADDR"))
	remaining, err := opt.Parse(os.Args[1:])
	if err != nil || len(remaining) != 0 {
		fmt.Fprint(os.Stderr, opt.Help())
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if listen != "" {
		cfg.ListenAddr = listen
	}

	lokiService := sloki.NewService(sloki.Configuration{
		URL:          cfg.LokiURL,
		Service:      "cctv-smtp",
		ConsoleLevel: cfg.Level(),
		LokiLevel:    slog.LevelInfo,
		EnableLoki:   cfg.LokiURL != "",
	})
	slog.SetDefault(slog.New(lokiService))

	accessPolicy := policy.New(policy.Configuration{
		AllowedSubject: cfg.AlarmSubject,
		AllowedIP:      cfg.AllowedAddr,
	})

	dispatcher := webhook.NewDispatcher(webhook.Configuration{
		URL: cfg.WebhookURL,
		Key: cfg.WebhookKey,
	})

	smtpServer := smtp.NewServer(smtp.Configuration{
		Addr: cfg.ListenAddr,
		Credentials: credentials.NewStore(credentials.Configuration{
			Username: cfg.Username,
			Password: cfg.Password,
		}),
		Policy: accessPolicy,
		Handler: pipeline.New(pipeline.Configuration{
			Policy:     accessPolicy,
			Dispatcher: dispatcher,
		}),
	})

	slog.Info("Starting CCTV SMTP server", slog.String("addr", cfg.ListenAddr))
	if err := smtpServer.Start(); err != nil {
		slog.Error("SMTP server stopped", sloki.WrapError(err))
		os.Exit(1)
	}
}
