package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/venkm/starfield/internal/config"
	"github.com/venkm/starfield/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "web",
	})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	mailer := web.NewSMTPMailer(web.SMTPConfig{
		Host:        config.GetEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:        config.GetEnvInt("SMTP_PORT", 587),
		Username:    config.GetEnv("SENDER_EMAIL", ""),
		Password:    config.GetEnv("SENDER_PASSWORD", ""),
		From:        config.GetEnv("SENDER_EMAIL", ""),
		To:          config.GetEnv("RECIPIENT_EMAIL", ""),
		DialTimeout: config.GetEnvDuration("SMTP_DIAL_TIMEOUT", 10*time.Second),
	}, logger)

	validator := &web.Validator{
		Strict:      config.GetEnvBool("STRICT_EMAIL_VALIDATION", true),
		CheckDomain: web.ResolverDomainCheck(nil),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Handler:      web.NewServer(logger, validator, mailer, sshHost),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting web server", "addr", server.Addr, "strict_email", validator.Strict)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
