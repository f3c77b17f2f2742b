package sentryutil

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"

	"github.com/pulseclub/go-pulse/env"
	"github.com/pulseclub/go-pulse/service/logger"
)

const errorContextName = "error context"

// Init configures the process-wide sentry client. A missing DSN disables reporting.
func Init() {
	dsn := env.GetString("SENTRY_DSN")
	if dsn == "" {
		logger.For(nil).Info("sentry DSN not set, skipping sentry init")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env.GetString("ENV"),
		TracesSampleRate: 0.2,
		AttachStacktrace: true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to init sentry: %s", err))
	}
}

// ReportError captures an error on the hub stored in ctx
func ReportError(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		logger.For(ctx).Warnln("could not report error to Sentry because hub is nil")
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		SetErrorContext(scope, fmt.Sprintf("%T", err))
		hub.CaptureException(err)
	})
}

// SetErrorContext annotates a scope with the concrete error type
func SetErrorContext(scope *sentry.Scope, errType string) {
	scope.SetContext(errorContextName, sentry.Context{
		"Type": errType,
	})
}
