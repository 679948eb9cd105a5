package session

import (
	"context"
	"log/slog"

	"github.com/astro-web3/volunteer-management/internal/domain/session"
	"github.com/astro-web3/volunteer-management/pkg/logger"
	"github.com/astro-web3/volunteer-management/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type Service interface {
	Login(ctx context.Context, claims session.Claims) (string, *session.Session, error)
	Authenticate(ctx context.Context, token string) (*session.Session, error)
	Logout(ctx context.Context, token string)
}

type service struct {
	domainService session.Service
}

func NewService(domainService session.Service) Service {
	return &service{
		domainService: domainService,
	}
}

func (s *service) Login(ctx context.Context, claims session.Claims) (string, *session.Session, error) {
	ctx, span := telemetry.Start(ctx, "app.session.Login")
	defer span.End()

	token, sess, err := s.domainService.Issue(ctx, claims)
	if err != nil {
		span.RecordError(err)
		return "", nil, err
	}

	span.SetAttributes(
		attribute.String("session.id", sess.ID),
		attribute.String("session.email", sess.Email),
	)
	logger.InfoContext(ctx, "session issued",
		slog.String("session_id", sess.ID),
		slog.String("email", sess.Email),
	)

	return token, sess, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	ctx, span := telemetry.Start(ctx, "app.session.Authenticate")
	defer span.End()

	sess, err := s.domainService.Verify(ctx, token)
	if err != nil {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("session.valid", true),
		attribute.String("session.id", sess.ID),
	)
	return sess, nil
}

func (s *service) Logout(ctx context.Context, token string) {
	ctx, span := telemetry.Start(ctx, "app.session.Logout")
	defer span.End()

	span.SetAttributes(attribute.Bool("session.token_present", token != ""))
	s.domainService.Revoke(ctx, token)
}
