package volunteer

import (
	"context"
	"log/slog"

	volunteerdomain "github.com/astro-web3/volunteer-management/internal/domain/volunteer"
	"github.com/astro-web3/volunteer-management/pkg/logger"
	"github.com/astro-web3/volunteer-management/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type CommandService struct {
	domainService volunteerdomain.Service
}

func NewCommandService(domainService volunteerdomain.Service) *CommandService {
	return &CommandService{
		domainService: domainService,
	}
}

func (s *CommandService) CreatePost(ctx context.Context, post *volunteerdomain.Post) (*volunteerdomain.InsertResult, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.CreatePost")
	defer span.End()

	result, err := s.domainService.CreatePost(ctx, post)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("post.id", result.InsertedID))
	logger.InfoContext(ctx, "post created", slog.String("post_id", result.InsertedID))
	return result, nil
}

func (s *CommandService) UpdatePost(
	ctx context.Context,
	id string,
	patch *volunteerdomain.PostPatch,
) (*volunteerdomain.UpdateResult, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.UpdatePost")
	defer span.End()

	span.SetAttributes(attribute.String("post.id", id))

	result, err := s.domainService.UpdatePost(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.InfoContext(ctx, "post updated",
		slog.String("post_id", id),
		slog.Int64("modified", result.ModifiedCount),
		slog.Bool("upserted", result.UpsertedID != ""),
	)
	return result, nil
}

func (s *CommandService) DeletePost(ctx context.Context, id string) (*volunteerdomain.DeleteResult, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.DeletePost")
	defer span.End()

	span.SetAttributes(attribute.String("post.id", id))

	result, err := s.domainService.DeletePost(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.InfoContext(ctx, "post deleted", slog.String("post_id", id), slog.Int64("deleted", result.DeletedCount))
	return result, nil
}

func (s *CommandService) Register(
	ctx context.Context,
	postID string,
	reg *volunteerdomain.Registration,
) (*volunteerdomain.RegisterResult, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.Register")
	defer span.End()

	span.SetAttributes(
		attribute.String("post.id", postID),
		attribute.String("registration.email", reg.Email),
	)

	result, err := s.domainService.Register(ctx, postID, reg)
	if err != nil {
		span.RecordError(err)
		return result, err
	}

	logger.InfoContext(ctx, "volunteer registered",
		slog.String("post_id", postID),
		slog.String("registration_id", result.InsertedID),
	)
	return result, nil
}

func (s *CommandService) DeleteRegistration(ctx context.Context, id string) (*volunteerdomain.DeleteResult, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.DeleteRegistration")
	defer span.End()

	span.SetAttributes(attribute.String("registration.id", id))

	result, err := s.domainService.DeleteRegistration(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.InfoContext(ctx, "registration deleted", slog.String("registration_id", id))
	return result, nil
}
