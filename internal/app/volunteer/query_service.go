package volunteer

import (
	"context"

	volunteerdomain "github.com/astro-web3/volunteer-management/internal/domain/volunteer"
	"github.com/astro-web3/volunteer-management/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type QueryService struct {
	domainService volunteerdomain.Service
}

func NewQueryService(domainService volunteerdomain.Service) *QueryService {
	return &QueryService{
		domainService: domainService,
	}
}

func (s *QueryService) ListPosts(ctx context.Context) ([]*volunteerdomain.Post, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.ListPosts")
	defer span.End()

	posts, err := s.domainService.ListPosts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("post.count", len(posts)))
	return posts, nil
}

func (s *QueryService) GetPost(ctx context.Context, id string) (*volunteerdomain.Post, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.GetPost")
	defer span.End()

	span.SetAttributes(attribute.String("post.id", id))

	post, err := s.domainService.GetPost(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return post, nil
}

func (s *QueryService) ListPostsByOrganizer(ctx context.Context, email string) ([]*volunteerdomain.Post, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.ListPostsByOrganizer")
	defer span.End()

	posts, err := s.domainService.ListPostsByOrganizer(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("post.count", len(posts)))
	return posts, nil
}

func (s *QueryService) SearchPosts(ctx context.Context, query volunteerdomain.SearchQuery) ([]*volunteerdomain.Post, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.SearchPosts")
	defer span.End()

	span.SetAttributes(
		attribute.String("search.text", query.Search),
		attribute.Int("search.page", query.Page),
		attribute.Int("search.size", query.Size),
	)

	posts, err := s.domainService.SearchPosts(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("post.count", len(posts)))
	return posts, nil
}

func (s *QueryService) CountPosts(ctx context.Context, search string) (int64, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.CountPosts")
	defer span.End()

	n, err := s.domainService.CountPosts(ctx, search)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("post.count", n))
	return n, nil
}

func (s *QueryService) ListRegistrations(ctx context.Context) ([]*volunteerdomain.Registration, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.ListRegistrations")
	defer span.End()

	regs, err := s.domainService.ListRegistrations(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return regs, nil
}

func (s *QueryService) ListRegistrationsByOrganizer(
	ctx context.Context,
	email string,
) ([]*volunteerdomain.Registration, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.ListRegistrationsByOrganizer")
	defer span.End()

	regs, err := s.domainService.ListRegistrationsByOrganizer(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("registration.count", len(regs)))
	return regs, nil
}

func (s *QueryService) ListRegistrationsByVolunteer(
	ctx context.Context,
	email string,
) ([]*volunteerdomain.Registration, error) {
	ctx, span := telemetry.Start(ctx, "app.volunteer.ListRegistrationsByVolunteer")
	defer span.End()

	regs, err := s.domainService.ListRegistrationsByVolunteer(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("registration.count", len(regs)))
	return regs, nil
}
