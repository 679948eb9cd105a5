package volunteer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/astro-web3/volunteer-management/pkg/logger"
)

type service struct {
	posts         PostRepository
	registrations RegistrationRepository
}

func NewService(posts PostRepository, registrations RegistrationRepository) Service {
	return &service{
		posts:         posts,
		registrations: registrations,
	}
}

// NewPostFilter normalizes a page request. Pages are 1-based; a non-positive size means no limit.
func NewPostFilter(query SearchQuery) PostFilter {
	filter := PostFilter{TitleContains: query.Search}
	if query.Size <= 0 {
		return filter
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	filter.Skip = int64(page-1) * int64(query.Size)
	filter.Limit = int64(query.Size)
	return filter
}

func (s *service) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.posts.List(ctx)
}

func (s *service) GetPost(ctx context.Context, id string) (*Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *service) ListPostsByOrganizer(ctx context.Context, email string) ([]*Post, error) {
	return s.posts.ListByOrganizer(ctx, email)
}

func (s *service) SearchPosts(ctx context.Context, query SearchQuery) ([]*Post, error) {
	return s.posts.Search(ctx, NewPostFilter(query))
}

func (s *service) CountPosts(ctx context.Context, search string) (int64, error) {
	return s.posts.Count(ctx, search)
}

func (s *service) CreatePost(ctx context.Context, post *Post) (*InsertResult, error) {
	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	return &InsertResult{InsertedID: id}, nil
}

func (s *service) UpdatePost(ctx context.Context, id string, patch *PostPatch) (*UpdateResult, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	return s.posts.Upsert(ctx, id, patch)
}

func (s *service) DeletePost(ctx context.Context, id string) (*DeleteResult, error) {
	n, err := s.posts.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: n}, nil
}

func (s *service) ListRegistrations(ctx context.Context) ([]*Registration, error) {
	return s.registrations.List(ctx)
}

func (s *service) ListRegistrationsByOrganizer(ctx context.Context, email string) ([]*Registration, error) {
	return s.registrations.ListByOrganizer(ctx, email)
}

func (s *service) ListRegistrationsByVolunteer(ctx context.Context, email string) ([]*Registration, error) {
	return s.registrations.ListByVolunteer(ctx, email)
}

func (s *service) Register(ctx context.Context, postID string, reg *Registration) (*RegisterResult, error) {
	if postID == "" {
		postID = reg.PostID
	}
	reg.PostID = postID

	if postID != "" {
		if err := s.posts.ValidateID(postID); err != nil {
			return nil, err
		}
	}

	insertedID, err := s.registrations.Create(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to store registration: %w", err)
	}

	result := &RegisterResult{InsertedID: insertedID}
	if postID == "" {
		logger.WarnContext(ctx, "registration stored without a post id",
			slog.String("registration_id", insertedID),
		)
		return result, nil
	}

	update, err := s.posts.AdjustVolunteersNeeded(ctx, postID, -1)
	if err != nil {
		logger.ErrorContext(ctx, "registration stored but volunteer count not decremented",
			slog.String("registration_id", insertedID),
			slog.String("post_id", postID),
			slog.String("error", err.Error()),
		)
		return result, fmt.Errorf("%w: %w", ErrVolunteerCountNotUpdated, err)
	}

	result.MatchedCount = update.MatchedCount
	result.ModifiedCount = update.ModifiedCount
	return result, nil
}

func (s *service) DeleteRegistration(ctx context.Context, id string) (*DeleteResult, error) {
	n, err := s.registrations.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: n}, nil
}
