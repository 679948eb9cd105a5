package volunteer

import (
	"context"
)

type Service interface {
	ListPosts(ctx context.Context) ([]*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	ListPostsByOrganizer(ctx context.Context, email string) ([]*Post, error)
	SearchPosts(ctx context.Context, query SearchQuery) ([]*Post, error)
	CountPosts(ctx context.Context, search string) (int64, error)
	CreatePost(ctx context.Context, post *Post) (*InsertResult, error)
	UpdatePost(ctx context.Context, id string, patch *PostPatch) (*UpdateResult, error)
	DeletePost(ctx context.Context, id string) (*DeleteResult, error)

	ListRegistrations(ctx context.Context) ([]*Registration, error)
	ListRegistrationsByOrganizer(ctx context.Context, email string) ([]*Registration, error)
	ListRegistrationsByVolunteer(ctx context.Context, email string) ([]*Registration, error)
	// Register stores reg and then decrements the post's remaining volunteer count.
	// The two writes are not atomic. A malformed post id is rejected before anything is stored.
	Register(ctx context.Context, postID string, reg *Registration) (*RegisterResult, error)
	DeleteRegistration(ctx context.Context, id string) (*DeleteResult, error)
}
