package volunteer

import (
	"context"
)

type PostRepository interface {
	List(ctx context.Context) ([]*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	ListByOrganizer(ctx context.Context, email string) ([]*Post, error)
	Search(ctx context.Context, filter PostFilter) ([]*Post, error)
	Count(ctx context.Context, titleContains string) (int64, error)
	Create(ctx context.Context, post *Post) (string, error)
	// Upsert sets the fields present in patch, creating the post when id does not exist.
	Upsert(ctx context.Context, id string, patch *PostPatch) (*UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
	// ValidateID returns ErrInvalidID when id can never name a post.
	ValidateID(id string) error
	// AdjustVolunteersNeeded adds delta to the post's remaining volunteer count.
	AdjustVolunteersNeeded(ctx context.Context, id string, delta int) (*UpdateResult, error)
}

type RegistrationRepository interface {
	List(ctx context.Context) ([]*Registration, error)
	ListByOrganizer(ctx context.Context, email string) ([]*Registration, error)
	ListByVolunteer(ctx context.Context, email string) ([]*Registration, error)
	Create(ctx context.Context, reg *Registration) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
}
