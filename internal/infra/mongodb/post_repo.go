package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/astro-web3/volunteer-management/internal/domain/volunteer"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type organizerDocument struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

type postDocument struct {
	ID          bson.ObjectID     `bson:"_id,omitempty"`
	Thumbnail   string            `bson:"thumbnail"`
	PostTitle   string            `bson:"postTitle"`
	Description string            `bson:"description"`
	Category    string            `bson:"category"`
	Location    string            `bson:"location"`
	NoVolunteer int               `bson:"noVolunteer"`
	Deadline    time.Time         `bson:"deadline"`
	Organizer   organizerDocument `bson:"takeVolunteer"`
}

func toPostDocument(p *volunteer.Post) postDocument {
	return postDocument{
		Thumbnail:   p.Thumbnail,
		PostTitle:   p.PostTitle,
		Description: p.Description,
		Category:    p.Category,
		Location:    p.Location,
		NoVolunteer: p.NoVolunteer,
		Deadline:    p.Deadline,
		Organizer:   organizerDocument(p.Organizer),
	}
}

func (d postDocument) toDomain() *volunteer.Post {
	return &volunteer.Post{
		ID:          d.ID.Hex(),
		Thumbnail:   d.Thumbnail,
		PostTitle:   d.PostTitle,
		Description: d.Description,
		Category:    d.Category,
		Location:    d.Location,
		NoVolunteer: d.NoVolunteer,
		Deadline:    d.Deadline,
		Organizer:   volunteer.Organizer(d.Organizer),
	}
}

// patchUpdate builds a $set over the fields present in patch only.
func patchUpdate(patch *volunteer.PostPatch) bson.D {
	var set bson.D
	add := func(key string, present bool, value func() any) {
		if present {
			set = append(set, bson.E{Key: key, Value: value()})
		}
	}

	add("thumbnail", patch.Thumbnail != nil, func() any { return *patch.Thumbnail })
	add("postTitle", patch.PostTitle != nil, func() any { return *patch.PostTitle })
	add("description", patch.Description != nil, func() any { return *patch.Description })
	add("category", patch.Category != nil, func() any { return *patch.Category })
	add("location", patch.Location != nil, func() any { return *patch.Location })
	add("noVolunteer", patch.NoVolunteer != nil, func() any { return *patch.NoVolunteer })
	add("deadline", patch.Deadline != nil, func() any { return *patch.Deadline })
	add("takeVolunteer", patch.Organizer != nil, func() any { return organizerDocument(*patch.Organizer) })

	return bson.D{{Key: "$set", Value: set}}
}

// titleFilter matches posts whose title contains text literally, ignoring case.
func titleFilter(text string) bson.D {
	if text == "" {
		return bson.D{}
	}
	return bson.D{{Key: "postTitle", Value: bson.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}}}
}

type PostRepository struct {
	coll *mongo.Collection
}

func (r *PostRepository) find(ctx context.Context, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]*volunteer.Post, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*volunteer.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*volunteer.Post, error) {
	return r.find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "deadline", Value: -1}}))
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*volunteer.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc postDocument
	if err := r.coll.FindOne(ctx, idFilter(oid)).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) ListByOrganizer(ctx context.Context, email string) ([]*volunteer.Post, error) {
	return r.find(ctx, bson.D{{Key: "takeVolunteer.email", Value: email}})
}

func (r *PostRepository) Search(ctx context.Context, filter volunteer.PostFilter) ([]*volunteer.Post, error) {
	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetSkip(filter.Skip).SetLimit(filter.Limit)
	}
	return r.find(ctx, titleFilter(filter.TitleContains), opts)
}

func (r *PostRepository) Count(ctx context.Context, titleContains string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, titleFilter(titleContains))
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

func (r *PostRepository) Create(ctx context.Context, post *volunteer.Post) (string, error) {
	res, err := r.coll.InsertOne(ctx, toPostDocument(post))
	if err != nil {
		return "", fmt.Errorf("failed to insert post: %w", err)
	}
	return hexID(res.InsertedID), nil
}

func (r *PostRepository) Upsert(ctx context.Context, id string, patch *volunteer.PostPatch) (*volunteer.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, volunteer.ErrEmptyUpdate
	}

	res, err := r.coll.UpdateOne(ctx, idFilter(oid), patchUpdate(patch), options.UpdateOne().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert post: %w", err)
	}
	return toUpdateResult(res), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteOne(ctx, idFilter(oid))
	if err != nil {
		return 0, fmt.Errorf("failed to delete post: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *PostRepository) ValidateID(id string) error {
	_, err := parseID(id)
	return err
}

func (r *PostRepository) AdjustVolunteersNeeded(ctx context.Context, id string, delta int) (*volunteer.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "noVolunteer", Value: delta}}}}
	res, err := r.coll.UpdateOne(ctx, idFilter(oid), update)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust volunteer count: %w", err)
	}
	return toUpdateResult(res), nil
}
