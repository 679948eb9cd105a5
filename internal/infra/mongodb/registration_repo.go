package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/astro-web3/volunteer-management/internal/domain/volunteer"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type registrationDocument struct {
	ID          bson.ObjectID     `bson:"_id,omitempty"`
	PostID      string            `bson:"postId"`
	Thumbnail   string            `bson:"thumbnail"`
	PostTitle   string            `bson:"postTitle"`
	Description string            `bson:"description"`
	Category    string            `bson:"category"`
	Location    string            `bson:"location"`
	NoVolunteer int               `bson:"noVolunteer"`
	Deadline    time.Time         `bson:"deadline"`
	Organizer   organizerDocument `bson:"takeVolunteer"`
	Name        string            `bson:"name"`
	Email       string            `bson:"email"`
	Suggestion  string            `bson:"suggestion"`
	Status      string            `bson:"status"`
}

func toRegistrationDocument(r *volunteer.Registration) registrationDocument {
	return registrationDocument{
		PostID:      r.PostID,
		Thumbnail:   r.Thumbnail,
		PostTitle:   r.PostTitle,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		NoVolunteer: r.NoVolunteer,
		Deadline:    r.Deadline,
		Organizer:   organizerDocument(r.Organizer),
		Name:        r.Name,
		Email:       r.Email,
		Suggestion:  r.Suggestion,
		Status:      r.Status,
	}
}

func (d registrationDocument) toDomain() *volunteer.Registration {
	return &volunteer.Registration{
		ID:          d.ID.Hex(),
		PostID:      d.PostID,
		Thumbnail:   d.Thumbnail,
		PostTitle:   d.PostTitle,
		Description: d.Description,
		Category:    d.Category,
		Location:    d.Location,
		NoVolunteer: d.NoVolunteer,
		Deadline:    d.Deadline,
		Organizer:   volunteer.Organizer(d.Organizer),
		Name:        d.Name,
		Email:       d.Email,
		Suggestion:  d.Suggestion,
		Status:      d.Status,
	}
}

type RegistrationRepository struct {
	coll *mongo.Collection
}

func (r *RegistrationRepository) find(ctx context.Context, filter bson.D) ([]*volunteer.Registration, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find registrations: %w", err)
	}

	var docs []registrationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode registrations: %w", err)
	}

	regs := make([]*volunteer.Registration, 0, len(docs))
	for _, d := range docs {
		regs = append(regs, d.toDomain())
	}
	return regs, nil
}

func (r *RegistrationRepository) List(ctx context.Context) ([]*volunteer.Registration, error) {
	return r.find(ctx, bson.D{})
}

// ListByOrganizer returns registrations on posts published by email.
func (r *RegistrationRepository) ListByOrganizer(ctx context.Context, email string) ([]*volunteer.Registration, error) {
	return r.find(ctx, bson.D{{Key: "takeVolunteer.email", Value: email}})
}

// ListByVolunteer returns registrations submitted by email.
func (r *RegistrationRepository) ListByVolunteer(ctx context.Context, email string) ([]*volunteer.Registration, error) {
	return r.find(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *volunteer.Registration) (string, error) {
	res, err := r.coll.InsertOne(ctx, toRegistrationDocument(reg))
	if err != nil {
		return "", fmt.Errorf("failed to insert registration: %w", err)
	}
	return hexID(res.InsertedID), nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteOne(ctx, idFilter(oid))
	if err != nil {
		return 0, fmt.Errorf("failed to delete registration: %w", err)
	}
	return res.DeletedCount, nil
}
