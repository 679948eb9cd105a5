package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astro-web3/volunteer-management/internal/domain/volunteer"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	postsCollection         = "volunteers"
	registrationsCollection = "beVolunteer"
)

// Store owns the process-wide connection pool; Close releases it on shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the pool with the Stable API v1 in strict mode and pings the deployment.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI)
	if timeout > 0 {
		opts.SetTimeout(timeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (s *Store) Posts() *PostRepository {
	return &PostRepository{coll: s.db.Collection(postsCollection)}
}

func (s *Store) Registrations() *RegistrationRepository {
	return &RegistrationRepository{coll: s.db.Collection(registrationsCollection)}
}

func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongo: %w", err)
	}
	return nil
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", volunteer.ErrInvalidID, id)
	}
	return oid, nil
}

func idFilter(oid bson.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: oid}}
}

func hexID(v any) string {
	if oid, ok := v.(bson.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

func toUpdateResult(res *mongo.UpdateResult) *volunteer.UpdateResult {
	return &volunteer.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
