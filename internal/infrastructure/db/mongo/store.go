package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// ownedStore implements ports.OwnedRepository over a collection whose
// documents carry the owner id in the "user" field.
type ownedStore[T any, P any, F any] struct {
	col    *mongo.Collection
	setID  func(*T, primitive.ObjectID)
	filter func(F) bson.M
	// update builds the update document for a patch. Defaults to setUpdate.
	update func(P, time.Time) (bson.M, error)
	// dupErr is returned instead of the driver error on a unique index violation.
	dupErr error
	now    func() time.Time
}

func utcNow() time.Time { return time.Now().UTC() }

func (s *ownedStore[T, P, F]) Create(ctx context.Context, item *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, item)
	if err != nil {
		if s.dupErr != nil && mongo.IsDuplicateKeyError(err) {
			return s.dupErr
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.setID(item, oid)
	}
	return nil
}

func (s *ownedStore[T, P, F]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item T
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *ownedStore[T, P, F]) ownerFilter(owner primitive.ObjectID, filter F) bson.M {
	q := bson.M{}
	if s.filter != nil {
		q = s.filter(filter)
	}
	q["user"] = owner
	return q
}

func findOptions(opts ports.ListOptions) *options.FindOptions {
	findOpts := options.Find().SetSort(sortDoc(opts.Sort))
	if opts.Skip > 0 {
		findOpts.SetSkip(int64(opts.Skip))
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if proj := projection(opts.Fields); proj != nil {
		findOpts.SetProjection(proj)
	}
	return findOpts
}

// Find decodes full records. A field selection in opts is ignored here since
// decoding a partial document into T would report zero values for every
// field left out; use FindProjected for that.
func (s *ownedStore[T, P, F]) Find(ctx context.Context, owner primitive.ObjectID, filter F, opts ports.ListOptions) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts.Fields = nil
	cur, err := s.col.Find(ctx, s.ownerFilter(owner, filter), findOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]*T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ownedStore[T, P, F]) FindProjected(ctx context.Context, owner primitive.ObjectID, filter F, opts ports.ListOptions) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.col.Find(ctx, s.ownerFilter(owner, filter), findOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]map[string]any, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *ownedStore[T, P, F]) Count(ctx context.Context, owner primitive.ObjectID, filter F) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return s.col.CountDocuments(ctx, s.ownerFilter(owner, filter))
}

// UpdateOwned matches on id and owner in the same call, so a record deleted
// or owned by someone else is never written.
func (s *ownedStore[T, P, F]) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, patch P) (*T, error) {
	build := s.update
	if build == nil {
		build = func(p P, now time.Time) (bson.M, error) { return setUpdate(p, now) }
	}
	update, err := build(patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item T
	err = s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user": owner},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if s.dupErr != nil && mongo.IsDuplicateKeyError(err) {
			return nil, s.dupErr
		}
		return nil, err
	}
	return &item, nil
}

func (s *ownedStore[T, P, F]) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ownedStore[T, P, F]) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ensureOwnerIndexes creates the {user, createdAt} index every owned
// collection is listed by, plus any extra indexes.
func (s *ownedStore[T, P, F]) ensureOwnerIndexes(ctx context.Context, extra ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := append([]mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
	}, extra...)

	_, err := s.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// setUpdate turns a patch into {$set: {...non-nil fields, updatedAt}}. Nil
// pointer fields are dropped by their omitempty tags.
func setUpdate(patch any, now time.Time) (bson.M, error) {
	set, err := patchFields(patch)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = now
	return bson.M{"$set": set}, nil
}

func patchFields(patch any) (bson.M, error) {
	set := bson.M{}
	if patch == nil {
		return set, nil
	}
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return set, nil
}

func sortDoc(fields []ports.SortField) bson.D {
	if len(fields) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	doc := make(bson.D, 0, len(fields))
	for _, f := range fields {
		dir := 1
		if f.Desc {
			dir = -1
		}
		doc = append(doc, bson.E{Key: f.Field, Value: dir})
	}
	return doc
}

// projection maps field names to an inclusion projection. A leading "-"
// excludes a field; exclusions are ignored when any inclusion is present
// since the store rejects mixed projections.
func projection(fields []string) bson.M {
	if len(fields) == 0 {
		return nil
	}
	include, exclude := bson.M{}, bson.M{}
	for _, f := range fields {
		if name, ok := strings.CutPrefix(f, "-"); ok {
			if name != "" {
				exclude[name] = 0
			}
			continue
		}
		include[f] = 1
	}
	if len(include) > 0 {
		return include
	}
	if len(exclude) > 0 {
		return exclude
	}
	return nil
}
