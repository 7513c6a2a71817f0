package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// ownedCore holds the list/get/update/delete flow shared by every owned
// entity service.
type ownedCore[T any, P any, F any] struct {
	repo   ports.OwnedRepository[T, P, F]
	kind   string
	owner  func(*T) primitive.ObjectID
	// readable reports whether a non-owner may read the record. Nil means
	// owner-only.
	readable func(*T) bool
	logger   zerolog.Logger
	now      func() time.Time
}

func utcNow() time.Time { return time.Now().UTC() }

// parseID maps a malformed id to ErrNotFound: no record can have it.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

func parseOwner(owner string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(owner)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidToken
	}
	return oid, nil
}

// list runs the count and the page fetch concurrently.
func (c *ownedCore[T, P, F]) list(ctx context.Context, owner string, filter F, opts ports.ListOptions) (*ports.ListResult[T], error) {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return nil, err
	}

	var (
		items     []*T
		projected []map[string]any
		total     int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := c.repo.Count(gctx, ownerID, filter)
		total = n
		return err
	})
	g.Go(func() error {
		var err error
		if opts.Projects() {
			projected, err = c.repo.FindProjected(gctx, ownerID, filter, opts)
			return err
		}
		items, err = c.repo.Find(gctx, ownerID, filter, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.kind, err)
	}

	res := &ports.ListResult[T]{
		Total: total,
		Page:  opts.Page,
		Limit: opts.Limit,
		Pages: ports.TotalPages(total, opts.Limit),
	}
	if opts.Projects() {
		if projected == nil {
			projected = []map[string]any{}
		}
		res.Projected = projected
	} else {
		if items == nil {
			items = []*T{}
		}
		res.Items = items
	}
	return res, nil
}

func (c *ownedCore[T, P, F]) get(ctx context.Context, requester, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item, err := c.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if c.owner(item).Hex() == requester {
		return item, nil
	}
	if c.readable != nil && c.readable(item) {
		return item, nil
	}
	return nil, domain.ErrForbidden
}

// getOwned fetches a record and requires requester to own it, regardless of
// visibility.
func (c *ownedCore[T, P, F]) getOwned(ctx context.Context, owner, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item, err := c.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if c.owner(item).Hex() != owner {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func (c *ownedCore[T, P, F]) update(ctx context.Context, owner, id string, patch P) (*T, error) {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := c.repo.UpdateOwned(ctx, oid, ownerID, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, c.denied(ctx, oid)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.kind, err)
	}

	c.logger.Info().Str("user_id", owner).Str(c.kind+"_id", id).Msg(c.kind + " updated")
	return item, nil
}

func (c *ownedCore[T, P, F]) delete(ctx context.Context, owner, id string) error {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	err = c.repo.DeleteOwned(ctx, oid, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return c.denied(ctx, oid)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.kind, err)
	}

	c.logger.Info().Str("user_id", owner).Str(c.kind+"_id", id).Msg(c.kind + " deleted")
	return nil
}

// denied decides between 404 and 403 after a conditional mutation matched
// nothing. The probe is read-only.
func (c *ownedCore[T, P, F]) denied(ctx context.Context, id primitive.ObjectID) error {
	exists, err := c.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("probe %s: %w", c.kind, err)
	}
	if exists {
		return domain.ErrForbidden
	}
	return domain.ErrNotFound
}
