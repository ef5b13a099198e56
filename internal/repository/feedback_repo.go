package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"feedback-desk/internal/logger"
	"feedback-desk/internal/models"
	"feedback-desk/internal/storage"

	"github.com/google/uuid"
)

// FeedbackRepo is the feedback store. Every call reloads the whole collection
// from storage; mutations write the whole collection back.
//
// Calls are serialized with a mutex, which only protects callers sharing this
// value. Two processes writing the same key can still lose updates.
type FeedbackRepo struct {
	mu    sync.Mutex
	store storage.Storage
	now   func() time.Time
	newID func() string
}

type Option func(*FeedbackRepo)

// WithClock overrides the time source used for createdAt and seed timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *FeedbackRepo) { r.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *FeedbackRepo) { r.newID = newID }
}

func NewFeedbackRepo(store storage.Storage, opts ...Option) *FeedbackRepo {
	r := &FeedbackRepo{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// load returns the stored collection, writing the seed data first if the key
// has never been written.
func (r *FeedbackRepo) load(ctx context.Context) ([]models.Feedback, error) {
	raw, ok, err := r.store.Read(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read feedback collection")
		return nil, fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
	}

	if !ok {
		seed := SeedData(r.now())
		if err := r.persist(ctx, seed); err != nil {
			return nil, err
		}
		logger.Info().Int("records", len(seed)).Msg("seeded feedback collection")
		return seed, nil
	}

	var all []models.Feedback
	if err := json.Unmarshal(raw, &all); err != nil {
		logger.Error().Err(err).Msg("stored feedback collection is corrupt")
		return nil, fmt.Errorf("%w: decode collection: %w", models.ErrStorageUnavailable, err)
	}
	return all, nil
}

func (r *FeedbackRepo) persist(ctx context.Context, all []models.Feedback) error {
	if all == nil {
		all = []models.Feedback{}
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %w", models.ErrStorageUnavailable, err)
	}
	if err := r.store.Write(ctx, raw); err != nil {
		logger.Error().Err(err).Msg("failed to write feedback collection")
		return fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
	}
	return nil
}

// sorted loads the collection ordered newest first. Equal timestamps keep
// their stored order.
func (r *FeedbackRepo) sorted(ctx context.Context) ([]models.Feedback, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(all, func(a, b models.Feedback) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return all, nil
}

// ListAll returns every record, most recent first.
func (r *FeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(ctx)
}

// Create stores a new record with a fresh id, status New and the current time.
// Input is not validated here.
func (r *FeedbackRepo) Create(ctx context.Context, in models.CreateInput) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	entry := models.Feedback{
		ID:           r.newID(),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Rating:       in.Rating,
		Category:     in.Category,
		Comments:     in.Comments,
		Status:       models.StatusNew,
		CreatedAt:    r.now().UTC(),
	}
	all = append(all, entry)

	if err := r.persist(ctx, all); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes the record with id. A missing id is not an error; the
// returned bool reports whether anything was removed. The collection is
// written back either way.
func (r *FeedbackRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	before := len(all)
	all = slices.DeleteFunc(all, func(f models.Feedback) bool { return f.ID == id })

	if err := r.persist(ctx, all); err != nil {
		return false, err
	}
	return len(all) < before, nil
}

// UpdateStatus sets the status of the record with id. A missing id is a
// no-op and nothing is written.
func (r *FeedbackRepo) UpdateStatus(ctx context.Context, id string, status models.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	idx := slices.IndexFunc(all, func(f models.Feedback) bool { return f.ID == id })
	if idx == -1 {
		return false, nil
	}
	all[idx].Status = status

	if err := r.persist(ctx, all); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID returns nil, nil when no record has id.
func (r *FeedbackRepo) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			f := all[i]
			return &f, nil
		}
	}
	return nil, nil
}

// Filter returns the newest-first records matching every supplied criterion.
// Search is a case-insensitive substring match on name, email or comments.
func (r *FeedbackRepo) Filter(ctx context.Context, criteria models.FilterCriteria) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.sorted(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(criteria.Search)
	results := make([]models.Feedback, 0, len(all))
	for _, f := range all {
		if criteria.Rating != 0 && f.Rating != criteria.Rating {
			continue
		}
		if criteria.Category != "" && f.Category != criteria.Category {
			continue
		}
		if q != "" && !matchesSearch(f, q) {
			continue
		}
		results = append(results, f)
	}
	return results, nil
}

func matchesSearch(f models.Feedback, q string) bool {
	return strings.Contains(strings.ToLower(f.CustomerName), q) ||
		strings.Contains(strings.ToLower(f.Email), q) ||
		strings.Contains(strings.ToLower(f.Comments), q)
}

// GetStats aggregates the current collection. Nothing is cached.
func (r *FeedbackRepo) GetStats(ctx context.Context) (*models.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.sorted(ctx)
	if err != nil {
		return nil, err
	}
	return computeStats(all), nil
}
