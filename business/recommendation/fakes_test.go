//go:build !integration

package recommendation

import (
	"comicSnap/domain"
	"context"
	"sort"
	"sync"
	"time"
)

type fakeStore struct {
	mu sync.Mutex

	ratings    map[uint]map[string]int
	prefs      map[uint]map[string]float64
	publishers map[uint][]domain.PublisherAffinity

	includeSelf bool

	prefsErr     error
	consumedErr  error
	publisherErr error
	peersErr     error
	ratingErrs   map[uint]error
	highErrs     map[uint]error

	ratingCalls []uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ratings:    map[uint]map[string]int{},
		prefs:      map[uint]map[string]float64{},
		publishers: map[uint][]domain.PublisherAffinity{},
		ratingErrs: map[uint]error{},
		highErrs:   map[uint]error{},
	}
}

func (f *fakeStore) rate(user uint, comic string, rating int) {
	if f.ratings[user] == nil {
		f.ratings[user] = map[string]int{}
	}
	f.ratings[user][comic] = rating
}

func (f *fakeStore) GetPreferences(_ context.Context, userID uint) (map[string]float64, error) {
	if f.prefsErr != nil {
		return nil, f.prefsErr
	}
	out := map[string]float64{}
	for k, v := range f.prefs[userID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) GetTopPublishers(_ context.Context, userID uint, n int) ([]domain.PublisherAffinity, error) {
	if f.publisherErr != nil {
		return nil, f.publisherErr
	}
	pubs := f.publishers[userID]
	if len(pubs) > n {
		pubs = pubs[:n]
	}
	return pubs, nil
}

func (f *fakeStore) GetConsumedItems(_ context.Context, userID uint) (map[string]struct{}, error) {
	if f.consumedErr != nil {
		return nil, f.consumedErr
	}
	out := map[string]struct{}{}
	for id := range f.ratings[userID] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (f *fakeStore) GetRatings(_ context.Context, userID uint) (map[string]int, error) {
	f.mu.Lock()
	f.ratingCalls = append(f.ratingCalls, userID)
	f.mu.Unlock()

	if err := f.ratingErrs[userID]; err != nil {
		return nil, err
	}
	out := map[string]int{}
	for k, v := range f.ratings[userID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) GetOtherUserIDs(_ context.Context, excluding uint) ([]uint, error) {
	if f.peersErr != nil {
		return nil, f.peersErr
	}
	var ids []uint
	for id := range f.ratings {
		if id == excluding && !f.includeSelf {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeStore) GetHighRatings(_ context.Context, userID uint, threshold int) ([]domain.RatedItem, error) {
	if err := f.highErrs[userID]; err != nil {
		return nil, err
	}
	var out []domain.RatedItem
	for id, r := range f.ratings[userID] {
		if r >= threshold {
			out = append(out, domain.RatedItem{ComicID: id, Rating: r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ComicID < out[j].ComicID })
	return out, nil
}

type fakeCatalog struct {
	mu sync.Mutex

	items []domain.CandidateItem
	err   error
	block bool
	panic bool

	queries []string
	limits  []int
}

func (f *fakeCatalog) Search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	f.mu.Unlock()

	if f.panic {
		panic("catalog exploded")
	}
	if f.block {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeCatalog) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeCatalog) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func candidate(id, title, publisher string) domain.CandidateItem {
	return domain.CandidateItem{
		ID:          id,
		Title:       title,
		Publisher:   publisher,
		Year:        domain.UnknownYear,
		CoverURL:    domain.DefaultCoverURL,
		Description: domain.UnknownDescription,
	}
}
