package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "github.com/1mmey/SecurityChat/internal/infrastructure/cache/port"
	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
)

type edge struct {
	status contacts.Status
}

// fakeContactRepo mirrors the SQL adapter's semantics on an in-memory edge
// map keyed by (owner, target).
type fakeContactRepo struct {
	edges     map[[2]int64]edge
	online    map[int64]bool
	listCalls int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{edges: make(map[[2]int64]edge), online: make(map[int64]bool)}
}

func (f *fakeContactRepo) CreatePending(ctx context.Context, ownerID, targetID int64) (int64, error) {
	if _, ok := f.edges[[2]int64{ownerID, targetID}]; ok {
		return 0, contacts.ErrEdgeExists
	}
	if _, ok := f.edges[[2]int64{targetID, ownerID}]; ok {
		return 0, contacts.ErrEdgeExists
	}
	f.edges[[2]int64{ownerID, targetID}] = edge{status: contacts.StatusPending}
	return int64(len(f.edges)), nil
}

func (f *fakeContactRepo) Accept(ctx context.Context, requesterID, accepterID int64) error {
	e, ok := f.edges[[2]int64{requesterID, accepterID}]
	if !ok || e.status != contacts.StatusPending {
		return contacts.ErrNoPendingRequest
	}
	f.edges[[2]int64{requesterID, accepterID}] = edge{status: contacts.StatusAccepted}
	f.edges[[2]int64{accepterID, requesterID}] = edge{status: contacts.StatusAccepted}
	return nil
}

func (f *fakeContactRepo) RemovePair(ctx context.Context, a, b int64) (bool, error) {
	_, okAB := f.edges[[2]int64{a, b}]
	_, okBA := f.edges[[2]int64{b, a}]
	delete(f.edges, [2]int64{a, b})
	delete(f.edges, [2]int64{b, a})
	return okAB || okBA, nil
}

func (f *fakeContactRepo) AreContacts(ctx context.Context, a, b int64) (bool, error) {
	e, ok := f.edges[[2]int64{a, b}]
	return ok && e.status == contacts.StatusAccepted, nil
}

func (f *fakeContactRepo) ListAccepted(ctx context.Context, ownerID int64) ([]contacts.View, error) {
	f.listCalls++
	var views []contacts.View
	for key, e := range f.edges {
		if key[0] == ownerID && e.status == contacts.StatusAccepted {
			views = append(views, contacts.View{
				UserID:   key[1],
				IsOnline: f.online[key[1]],
				Since:    time.Unix(1700000000, 0).UTC(),
			})
		}
	}
	return views, nil
}

func (f *fakeContactRepo) ListPendingFor(ctx context.Context, userID int64) ([]contacts.View, error) {
	var views []contacts.View
	for key, e := range f.edges {
		if key[1] == userID && e.status == contacts.StatusPending {
			views = append(views, contacts.View{UserID: key[0]})
		}
	}
	return views, nil
}

type fakeUserRepo struct {
	ids map[int64]bool
}

func (f *fakeUserRepo) Create(ctx context.Context, u accounts.User) (int64, error) {
	return 0, accounts.ErrInvalidInput
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*accounts.User, error) {
	if !f.ids[id] {
		return nil, accounts.ErrUserNotFound
	}
	return &accounts.User{ID: id}, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*accounts.User, error) {
	return nil, accounts.ErrUserNotFound
}

func (f *fakeUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return f.ids[id], nil
}

func (f *fakeUserRepo) Search(ctx context.Context, query string, excludeID int64, limit int) ([]accounts.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateEndpoint(ctx context.Context, id int64, ep accounts.Endpoint) error {
	return nil
}

// fakeCache is a TTL-less in-memory port.Cache.
type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }
func (f *fakeCache) Close() error                   { return nil }

func TestRequestContactSelf(t *testing.T) {
	uc := NewRequestContactUseCase(newFakeContactRepo(), &fakeUserRepo{ids: map[int64]bool{1: true}})
	err := uc.Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 1})
	assert.ErrorIs(t, err, contacts.ErrSelfContact)
}

func TestRequestContactUnknownTarget(t *testing.T) {
	uc := NewRequestContactUseCase(newFakeContactRepo(), &fakeUserRepo{ids: map[int64]bool{1: true}})
	err := uc.Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 42})
	assert.ErrorIs(t, err, accounts.ErrUserNotFound)
}

func TestRequestContactDuplicateEitherDirection(t *testing.T) {
	repo := newFakeContactRepo()
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	uc := NewRequestContactUseCase(repo, users)

	require.NoError(t, uc.Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 2}))

	err := uc.Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 2})
	assert.ErrorIs(t, err, contacts.ErrEdgeExists)

	// The reverse request is also a duplicate, not a second pending edge.
	err = uc.Execute(context.Background(), RequestContactInput{OwnerID: 2, TargetID: 1})
	assert.ErrorIs(t, err, contacts.ErrEdgeExists)
}

func TestAcceptContactWithoutPending(t *testing.T) {
	uc := NewAcceptContactUseCase(newFakeContactRepo(), nil)
	err := uc.Execute(context.Background(), AcceptContactInput{RequesterID: 1, AccepterID: 2})
	assert.ErrorIs(t, err, contacts.ErrNoPendingRequest)
}

func TestAcceptContactCreatesBothEdges(t *testing.T) {
	repo := newFakeContactRepo()
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	require.NoError(t, NewRequestContactUseCase(repo, users).Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 2}))

	require.NoError(t, NewAcceptContactUseCase(repo, nil).Execute(context.Background(), AcceptContactInput{RequesterID: 1, AccepterID: 2}))

	ab, err := repo.AreContacts(context.Background(), 1, 2)
	require.NoError(t, err)
	ba, err := repo.AreContacts(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, ab, "requester must see accepter as contact")
	assert.True(t, ba, "accepter must see requester as contact")
}

func TestRemoveContactSymmetric(t *testing.T) {
	repo := newFakeContactRepo()
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	require.NoError(t, NewRequestContactUseCase(repo, users).Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 2}))
	require.NoError(t, NewAcceptContactUseCase(repo, nil).Execute(context.Background(), AcceptContactInput{RequesterID: 1, AccepterID: 2}))

	require.NoError(t, NewRemoveContactUseCase(repo, nil).Execute(context.Background(), RemoveContactInput{OwnerID: 2, TargetID: 1}))

	ab, _ := repo.AreContacts(context.Background(), 1, 2)
	ba, _ := repo.AreContacts(context.Background(), 2, 1)
	assert.False(t, ab)
	assert.False(t, ba)
}

func TestRemoveContactNotContacts(t *testing.T) {
	uc := NewRemoveContactUseCase(newFakeContactRepo(), nil)
	err := uc.Execute(context.Background(), RemoveContactInput{OwnerID: 1, TargetID: 2})
	assert.ErrorIs(t, err, contacts.ErrNotContacts)
}

func TestListContactsServesFromCache(t *testing.T) {
	repo := newFakeContactRepo()
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	require.NoError(t, NewRequestContactUseCase(repo, users).Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 2}))
	require.NoError(t, NewAcceptContactUseCase(repo, nil).Execute(context.Background(), AcceptContactInput{RequesterID: 1, AccepterID: 2}))

	uc := NewListContactsUseCase(repo, newFakeCache())

	first, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls, "second read must come from the cache")
}

func TestAcceptInvalidatesCachedLists(t *testing.T) {
	repo := newFakeContactRepo()
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true, 3: true}}
	request := NewRequestContactUseCase(repo, users)
	list := NewListContactsUseCase(repo, newFakeCache())
	accept := NewAcceptContactUseCase(repo, list)

	require.NoError(t, request.Execute(context.Background(), RequestContactInput{OwnerID: 2, TargetID: 1}))

	// Warm the cache while the request is still pending.
	empty, err := list.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, accept.Execute(context.Background(), AcceptContactInput{RequesterID: 2, AccepterID: 1}))

	after, err := list.Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, after, 1, "accept must invalidate the stale cached list")
	assert.Equal(t, int64(2), after[0].UserID)
}

func TestListOnlineContactsFilters(t *testing.T) {
	repo := newFakeContactRepo()
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true, 3: true}}
	request := NewRequestContactUseCase(repo, users)
	accept := NewAcceptContactUseCase(repo, nil)

	require.NoError(t, request.Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 2}))
	require.NoError(t, accept.Execute(context.Background(), AcceptContactInput{RequesterID: 1, AccepterID: 2}))
	require.NoError(t, request.Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 3}))
	require.NoError(t, accept.Execute(context.Background(), AcceptContactInput{RequesterID: 1, AccepterID: 3}))
	repo.online[2] = true

	online, err := NewListOnlineContactsUseCase(NewListContactsUseCase(repo, nil)).Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, int64(2), online[0].UserID)
}

func TestListPendingShowsIncomingOnly(t *testing.T) {
	repo := newFakeContactRepo()
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true, 3: true}}
	request := NewRequestContactUseCase(repo, users)

	require.NoError(t, request.Execute(context.Background(), RequestContactInput{OwnerID: 2, TargetID: 1}))
	require.NoError(t, request.Execute(context.Background(), RequestContactInput{OwnerID: 1, TargetID: 3}))

	pending, err := NewListPendingUseCase(repo).Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, pending, 1, "outgoing requests are not pending for the sender")
	assert.Equal(t, int64(2), pending[0].UserID)
}

func TestGetContactEndpointRequiresFriendship(t *testing.T) {
	repo := newFakeContactRepo()
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	uc := NewGetContactEndpointUseCase(repo, users)

	_, err := uc.Execute(context.Background(), GetContactEndpointInput{OwnerID: 1, ContactID: 2})
	assert.ErrorIs(t, err, contacts.ErrNotContacts)
}
