package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/infrastructure/realtime"
	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]accounts.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]accounts.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u accounts.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return 0, accounts.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return 0, accounts.ErrEmailTaken
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*accounts.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, accounts.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*accounts.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, accounts.ErrUserNotFound
}

func (f *fakeUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) Search(ctx context.Context, query string, excludeID int64, limit int) ([]accounts.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateEndpoint(ctx context.Context, id int64, ep accounts.Endpoint) error {
	u, ok := f.users[id]
	if !ok {
		return accounts.ErrUserNotFound
	}
	u.Endpoint = &ep
	f.users[id] = u
	return nil
}

type fakePresenceStore struct {
	online map[int64]bool
}

func (f *fakePresenceStore) SetOnline(ctx context.Context, userID int64) error {
	if f.online == nil {
		f.online = make(map[int64]bool)
	}
	f.online[userID] = true
	return nil
}

func (f *fakePresenceStore) SetOffline(ctx context.Context, userID int64) error {
	delete(f.online, userID)
	return nil
}

func (f *fakePresenceStore) SweepStale(ctx context.Context, cutoff time.Time) ([]int64, error) {
	return nil, nil
}

func newTestTracker(store *fakePresenceStore) *presence.Tracker {
	return presence.NewTracker(realtime.NewRegistry(), store)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo)

	user, err := uc.Execute(context.Background(), RegisterUserInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "correct horse",
		PublicKey: "pk-material",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	assert.Equal(t, "pk-material", user.PublicKey)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	uc := NewRegisterUserUseCase(newFakeUserRepo())

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, accounts.ErrInvalidInput)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo)

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), RegisterUserInput{
		Username: "alice", Email: "other@example.com", Password: "correct horse",
	})
	assert.ErrorIs(t, err, accounts.ErrUsernameTaken)
}

func TestLoginIssuesTokenAndMarksOnline(t *testing.T) {
	repo := newFakeUserRepo()
	store := &fakePresenceStore{}
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)

	registered, err := NewRegisterUserUseCase(repo).Execute(context.Background(), RegisterUserInput{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	out, err := NewLoginUseCase(repo, issuer, newTestTracker(store)).Execute(context.Background(), LoginInput{
		Username: "alice", Password: "correct horse",
	})
	require.NoError(t, err)

	userID, err := issuer.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.True(t, store.online[registered.ID])
}

func TestLoginWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	repo := newFakeUserRepo()
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	uc := NewLoginUseCase(repo, issuer, newTestTracker(&fakePresenceStore{}))

	_, err := NewRegisterUserUseCase(repo).Execute(context.Background(), RegisterUserInput{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, wrongPass := uc.Execute(context.Background(), LoginInput{Username: "alice", Password: "wrong"})
	_, unknown := uc.Execute(context.Background(), LoginInput{Username: "nobody", Password: "wrong"})

	assert.ErrorIs(t, wrongPass, accounts.ErrBadCredentials)
	assert.ErrorIs(t, unknown, accounts.ErrBadCredentials)
	assert.Equal(t, wrongPass.Error(), unknown.Error(), "login failures must be indistinguishable")
}

func TestUpdateEndpointValidates(t *testing.T) {
	repo := newFakeUserRepo()
	registered, err := NewRegisterUserUseCase(repo).Execute(context.Background(), RegisterUserInput{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	uc := NewUpdateEndpointUseCase(repo)

	err = uc.Execute(context.Background(), UpdateEndpointInput{UserID: registered.ID, IP: "not-an-ip", Port: 9000})
	assert.ErrorIs(t, err, accounts.ErrInvalidInput)

	err = uc.Execute(context.Background(), UpdateEndpointInput{UserID: registered.ID, IP: "10.0.0.5", Port: 9000})
	require.NoError(t, err)

	user, err := repo.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	require.NotNil(t, user.Endpoint)
	assert.Equal(t, "10.0.0.5", user.Endpoint.IP)
}
