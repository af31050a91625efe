package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
)

type fakeUserRepo struct {
	ids map[int64]bool
	err error
}

func (f *fakeUserRepo) Create(ctx context.Context, u accounts.User) (int64, error) {
	return 0, errors.New("not implemented")
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
	if f.err != nil {
		return false, f.err
	}
	return f.ids[id], nil
}

func (f *fakeUserRepo) Search(ctx context.Context, query string, excludeID int64, limit int) ([]accounts.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateEndpoint(ctx context.Context, id int64, ep accounts.Endpoint) error {
	return nil
}

type fakeMessageRepo struct {
	nextID int64
	rows   []messaging.Message
	err    error
}

func (f *fakeMessageRepo) Save(ctx context.Context, m messaging.Message) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	m.ID = f.nextID
	f.rows = append(f.rows, m)
	return m.ID, nil
}

func (f *fakeMessageRepo) DrainOffline(ctx context.Context, userID int64) ([]messaging.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	var claimed []messaging.Message
	for i := range f.rows {
		if f.rows[i].RecipientID == userID && !f.rows[i].Delivered {
			f.rows[i].Delivered = true
			claimed = append(claimed, f.rows[i])
		}
	}
	sort.Slice(claimed, func(i, j int) bool {
		if claimed[i].CreatedAt.Equal(claimed[j].CreatedAt) {
			return claimed[i].ID < claimed[j].ID
		}
		return claimed[i].CreatedAt.Before(claimed[j].CreatedAt)
	})
	return claimed, nil
}

func (f *fakeMessageRepo) History(ctx context.Context, a, b int64, limit, offset int) ([]messaging.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []messaging.Message
	for _, m := range f.rows {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeDeliverer struct {
	ok        bool
	delivered []messaging.Message
}

func (f *fakeDeliverer) Deliver(m messaging.Message) bool {
	if f.ok {
		f.delivered = append(f.delivered, m)
	}
	return f.ok
}

type denyPolicy struct{}

func (denyPolicy) CanMessage(ctx context.Context, senderID, recipientID int64) (bool, error) {
	return false, nil
}

func TestSendMessageLiveDelivery(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	repo := &fakeMessageRepo{}
	live := &fakeDeliverer{ok: true}
	uc := NewSendMessageUseCase(users, nil, live, repo)

	msg, err := uc.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 2, Payload: "hello"})
	require.NoError(t, err)

	assert.True(t, msg.Delivered)
	assert.Equal(t, messaging.TransportLive, msg.Transport)
	assert.Len(t, live.delivered, 1)
	require.Len(t, repo.rows, 1)
	assert.True(t, repo.rows[0].Delivered, "live-delivered message must be stored as delivered")
}

func TestSendMessageFallsBackToOffline(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	repo := &fakeMessageRepo{}
	live := &fakeDeliverer{ok: false}
	uc := NewSendMessageUseCase(users, nil, live, repo)

	msg, err := uc.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 2, Payload: "hello"})
	require.NoError(t, err, "a dead live session must not fail the send")

	assert.False(t, msg.Delivered)
	assert.Equal(t, messaging.TransportOffline, msg.Transport)
	require.Len(t, repo.rows, 1)
	assert.False(t, repo.rows[0].Delivered)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true}}
	uc := NewSendMessageUseCase(users, nil, &fakeDeliverer{ok: true}, &fakeMessageRepo{})

	_, err := uc.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 99, Payload: "hello"})
	assert.ErrorIs(t, err, messaging.ErrRecipientNotFound)
}

func TestSendMessageEmptyPayload(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	uc := NewSendMessageUseCase(users, nil, &fakeDeliverer{ok: true}, &fakeMessageRepo{})

	_, err := uc.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 2, Payload: "   "})
	assert.ErrorIs(t, err, messaging.ErrEmptyPayload)
}

func TestSendMessagePolicyDenied(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	repo := &fakeMessageRepo{}
	uc := NewSendMessageUseCase(users, denyPolicy{}, &fakeDeliverer{ok: true}, repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 2, Payload: "hello"})
	assert.ErrorIs(t, err, messaging.ErrNotAuthorized)
	assert.Empty(t, repo.rows, "a denied send must not be stored")
}

func TestSendMessagePersistenceFailure(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	repo := &fakeMessageRepo{err: errors.New("connection refused")}
	uc := NewSendMessageUseCase(users, nil, &fakeDeliverer{}, repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 2, Payload: "hello"})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestFetchOfflineDrainsOnce(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	repo := &fakeMessageRepo{}
	send := NewSendMessageUseCase(users, nil, &fakeDeliverer{ok: false}, repo)
	fetch := NewFetchOfflineUseCase(repo)

	for _, payload := range []string{"first", "second", "third"} {
		_, err := send.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 2, Payload: payload})
		require.NoError(t, err)
	}

	msgs, err := fetch.Execute(context.Background(), FetchOfflineInput{UserID: 2})
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Payload, "drain must preserve send order")
	assert.Equal(t, "third", msgs[2].Payload)

	again, err := fetch.Execute(context.Background(), FetchOfflineInput{UserID: 2})
	require.NoError(t, err)
	assert.Empty(t, again, "a second drain with no new sends must be empty")
}

func TestFetchOfflineIgnoresOtherRecipients(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true, 3: true}}
	repo := &fakeMessageRepo{}
	send := NewSendMessageUseCase(users, nil, &fakeDeliverer{ok: false}, repo)
	fetch := NewFetchOfflineUseCase(repo)

	_, err := send.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 2, Payload: "for two"})
	require.NoError(t, err)
	_, err = send.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 3, Payload: "for three"})
	require.NoError(t, err)

	msgs, err := fetch.Execute(context.Background(), FetchOfflineInput{UserID: 2})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "for two", msgs[0].Payload)
}

func TestSavePeerMessage(t *testing.T) {
	repo := &fakeMessageRepo{}
	uc := NewSavePeerMessageUseCase(repo)

	msg, err := uc.Execute(context.Background(), SavePeerMessageInput{SenderID: 1, RecipientID: 2, Payload: "direct"})
	require.NoError(t, err)

	assert.Equal(t, messaging.TransportPeer, msg.Transport)
	assert.True(t, msg.Delivered)

	// A peer-logged message must never show up in an offline drain.
	drained, err := NewFetchOfflineUseCase(repo).Execute(context.Background(), FetchOfflineInput{UserID: 2})
	require.NoError(t, err)
	assert.Empty(t, drained)
}

func TestGetHistoryCoversBothDirections(t *testing.T) {
	users := &fakeUserRepo{ids: map[int64]bool{1: true, 2: true}}
	repo := &fakeMessageRepo{}
	send := NewSendMessageUseCase(users, nil, &fakeDeliverer{ok: true}, repo)

	_, err := send.Execute(context.Background(), SendMessageInput{SenderID: 1, RecipientID: 2, Payload: "ping"})
	require.NoError(t, err)
	_, err = send.Execute(context.Background(), SendMessageInput{SenderID: 2, RecipientID: 1, Payload: "pong"})
	require.NoError(t, err)

	msgs, err := NewGetHistoryUseCase(repo).Execute(context.Background(), GetHistoryInput{UserID: 1, PeerID: 2})
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}
