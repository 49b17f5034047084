package conversation

import (
	"context"
	"testing"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessages struct {
	calls  int
	latest map[string]string
	infos  map[string]core.ConversationInfo
}

func (f *fakeMessages) AppendMessage(context.Context, core.LoggedMessage) error { return nil }

func (f *fakeMessages) ListMessages(_ context.Context, convID string, page, size int) (core.MessagePage, error) {
	f.calls++
	return core.MessagePage{Page: page, Size: size, Messages: []core.LoggedMessage{{ConversationID: convID}}}, nil
}

func (f *fakeMessages) LatestConversation(_ context.Context, userID string) (string, error) {
	if id, ok := f.latest[userID]; ok {
		return id, nil
	}
	return "", core.ErrNotFound
}

func (f *fakeMessages) ConversationInfo(_ context.Context, convID string) (core.ConversationInfo, error) {
	if info, ok := f.infos[convID]; ok {
		return info, nil
	}
	return core.ConversationInfo{}, core.ErrNotFound
}

func TestService_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		convID  string
		page    int
		size    int
		wantErr error
	}{
		{name: "defaults", convID: "c1", page: 1, size: DefaultPageSize},
		{name: "max size", convID: "c1", page: 3, size: MaxPageSize},
		{name: "min size", convID: "c1", page: 1, size: 1},
		{name: "page zero", convID: "c1", page: 0, size: 8, wantErr: core.ErrInvalidPagination},
		{name: "size zero", convID: "c1", page: 1, size: 0, wantErr: core.ErrInvalidPagination},
		{name: "size too large", convID: "c1", page: 1, size: 51, wantErr: core.ErrInvalidPagination},
		{name: "missing conversation", convID: " ", page: 1, size: 8, wantErr: core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := &fakeMessages{}
			s := NewService(repo)

			page, err := s.Messages(context.Background(), tt.convID, tt.page, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, repo.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.page, page.Page)
			assert.Equal(t, tt.size, page.Size)
			assert.Equal(t, 1, repo.calls)
		})
	}
}

func TestService_LatestAndInfo(t *testing.T) {
	t.Parallel()
	repo := &fakeMessages{
		latest: map[string]string{"u1": "c9"},
		infos:  map[string]core.ConversationInfo{"c9": {ConversationID: "c9", UserID: "u1", MessageCount: 4, IsActive: true}},
	}
	s := NewService(repo)
	ctx := context.Background()

	id, err := s.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "c9", id)

	_, err = s.Latest(ctx, "u2")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = s.Latest(ctx, "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	info, err := s.Info(ctx, "c9")
	require.NoError(t, err)
	assert.Equal(t, 4, info.MessageCount)

	_, err = s.Info(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
