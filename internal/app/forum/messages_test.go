package forum

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessageEnrollsAuthor(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	u1 := mustUser(t, s, "u1")
	u2 := mustUser(t, s, "u2")
	room := mustRoom(t, s, u2, "Go", "R", "")

	message, err := s.PostMessage(ctx, room.ID, u1, "hi")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, message.UserID)
	assert.Equal(t, room.ID, message.RoomID)
	assert.Equal(t, "hi", message.Body)

	fetched, err := s.FetchRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{u1.ID}, participantIDs(fetched))
}

func TestPostMessageTwiceAddsParticipantOnce(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	host := mustUser(t, s, "host")
	poster := mustUser(t, s, "poster")
	room := mustRoom(t, s, host, "Go", "R", "")

	_, err := s.PostMessage(ctx, room.ID, poster, "one")
	require.NoError(t, err)
	_, err = s.PostMessage(ctx, room.ID, poster, "two")
	require.NoError(t, err)
	_, err = s.PostMessage(ctx, room.ID, host, "host speaks")
	require.NoError(t, err)

	fetched, err := s.FetchRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{poster.ID, host.ID}, participantIDs(fetched))

	messages, err := s.ListMessagesForRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 3)
}

func TestPostMessageToMissingRoom(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")

	_, err := s.PostMessage(ctx, uuid.NewString(), author, "into the void")
	assert.ErrorIs(t, err, ErrNotFound)

	messages, err := s.ListAllMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestPostMessageRequiresAuthor(t *testing.T) {
	s := newTestService(t)
	host := mustUser(t, s, "host")
	room := mustRoom(t, s, host, "Go", "R", "")

	_, err := s.PostMessage(context.Background(), room.ID, nil, "anon")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestDeleteMessageByAuthor(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	author := mustUser(t, s, "author")
	room := mustRoom(t, s, author, "Go", "R", "")
	message, err := s.PostMessage(ctx, room.ID, author, "oops")
	require.NoError(t, err)

	require.NoError(t, s.DeleteMessage(ctx, message.ID, author))

	messages, err := s.ListMessagesForRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	assert.ErrorIs(t, s.DeleteMessage(ctx, message.ID, author), ErrNotAllowed)
}

func TestDeleteMessageByNonAuthorLeavesMessage(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	u1 := mustUser(t, s, "u1")
	u2 := mustUser(t, s, "u2")
	room := mustRoom(t, s, u2, "Go", "R", "")
	message, err := s.PostMessage(ctx, room.ID, u1, "mine")
	require.NoError(t, err)

	// Hosting the room does not grant rights over other people's messages.
	assert.ErrorIs(t, s.DeleteMessage(ctx, message.ID, u2), ErrNotAllowed)
	assert.ErrorIs(t, s.DeleteMessage(ctx, message.ID, nil), ErrNotAllowed)

	messages, err := s.ListMessagesForRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, message.ID, messages[0].ID)
}

func TestDeleteMissingMessageIsNotAllowed(t *testing.T) {
	s := newTestService(t)
	user := mustUser(t, s, "user")

	assert.ErrorIs(t, s.DeleteMessage(context.Background(), uuid.NewString(), user), ErrNotAllowed)
}

func TestListMessagesForRoomNewestFirst(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	author := mustUser(t, s, "author")
	room := mustRoom(t, s, author, "Go", "R", "")
	other := mustRoom(t, s, author, "Go", "Other", "")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i, body := range []string{"first", "second", "third"} {
		message, err := s.PostMessage(ctx, room.ID, author, body)
		require.NoError(t, err)
		require.NoError(t, s.db.Model(&Message{}).
			Where("id = ?", message.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, message.ID)
	}
	_, err := s.PostMessage(ctx, other.ID, author, "elsewhere")
	require.NoError(t, err)

	messages, err := s.ListMessagesForRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, ids[2], messages[0].ID)
	assert.Equal(t, ids[1], messages[1].ID)
	assert.Equal(t, ids[0], messages[2].ID)
	require.NotNil(t, messages[0].User)
	assert.Equal(t, author.ID, messages[0].User.ID)
}

func TestListAllMessages(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	go1 := mustRoom(t, s, alice, "Go", "One", "")
	rust := mustRoom(t, s, bob, "Rust", "Two", "")

	_, err := s.PostMessage(ctx, go1.ID, bob, "a")
	require.NoError(t, err)
	_, err = s.PostMessage(ctx, rust.ID, alice, "b")
	require.NoError(t, err)

	messages, err := s.ListAllMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	for _, message := range messages {
		require.NotNil(t, message.Room)
		require.NotNil(t, message.Room.Topic)
		require.NotNil(t, message.User)
	}

	byAlice, err := s.ListMessagesByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, byAlice, 1)
	assert.Equal(t, "b", byAlice[0].Body)
	assert.Equal(t, "Rust", byAlice[0].Room.Topic.Name)
}
