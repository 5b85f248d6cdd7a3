package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"agora/internal/app/db/dbtest"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(dbtest.Open(t, Models()...))
}

func mustUser(t *testing.T, s *Service, username string) *User {
	t.Helper()
	user, err := s.RegisterUser(context.Background(), username+"@example.com", username, "hash")
	require.NoError(t, err)
	return user
}

func mustRoom(t *testing.T, s *Service, host *User, topic, name, description string) *Room {
	t.Helper()
	room, err := s.CreateRoom(context.Background(), host, topic, name, description)
	require.NoError(t, err)
	return room
}

func participantIDs(room *Room) []string {
	ids := make([]string, 0, len(room.Participants))
	for _, p := range room.Participants {
		ids = append(ids, p.ID)
	}
	return ids
}
