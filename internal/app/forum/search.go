package forum

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// likeEscape is the escape character declared in every LIKE clause below.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern builds a lower-cased LIKE pattern matching q anywhere in a value.
// An empty q yields "%%", which matches every non-null value.
func containsPattern(q string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(q)) + "%"
}

// roomFilter scopes a query on rooms to those whose topic name, name or
// description contains q, case-insensitively.
func (s *Service) roomFilter(ctx context.Context, q string) *gorm.DB {
	pattern := containsPattern(q)

	return s.db.WithContext(ctx).
		Model(&Room{}).
		Joins("JOIN topics ON topics.id = rooms.topic_id").
		Where(
			"(LOWER(topics.name) LIKE ? ESCAPE '!' OR LOWER(rooms.name) LIKE ? ESCAPE '!' OR LOWER(rooms.description) LIKE ? ESCAPE '!')",
			pattern, pattern, pattern,
		)
}

// SearchRooms returns rooms matching q on topic name, room name or description.
// An empty query returns every room.
func (s *Service) SearchRooms(ctx context.Context, q string) ([]Room, error) {
	var rooms []Room

	err := s.roomFilter(ctx, q).
		Preload("Host").
		Preload("Topic").
		Preload("Participants").
		Order("rooms.updated_at desc").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}

	return rooms, nil
}

// CountRooms returns how many rooms SearchRooms(q) would return, without loading them.
func (s *Service) CountRooms(ctx context.Context, q string) (int64, error) {
	var count int64

	if err := s.roomFilter(ctx, q).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	return count, nil
}

// SearchTopics returns topics whose name contains q, case-insensitively.
func (s *Service) SearchTopics(ctx context.Context, q string) ([]Topic, error) {
	var topics []Topic

	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '!'", containsPattern(q)).
		Order("name asc").
		Find(&topics).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search topics: %w", err)
	}

	return topics, nil
}

// SearchMessagesByTopic returns messages posted in rooms whose topic name contains q.
func (s *Service) SearchMessagesByTopic(ctx context.Context, q string) ([]Message, error) {
	var messages []Message

	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Room.Topic").
		Joins("JOIN rooms ON rooms.id = messages.room_id").
		Joins("JOIN topics ON topics.id = rooms.topic_id").
		Where("LOWER(topics.name) LIKE ? ESCAPE '!'", containsPattern(q)).
		Order("messages.created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search messages by topic: %w", err)
	}

	return messages, nil
}
