package forum

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agora/internal/pkg/logx"
)

// CreateRoom creates a room hosted by host under the named topic, creating the topic on first use.
func (s *Service) CreateRoom(ctx context.Context, host *User, topicName, name, description string) (*Room, error) {
	if host == nil || host.ID == "" {
		return nil, ErrNotAllowed
	}

	topic, err := s.GetOrCreateTopic(ctx, topicName)
	if err != nil {
		return nil, err
	}

	room := &Room{
		HostID:      host.ID,
		TopicID:     topic.ID,
		Name:        name,
		Description: description,
	}

	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	room.Host = host
	room.Topic = topic

	s.logger.Info().
		Str("room_id", room.ID).
		Str("host_id", host.ID).
		Str("topic", topic.Name).
		Msg("Room created.")

	return room, nil
}

// UpdateRoom overwrites the room's topic, name and description. Only the host may do this.
// Ownership is verified before the topic is resolved so that a rejected call changes nothing.
func (s *Service) UpdateRoom(ctx context.Context, roomID string, actor *User, topicName, name, description string) (*Room, error) {
	if _, err := s.ownedRoom(ctx, s.db.WithContext(ctx), roomID, actor); err != nil {
		return nil, err
	}

	topic, err := s.GetOrCreateTopic(ctx, topicName)
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).
		Model(&Room{}).
		Where("id = ? AND host_id = ?", roomID, actor.ID).
		Updates(map[string]any{
			"topic_id":    topic.ID,
			"name":        name,
			"description": description,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update room: %w", result.Error)
	}
	// Deleted between the ownership check and the write.
	if result.RowsAffected == 0 {
		return nil, ErrNotAllowed
	}

	room, err := s.FetchRoom(ctx, roomID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotAllowed
	}
	return room, err
}

// DeleteRoom permanently removes a room together with its messages and participant rows.
// Only the host may do this.
func (s *Service) DeleteRoom(ctx context.Context, roomID string, actor *User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedRoom(ctx, tx, roomID, actor); err != nil {
			return err
		}

		result := tx.Where("id = ? AND host_id = ?", roomID, actor.ID).Delete(&Room{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotAllowed
		}

		if err := tx.Where("room_id = ?", roomID).Delete(&Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete room messages: %w", err)
		}

		if err := tx.Exec("DELETE FROM room_participants WHERE room_id = ?", roomID).Error; err != nil {
			return fmt.Errorf("failed to delete room participants: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("room_id", roomID).Str("host_id", actor.ID).Msg("Room deleted.")
	return nil
}

// FetchRoom returns the room with its host, topic and participants loaded.
func (s *Service) FetchRoom(ctx context.Context, roomID string) (*Room, error) {
	var room Room

	err := s.db.WithContext(ctx).
		Preload("Host").
		Preload("Topic").
		Preload("Participants").
		First(&room, "id = ?", roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch room: %w", err)
	}

	return &room, nil
}

// ListRoomsByHost returns the rooms hosted by userID, newest first.
func (s *Service) ListRoomsByHost(ctx context.Context, userID string) ([]Room, error) {
	var rooms []Room

	err := s.db.WithContext(ctx).
		Preload("Host").
		Preload("Topic").
		Where("host_id = ?", userID).
		Order("created_at desc").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms for host: %w", err)
	}

	return rooms, nil
}

// ownedRoom loads the room and checks that actor hosts it. A missing room and a
// room hosted by someone else both yield ErrNotAllowed.
func (s *Service) ownedRoom(ctx context.Context, tx *gorm.DB, roomID string, actor *User) (*Room, error) {
	if actor == nil || actor.ID == "" {
		return nil, ErrNotAllowed
	}

	var room Room
	err := tx.First(&room, "id = ?", roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAllowed
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}

	if !IsOwner(actor, &room) {
		logx.Ctx(ctx).Warn().Str("room_id", roomID).Str("actor_id", actor.ID).Msg("Room change rejected: not the host.")
		return nil, ErrNotAllowed
	}

	return &room, nil
}
