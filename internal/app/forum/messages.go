package forum

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agora/internal/pkg/logx"
)

// PostMessage stores a message from author in the room and enrolls author as a
// participant. Enrollment is idempotent; any signed-in user may post.
func (s *Service) PostMessage(ctx context.Context, roomID string, author *User, body string) (*Message, error) {
	if author == nil || author.ID == "" {
		return nil, ErrNotAllowed
	}

	message := &Message{
		UserID: author.ID,
		RoomID: roomID,
		Body:   body,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room Room
		if err := tx.Select("id").First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		if err := tx.Create(message).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Table("room_participants").
			Create(map[string]any{"room_id": roomID, "user_id": author.ID}).Error
		if err != nil {
			return fmt.Errorf("failed to add participant: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	message.User = author

	s.logger.Debug().
		Str("room_id", roomID).
		Str("message_id", message.ID).
		Str("user_id", author.ID).
		Msg("Message posted.")

	return message, nil
}

// DeleteMessage removes a message. Only its author may do this.
func (s *Service) DeleteMessage(ctx context.Context, messageID string, actor *User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if actor == nil || actor.ID == "" {
			return ErrNotAllowed
		}

		var message Message
		if err := tx.First(&message, "id = ?", messageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAllowed
			}
			return fmt.Errorf("failed to load message: %w", err)
		}

		if !IsOwner(actor, &message) {
			logx.Ctx(ctx).Warn().
				Str("message_id", messageID).
				Str("actor_id", actor.ID).
				Msg("Message delete rejected: not the author.")
			return ErrNotAllowed
		}

		result := tx.Where("id = ? AND user_id = ?", messageID, actor.ID).Delete(&Message{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete message: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotAllowed
		}

		return nil
	})
}

// ListMessagesForRoom returns the room's messages, newest first.
func (s *Service) ListMessagesForRoom(ctx context.Context, roomID string) ([]Message, error) {
	var messages []Message

	err := s.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list room messages: %w", err)
	}

	return messages, nil
}

// ListAllMessages returns every message for the activity feed.
func (s *Service) ListAllMessages(ctx context.Context) ([]Message, error) {
	var messages []Message

	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Room.Topic").
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// ListMessagesByAuthor returns the messages written by userID, newest first.
func (s *Service) ListMessagesByAuthor(ctx context.Context, userID string) ([]Message, error) {
	var messages []Message

	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Room.Topic").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for author: %w", err)
	}

	return messages, nil
}
