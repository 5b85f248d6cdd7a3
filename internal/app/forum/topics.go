package forum

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agora/internal/app/db"
)

// topicCreateAttempts bounds the lookup/insert loop in GetOrCreateTopic.
// A second lookup always sees the row a concurrent creator committed.
const topicCreateAttempts = 3

// GetOrCreateTopic returns the topic with exactly this name, creating it if absent.
// A unique-constraint violation from a concurrent creator is treated as
// "someone else won" and the lookup is retried.
func (s *Service) GetOrCreateTopic(ctx context.Context, name string) (*Topic, error) {
	var lastErr error

	for range topicCreateAttempts {
		var topic Topic
		err := s.db.WithContext(ctx).Where("name = ?", name).First(&topic).Error
		if err == nil {
			return &topic, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up topic: %w", err)
		}

		topic = Topic{Name: name}
		err = s.db.WithContext(ctx).Create(&topic).Error
		if err == nil {
			s.logger.Debug().Str("topic", name).Msg("Topic created.")
			return &topic, nil
		}
		if !db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create topic: %w", err)
		}

		s.logger.Debug().Str("topic", name).Msg("Topic insert lost a race, retrying lookup.")
		lastErr = err
	}

	return nil, fmt.Errorf("failed to resolve topic %q: %w", name, lastErr)
}

// ListTopics returns topics ordered by name. A limit of zero or less returns all of them.
func (s *Service) ListTopics(ctx context.Context, limit int) ([]Topic, error) {
	var topics []Topic

	query := s.db.WithContext(ctx).Order("name asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}
