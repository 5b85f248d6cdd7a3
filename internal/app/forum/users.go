package forum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"agora/internal/app/db"
)

// ProfileUpdate carries the user-editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Email     *string
	Username  *string
	Bio       *string
	AvatarKey *string
}

// Profile is everything the profile page shows about one user.
type Profile struct {
	User     *User     `json:"user"`
	Rooms    []Room    `json:"rooms"`
	Messages []Message `json:"messages"`
	Topics   []Topic   `json:"topics"`
}

// NormalizeEmail trims and lower-cases an email address so lookups are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername trims and lower-cases a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// RegisterUser creates a user. The password must already be hashed by the caller.
func (s *Service) RegisterUser(ctx context.Context, email, username, passwordHash string) (*User, error) {
	user := &User{
		Email:        NormalizeEmail(email),
		Username:     NormalizeUsername(username),
		PasswordHash: passwordHash,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered.")
	return user, nil
}

// FindUserByEmail returns the user registered with email.
func (s *Service) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User

	err := s.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}

// FetchUser returns the user with the given ID.
func (s *Service) FetchUser(ctx context.Context, userID string) (*User, error) {
	var user User

	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// UpdateProfile applies changes to targetID's profile. Users may only edit themselves.
func (s *Service) UpdateProfile(ctx context.Context, actor *User, targetID string, update ProfileUpdate) (*User, error) {
	if actor == nil || actor.ID == "" || actor.ID != targetID {
		return nil, ErrNotAllowed
	}

	changes := map[string]any{}
	if update.Email != nil {
		changes["email"] = NormalizeEmail(*update.Email)
	}
	if update.Username != nil {
		changes["username"] = NormalizeUsername(*update.Username)
	}
	if update.Bio != nil {
		changes["bio"] = *update.Bio
	}
	if update.AvatarKey != nil {
		changes["avatar_key"] = *update.AvatarKey
	}

	if len(changes) > 0 {
		result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", targetID).Updates(changes)
		if result.Error != nil {
			if db.IsUniqueViolation(result.Error) {
				return nil, ErrEmailTaken
			}
			return nil, fmt.Errorf("failed to update profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotAllowed
		}
	}

	return s.FetchUser(ctx, targetID)
}

// Profile gathers a user's hosted rooms, authored messages and the full topic list.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.FetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.ListRoomsByHost(ctx, userID)
	if err != nil {
		return nil, err
	}

	messages, err := s.ListMessagesByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	topics, err := s.ListTopics(ctx, 0)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:     user,
		Rooms:    rooms,
		Messages: messages,
		Topics:   topics,
	}, nil
}
