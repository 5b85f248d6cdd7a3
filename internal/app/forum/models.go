/*
Package forum contains the data model and store operations for the Agora forum.

It owns users, topics, rooms and messages, the ownership checks that guard every
mutation, and the free-text filters used by the browse pages. All persistence
goes through GORM; callers pass the acting user explicitly.
*/
package forum

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered forum member.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Username     string    `gorm:"size:64;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	AvatarKey    string    `gorm:"size:255;not null;default:''" json:"avatarKey,omitempty"`
	Bio          string    `gorm:"type:text;not null;default:''" json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Topic is a deduplicated label that classifies rooms.
type Topic struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:200;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Room is a discussion room. HostID is the only user allowed to change it.
type Room struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	HostID       string    `gorm:"size:36;not null;index" json:"hostId"`
	Host         *User     `gorm:"foreignKey:HostID" json:"host,omitempty"`
	TopicID      string    `gorm:"size:36;not null;index" json:"topicId"`
	Topic        *Topic    `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Description  string    `gorm:"type:text;not null;default:''" json:"description"`
	Participants []User    `gorm:"many2many:room_participants;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Message is a post by UserID inside RoomID.
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RoomID    string    `gorm:"size:36;not null;index" json:"roomId"`
	Room      *Room     `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller left ID empty.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// Models lists every persisted type, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{&User{}, &Topic{}, &Room{}, &Message{}}
}
