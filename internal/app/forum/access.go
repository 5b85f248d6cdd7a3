package forum

// Owned is implemented by resources that have exactly one owning user.
type Owned interface {
	OwnerID() string
}

// OwnerID returns the room's host.
func (r *Room) OwnerID() string {
	if r == nil {
		return ""
	}
	return r.HostID
}

// OwnerID returns the message's author.
func (m *Message) OwnerID() string {
	if m == nil {
		return ""
	}
	return m.UserID
}

// IsOwner reports whether actor owns resource. Anonymous callers (nil) own nothing.
func IsOwner(actor *User, resource Owned) bool {
	if actor == nil || actor.ID == "" || resource == nil {
		return false
	}
	owner := resource.OwnerID()
	return owner != "" && owner == actor.ID
}
