package ledger

import (
	"strconv"
	"strings"
)

// Avatar names, in picker order. Indexes stored in profiles point into this
// set; it must only ever grow at the end.
var avatarNames = []string{"eagle", "dragon", "lion", "monkey", "pigeon"}

// DefaultAvatarIndex is used when a profile has no avatar selected.
const DefaultAvatarIndex = 1 // dragon

// Avatars returns the fixed avatar set
func Avatars() []string {
	out := make([]string, len(avatarNames))
	copy(out, avatarNames)
	return out
}

// ValidAvatarIndex reports whether i points into the avatar set
func ValidAvatarIndex(i int) bool {
	return i >= 0 && i < len(avatarNames)
}

// Profile holds the editable per-user profile fields. Email is sourced from
// the identity and is never stored or edited here.
type Profile struct {
	Name        string
	Age         *int
	Email       string
	AvatarIndex *int
}

// Avatar returns the name of the selected avatar, or the default
func (p *Profile) Avatar() string {
	if p.AvatarIndex != nil && ValidAvatarIndex(*p.AvatarIndex) {
		return avatarNames[*p.AvatarIndex]
	}
	return avatarNames[DefaultAvatarIndex]
}

// ProfileUpdate carries a partial profile update: nil fields are left
// unchanged. Age arrives string-encoded from the client; an empty string
// clears it. A negative AvatarIndex clears the avatar selection.
type ProfileUpdate struct {
	Name        *string
	Age         *string
	AvatarIndex *int
}

// apply validates the update and merges it into p
func (u ProfileUpdate) apply(p *Profile) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return ErrEmptyName
		}
		p.Name = name
	}

	if u.Age != nil {
		raw := strings.TrimSpace(*u.Age)
		if raw == "" {
			p.Age = nil
		} else {
			age, err := strconv.Atoi(raw)
			if err != nil || age <= 0 {
				return ErrInvalidAge
			}
			p.Age = &age
		}
	}

	if u.AvatarIndex != nil {
		if *u.AvatarIndex < 0 {
			p.AvatarIndex = nil
		} else if !ValidAvatarIndex(*u.AvatarIndex) {
			return ErrInvalidAvatarIndex
		} else {
			idx := *u.AvatarIndex
			p.AvatarIndex = &idx
		}
	}

	return nil
}

// defaultName derives a display name from an email address, used when the
// profile has no name set.
func defaultName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
