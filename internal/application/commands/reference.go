package commands

import (
	"strconv"
	"strings"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// DefaultUserKey is used when the caller carries no session identity
const DefaultUserKey = "default"

// ParseRef reports whether ref is a positional reference ("#3" or "3")
// and returns its position
func ParseRef(ref string) (int, bool) {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimPrefix(ref, "#")
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ResolveItemRef turns a user-supplied reference into an item ID. Positional
// references are looked up in the caller's last listing; anything else is
// taken to be an ID already.
func ResolveItemRef(sessions ports.ReferenceSession, userKey, ref string) (string, error) {
	if err := application.ValidateRequired("ref", ref); err != nil {
		return "", err
	}
	ref = strings.TrimSpace(ref)

	n, positional := ParseRef(ref)
	if !positional {
		if strings.HasPrefix(ref, "#") {
			return "", &application.ReferenceError{Ref: ref}
		}
		return ref, nil
	}

	id, ok := sessions.Resolve(userKey, n)
	if !ok {
		return "", &application.ReferenceError{Ref: "#" + strconv.Itoa(n)}
	}
	return id, nil
}

// RememberListing numbers items #1..#N for the user's next command
func RememberListing(sessions ports.ReferenceSession, userKey string, items []domain.Item) {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	sessions.Set(userKey, ids)
}
