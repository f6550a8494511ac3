package ports

// ReferenceSession maps the 1-based positions of the last listing shown to
// a user onto item ids. Entries expire a fixed time after the last Set.
type ReferenceSession interface {
	Set(userKey string, ids []string)
	Resolve(userKey string, n int) (string, bool)
	Evict(userKey string)
}
