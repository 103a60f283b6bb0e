package repositories

// CartRepository is the durable key-value substrate carts survive reloads in.
// Keys are scoped per store and session by the caller; payloads are opaque
// serialized line-item arrays. Get returns (nil, nil) for an absent key so
// callers can treat "no saved cart" as an empty cart.
type CartRepository interface {
	Get(key string) ([]byte, error)
	Put(key string, payload []byte) error
	Delete(key string) error
}
