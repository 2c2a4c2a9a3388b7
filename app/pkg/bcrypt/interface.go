package bcrypt

// Hasher stores API keys as salted hashes.
type Hasher interface {
	Hash(secret string) (string, error)
	Matches(secret, hash string) (bool, error)
}
