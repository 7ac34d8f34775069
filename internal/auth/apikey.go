// internal/auth/apikey.go
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dangerclosesec/geneql/internal/domain"
	"golang.org/x/crypto/argon2"
)

// Parameters for newly hashed keys. Keys are random 32 byte strings, so a
// single pass is enough.
const (
	keyTime    = 1
	keyMemory  = 64 * 1024
	keyThreads = 4
	keyLen     = 32
	saltLen    = 16
)

// KeyHash is a decoded argon2id hash of the service API key
type KeyHash struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	Salt    []byte
	Sum     []byte
}

// GenerateKey returns a random API key
func GenerateKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashKey hashes key with a fresh salt
func HashKey(key string) (*KeyHash, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", domain.ErrInvalidAPIKey)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	return &KeyHash{
		Memory:  keyMemory,
		Time:    keyTime,
		Threads: keyThreads,
		Salt:    salt,
		Sum:     argon2.IDKey([]byte(key), salt, keyTime, keyMemory, keyThreads, keyLen),
	}, nil
}

// ParseKeyHash decodes the $argon2id$v=19$m=..,t=..,p=..$salt$sum encoding
// produced by KeyHash.String
func ParseKeyHash(encoded string) (*KeyHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, fmt.Errorf("%w: not an argon2id hash", domain.ErrInvalidKeyHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %q", domain.ErrInvalidKeyHash, parts[2])
	}

	h := &KeyHash{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.Memory, &h.Time, &h.Threads); err != nil {
		return nil, fmt.Errorf("%w: parameters %q: %v", domain.ErrInvalidKeyHash, parts[3], err)
	}
	if h.Memory == 0 || h.Time == 0 || h.Threads == 0 {
		return nil, fmt.Errorf("%w: zero parameter in %q", domain.ErrInvalidKeyHash, parts[3])
	}

	var err error
	if h.Salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(h.Salt) == 0 {
		return nil, fmt.Errorf("%w: bad salt", domain.ErrInvalidKeyHash)
	}
	if h.Sum, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(h.Sum) == 0 {
		return nil, fmt.Errorf("%w: bad sum", domain.ErrInvalidKeyHash)
	}

	return h, nil
}

// String encodes h for GENEQL_API_KEY_HASH
func (h *KeyHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(h.Salt),
		base64.RawStdEncoding.EncodeToString(h.Sum),
	)
}

// Matches reports whether key hashes to h under h's own parameters
func (h *KeyHash) Matches(key string) bool {
	sum := argon2.IDKey([]byte(key), h.Salt, h.Time, h.Memory, h.Threads, uint32(len(h.Sum)))
	return subtle.ConstantTimeCompare(h.Sum, sum) == 1
}
