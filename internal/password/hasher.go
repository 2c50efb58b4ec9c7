package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hasher errors
var (
	// ErrUnknownScheme is returned when configuration names a hash scheme
	// that is not implemented.
	ErrUnknownScheme = errors.New("unknown hash scheme")

	// ErrNoSchemes is returned when the hasher is constructed without any
	// scheme to hash with.
	ErrNoSchemes = errors.New("at least one hash scheme is required")
)

// Verifier checks a plaintext password against a stored encoded hash.
type Verifier interface {
	Verify(password, encodedHash string) bool
}

// Scheme is a single one-way hash algorithm with a self-describing encoded
// output, so a stored hash can be matched back to the scheme that produced it.
type Scheme interface {
	// ID is the configuration identifier of the scheme.
	ID() string

	// Hash produces a salted encoded hash of the password.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the encoded hash.
	// A hash in a foreign format returns false, not an error the caller
	// must handle.
	Verify(password, encodedHash string) (bool, error)
}

// Hasher hashes passwords with an ordered list of schemes. The first scheme
// is used for all new hashes; the remainder are deprecated-but-verifiable, so
// hashes written before an algorithm rotation remain checkable.
type Hasher struct {
	schemes []Scheme
}

// NewHasher builds a Hasher from an ordered list of scheme identifiers.
// An empty list defaults to bcrypt only.
func NewHasher(schemeIDs []string) (*Hasher, error) {
	if len(schemeIDs) == 0 {
		schemeIDs = []string{"bcrypt"}
	}

	schemes := make([]Scheme, 0, len(schemeIDs))
	for _, id := range schemeIDs {
		switch id {
		case "bcrypt":
			schemes = append(schemes, bcryptScheme{})
		case "argon2id":
			schemes = append(schemes, argon2idScheme{})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, id)
		}
	}

	return &Hasher{schemes: schemes}, nil
}

// Hash produces a salted one-way hash of the password using the preferred
// (first configured) scheme.
func (h *Hasher) Hash(password string) (string, error) {
	if len(h.schemes) == 0 {
		return "", ErrNoSchemes
	}
	return h.schemes[0].Hash(password)
}

// Verify reports whether the plaintext matches the stored hash under any
// configured scheme. It never returns an error: malformed or foreign hash
// input simply yields false.
func (h *Hasher) Verify(password, encodedHash string) bool {
	for _, scheme := range h.schemes {
		ok, err := scheme.Verify(password, encodedHash)
		if err != nil {
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

var _ Verifier = (*Hasher)(nil)

// bcryptScheme wraps golang.org/x/crypto/bcrypt. Passwords are
// pre-digested with SHA-256 before hashing: bcrypt itself caps input at
// 72 bytes, shorter than the longest password the domain accepts, and
// silently comparing only a truncated prefix is worse than the extra
// digest. Hash and Verify apply the same digest, so the round trip
// holds for every accepted password length.
type bcryptScheme struct{}

func (bcryptScheme) ID() string { return "bcrypt" }

// bcryptKey condenses a password of any length into a fixed 44-byte
// input within bcrypt's limit. Base64 keeps the digest free of NUL
// bytes, which bcrypt treats as terminators.
func bcryptKey(password string) []byte {
	digest := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(digest[:]))
}

func (bcryptScheme) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptKey(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

func (bcryptScheme) Verify(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), bcryptKey(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		// Not a bcrypt hash at all.
		return false, err
	}
	return true, nil
}

// argon2id parameters. These follow the argon2 package's recommended
// interactive settings.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// argon2idScheme encodes hashes in the PHC string format:
// $argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 key>
type argon2idScheme struct{}

func (argon2idScheme) ID() string { return "argon2id" }

func (argon2idScheme) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2id salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	return encoded, nil
}

func (argon2idScheme) Verify(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("malformed argon2id version: %w", err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("malformed argon2id parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("malformed argon2id salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("malformed argon2id key: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}
