package identity

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	usernamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minUsernameLength = 3
	maxUsernameLength = 20

	passwordHashCost = 12
)

var (
	usernameRegex = regexp.MustCompile(usernamePattern)

	ErrUsernameTooShort = errors.New("username too short")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrUsernameFormat   = errors.New("invalid username format")
	ErrWeakPassword     = errors.New("weak password")
	ErrUsernameReserved = errors.New("username is reserved")

	// reservedUsernames cannot be registered.
	reservedUsernames = map[string]struct{}{
		"admin":     {},
		"anonymous": {},
		"root":      {},
		"system":    {},
	}
)

// Designer is an account that owns saved mazes. Usernames are case-insensitive and
// stored in their normalized form.
type Designer struct {
	ID           uuid.UUID `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// DesignerConfig holds the parameters for creating a Designer from a plain password.
type DesignerConfig struct {
	ID            uuid.UUID
	Username      string
	PlainPassword string
	CreatedAt     time.Time // zero = now
}

// NormalizeUsername returns the form usernames are stored and looked up in.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NewDesigner validates the config and creates a Designer with a hashed password.
func NewDesigner(config DesignerConfig) (*Designer, error) {
	username := NormalizeUsername(config.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	if err := validatePassword(config.PlainPassword); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(config.PlainPassword)
	if err != nil {
		return nil, err
	}

	createdAt := config.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &Designer{
		ID:           config.ID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt.UTC(),
	}, nil
}

// VerifyPassword verifies if the given password matches the stored hash.
func (d *Designer) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password))
	return err == nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrUsernameFormat
	}
	if _, ok := reservedUsernames[username]; ok {
		return ErrUsernameReserved
	}
	return nil
}

// validatePassword checks the strength of the password.
func validatePassword(password string) error {
	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(bytes), err
}
