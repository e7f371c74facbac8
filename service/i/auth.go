package i

import (
	"github.com/beka-birhanu/vinom-maze3d/identity"
)

// Authenticator registers designers and signs them in.
type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*identity.Designer, string, error)
}
