package service

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/identity"
	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

var _ i.Authenticator = &Auth{}

// Auth registers designers and issues their access tokens.
type Auth struct {
	designerRepo i.DesignerRepo
	tokenizer    i.Tokenizer
	logger       i.Logger
}

// NewAuthService creates an Auth service.
func NewAuthService(repo i.DesignerRepo, tokenizer i.Tokenizer, logger i.Logger) (*Auth, error) {
	if repo == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("auth service requires a designer repo, a tokenizer and a logger")
	}
	return &Auth{designerRepo: repo, tokenizer: tokenizer, logger: logger}, nil
}

// Register creates a designer account.
func (a *Auth) Register(username, password string) error {
	username = identity.NormalizeUsername(username)
	if _, err := a.designerRepo.ByUsername(username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, dmn.ErrNotFound) {
		return err
	}

	designer, err := identity.NewDesigner(identity.DesignerConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.designerRepo.Save(designer); err != nil {
		a.logger.Error(fmt.Sprintf("saving designer %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("registered designer %s (%s)", username, designer.ID))
	return nil
}

// SignIn checks the credentials and returns the designer with a fresh token.
func (a *Auth) SignIn(username, password string) (*identity.Designer, string, error) {
	username = identity.NormalizeUsername(username)
	designer, err := a.designerRepo.ByUsername(username)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("sign-in for unknown designer %s", username))
		return nil, "", ErrInvalidCredentials
	}

	if !designer.VerifyPassword(password) {
		a.logger.Warn(fmt.Sprintf("sign-in with wrong password for %s", username))
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"designerID": designer.ID.String(),
		"username":   designer.Username,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return designer, token, nil
}
