package auth

import (
	"time"

	"github.com/comprae/marketplace/internal/domain/model"
)

// Strategy issues and verifies bearer tokens carrying the caller identity.
type Strategy interface {
	IssueToken(identity model.Identity) (string, error)
	ParseToken(token string) (model.Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
