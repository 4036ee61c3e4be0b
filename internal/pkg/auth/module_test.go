package auth

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"

	"github.com/comprae/marketplace/internal/config"
	"github.com/comprae/marketplace/internal/domain/model"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := newPasswordHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}

func TestNewTokenStrategyUsesConfig(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	strategy := newTokenStrategy(strategyParams{
		Config: &config.Config{AuthSecret: "top-secret", TokenTTL: time.Hour},
		Logger: logger,
	})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.TTL() != time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.TTL())
	}
}

func TestNewTokenStrategyWarnsOnDefaultSecret(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	newTokenStrategy(strategyParams{Config: &config.Config{AuthSecret: config.DefaultAuthSecret}, Logger: logger})
	if !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Fatalf("expected warning for default secret, got %q", buf.String())
	}
}

func TestModuleProvidesWorkingPair(t *testing.T) {
	var (
		hasher   PasswordHasher
		strategy Strategy
	)
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(&config.Config{AuthSecret: "graph-secret"}),
		fx.Supply(slog.New(slog.NewJSONHandler(io.Discard, nil))),
		Module,
		fx.Populate(&hasher, &strategy),
	)
	defer app.RequireStart().RequireStop()

	token, err := strategy.IssueToken(model.Identity{UserID: 5, Role: model.RoleCustomer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	identity, err := strategy.ParseToken(token)
	if err != nil || identity.UserID != 5 {
		t.Fatalf("unexpected identity %+v, %v", identity, err)
	}
	if hasher == nil {
		t.Fatal("expected password hasher")
	}
}
