package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
)

// Config carries the platform-level settlement settings.
type Config struct {
	// Platform default gateway credentials, used when a funding target's
	// owner has not supplied a BYOK pair. May be empty on BYOK-only
	// deployments; resolution then fails for targets without tenant keys.
	PlatformKeyID     string
	PlatformKeySecret string

	Currency      string
	StatsCacheTTL time.Duration
}

type Service struct {
	cfg         Config
	accounts    ports.AccountRepository
	targets     ports.FundingTargetRepository
	investments ports.InvestmentRepository
	statsCache  ports.StatsCache
	gateway     ports.OrderClient
	tokenSigner ports.TokenSigner
	logger      *slog.Logger
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Accounts    ports.AccountRepository
	Targets     ports.FundingTargetRepository
	Investments ports.InvestmentRepository
	StatsCache  ports.StatsCache
	Gateway     ports.OrderClient
	TokenSigner ports.TokenSigner
	Logger      *slog.Logger
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.StatsCacheTTL <= 0 {
		cfg.StatsCacheTTL = time.Minute
	}
	return &Service{
		cfg:         cfg,
		accounts:    deps.Accounts,
		targets:     deps.Targets,
		investments: deps.Investments,
		statsCache:  deps.StatsCache,
		gateway:     deps.Gateway,
		tokenSigner: deps.TokenSigner,
		logger:      logger.With("module", "application", "layer", "service"),
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// ValidateToken resolves a bearer token to an actor for the HTTP adapter.
func (s *Service) ValidateToken(_ context.Context, raw string) (Actor, error) {
	claims, err := s.tokenSigner.ParseAndValidate(raw)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return Actor{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// resolveCredentials selects the gateway pair governing transactions against
// a funding target: the owner's BYOK pair when both halves are present,
// otherwise the platform default. Resolution is deterministic for unchanged
// account state; the order issuer and the verifier both go through here so
// they cannot diverge.
func (s *Service) resolveCredentials(ctx context.Context, target domain.FundingTarget) (domain.CredentialPair, error) {
	owner, err := s.accounts.GetByID(ctx, target.AccountID)
	if err == nil {
		if pair := owner.Credentials(); pair.Usable() {
			return pair, nil
		}
	} else if !isNotFound(err) {
		return domain.CredentialPair{}, err
	}

	platform := domain.CredentialPair{KeyID: s.cfg.PlatformKeyID, KeySecret: s.cfg.PlatformKeySecret}
	if platform.Usable() {
		return platform, nil
	}

	// Full detail stays server-side; the client sees only a generic error.
	s.logger.ErrorContext(ctx, "no usable gateway credentials",
		"operation", "resolve_credentials",
		"outcome", "failure",
		"target_id", target.TargetID,
		"owner_id", target.AccountID,
		"owner_keys_present", owner.Credentials().Usable(),
		"platform_keys_present", platform.KeyID != "",
	)
	return domain.CredentialPair{}, domain.ErrGatewayConfig
}
