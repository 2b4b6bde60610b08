package doctor

import (
	"context"
	"fmt"
	"os/exec"

	appconfig "github.com/doeshing/shai-term/internal/application/config"
	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigStore      ports.ConfigStore
	Safeguard        ports.SafeguardMatcher
	ContextCollector ports.ContextCollector
	CommandLog       ports.CommandLog
	// Shell is the program the interactive session would spawn.
	Shell string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigStore.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("provider %s, model %s", cfg.Provider, cfg.Model)))
	}

	checks = append(checks, credentialCheck(cfg))
	checks = append(checks, s.safeguardCheck(cfg))
	checks = append(checks, s.shellCheck())

	if s.ContextCollector != nil {
		if snapshot, err := s.ContextCollector.Collect(ctx, "", nil); err == nil {
			details := "cwd " + snapshot.Cwd
			if snapshot.GitBranch != "" {
				details += ", git branch " + snapshot.GitBranch
			}
			checks = append(checks, ok("Context collector", details))
		} else {
			checks = append(checks, warn("Context collector", err.Error()))
		}
	}

	if s.CommandLog != nil {
		if _, err := s.CommandLog.Records(1); err != nil {
			checks = append(checks, warn("Command history", err.Error()))
		} else {
			checks = append(checks, ok("Command history", s.CommandLog.Path()))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func credentialCheck(cfg domain.AppConfig) domain.HealthCheck {
	if !cfg.ProviderKind().RequiresAPIKey() {
		return ok("API key", fmt.Sprintf("%s needs none (%s)", cfg.ProviderKind(), cfg.ResolvedEndpoint()))
	}
	if !cfg.HasCredential() {
		return warn("API key", fmt.Sprintf("%s needs a key: set SHAI_TERM_API_KEY or run `shai-term config set api_key <key>`", cfg.ProviderKind()))
	}
	return ok("API key", cfg.MaskedAPIKey())
}

func (s *Service) safeguardCheck(cfg domain.AppConfig) domain.HealthCheck {
	if s.Safeguard == nil {
		return warn("Safeguard", "matcher not initialized")
	}
	if !cfg.SafeguardsEnabled {
		return warn("Safeguard", "disabled; dangerous commands run without warning")
	}
	if !s.Safeguard.Check("rm -rf /", true).IsDangerous {
		return fail("Safeguard", "built-in rules did not flag `rm -rf /`")
	}
	return ok("Safeguard", fmt.Sprintf("%d rules loaded", len(s.Safeguard.Rules())))
}

func (s *Service) shellCheck() domain.HealthCheck {
	if s.Shell == "" {
		return warn("Shell", "no shell detected")
	}
	path, err := exec.LookPath(s.Shell)
	if err != nil {
		return fail("Shell", fmt.Sprintf("%s not found: %v", s.Shell, err))
	}
	return ok("Shell", path)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
