package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/infrastructure/safeguard"
)

type stubConfigStore struct {
	cfg domain.AppConfig
	err error
}

func (s stubConfigStore) Load(context.Context) (domain.AppConfig, error) { return s.cfg, s.err }
func (s stubConfigStore) Save(context.Context, domain.AppConfig) error  { return nil }

func findCheck(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q missing from %+v", name, report.Checks)
	return domain.HealthCheck{}
}

func TestDoctorReportsMissingKey(t *testing.T) {
	svc := &Service{
		ConfigStore: stubConfigStore{cfg: domain.DefaultAppConfig()},
		Safeguard:   safeguard.NewMatcher(),
		Shell:       "sh",
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := findCheck(t, report, "API key"); got.Status != domain.HealthWarn {
		t.Fatalf("expected warn for missing key, got %+v", got)
	}
	if got := findCheck(t, report, "Safeguard"); got.Status != domain.HealthOK {
		t.Fatalf("expected safeguard ok, got %+v", got)
	}
	if !report.Healthy() {
		t.Fatalf("warnings must not make the report unhealthy: %+v", report.Checks)
	}
}

func TestDoctorOllamaNeedsNoKey(t *testing.T) {
	cfg := domain.DefaultAppConfig()
	cfg.Provider = "ollama"
	cfg.Model = "llama3"

	report, _ := (&Service{ConfigStore: stubConfigStore{cfg: cfg}, Shell: "sh"}).Run(context.Background())
	if got := findCheck(t, report, "API key"); got.Status != domain.HealthOK {
		t.Fatalf("expected ok for ollama, got %+v", got)
	}
}

func TestDoctorFailsOnMissingShellAndBadConfig(t *testing.T) {
	cfg := domain.DefaultAppConfig()
	cfg.Temperature = 9

	report, _ := (&Service{ConfigStore: stubConfigStore{cfg: cfg}, Shell: "/definitely/not/a/shell"}).Run(context.Background())
	if report.Healthy() {
		t.Fatal("expected unhealthy report")
	}
	if got := findCheck(t, report, "Shell"); got.Status != domain.HealthError {
		t.Fatalf("expected shell error, got %+v", got)
	}
	if got := findCheck(t, report, "Config file"); got.Status != domain.HealthError {
		t.Fatalf("expected config error, got %+v", got)
	}
}

func TestDoctorStopsWhenConfigUnreadable(t *testing.T) {
	report, err := (&Service{ConfigStore: stubConfigStore{err: errors.New("boom")}}).Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("unexpected report %+v", report.Checks)
	}
}
