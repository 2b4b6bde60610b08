//go:build windows

package safeguard

import "github.com/doeshing/shai-term/internal/domain"

func platformRules() []domain.PatternRule {
	return []domain.PatternRule{
		rule(`del /f /s /q C:\`, "Recursive deletion of C drive", domain.SeverityCritical),
		rule(`rd /s /q C:\`, "Recursive directory deletion", domain.SeverityCritical),
		rule("format C:", "Disk formatting", domain.SeverityCritical),
		rule("format D:", "Disk formatting", domain.SeverityCritical),
		rule(`Remove-Item -Recurse -Force C:\`, "PowerShell recursive deletion", domain.SeverityCritical),
		rule(`rm -Recurse -Force C:\`, "PowerShell recursive deletion", domain.SeverityCritical),
		rule("Stop-Computer", "System shutdown", domain.SeverityHigh),
		rule("Restart-Computer", "System restart", domain.SeverityHigh),
		rule("shutdown /s", "System shutdown", domain.SeverityHigh),
		rule("shutdown /r", "System restart", domain.SeverityHigh),
		rule("reg delete", "Registry deletion", domain.SeverityHigh),
		rule("bcdedit", "Boot configuration edit", domain.SeverityCritical),
	}
}
