package safeguard

import "github.com/doeshing/shai-term/internal/domain"

func rule(pattern, description string, severity domain.Severity) domain.PatternRule {
	return domain.PatternRule{Pattern: pattern, Description: description, Severity: severity}
}

// baseRules are checked first, in this order, on every platform.
func baseRules() []domain.PatternRule {
	const (
		medium   = domain.SeverityMedium
		high     = domain.SeverityHigh
		critical = domain.SeverityCritical
	)

	return []domain.PatternRule{
		rule("rm -rf /", "Recursive deletion of root filesystem", critical),
		rule("rm -rf /*", "Recursive deletion of root filesystem", critical),
		rule("rm -rf ~", "Recursive deletion of home directory", critical),
		rule("rm -rf .", "Recursive deletion of current directory", high),
		rule("rm -r ", "Recursive file deletion", medium),
		rule("rm -f ", "Force file deletion", medium),
		rule(":(){:|:&};:", "Fork bomb", critical),
		rule("dd if=/dev/zero", "Disk write operation", high),
		rule("dd if=/dev/random", "Disk write operation", high),
		rule("mkfs.", "Filesystem formatting", critical),
		rule("fdisk ", "Disk partitioning", critical),
		rule("parted ", "Disk partitioning", high),
		rule("> /dev/sd", "Direct disk write", critical),
		rule("chmod 777", "World-writable permissions", medium),
		rule("chmod -R 777", "Recursive world-writable permissions", high),
		rule("chown -R", "Recursive ownership change", medium),
		rule("shutdown", "System shutdown", high),
		rule("reboot", "System reboot", high),
		rule("init 0", "System shutdown", high),
		rule("init 6", "System reboot", high),
		rule("halt", "System halt", high),
		rule("poweroff", "System poweroff", high),
		rule("curl | sh", "Remote code execution", critical),
		rule("curl | bash", "Remote code execution", critical),
		rule("wget | sh", "Remote code execution", critical),
		rule("wget | bash", "Remote code execution", critical),
		rule("| sh", "Piped shell execution", high),
		rule("| bash", "Piped shell execution", high),
		rule("eval ", "Dynamic code execution", medium),
		rule("> /etc/passwd", "Passwd file modification", critical),
		rule("> /etc/shadow", "Shadow file modification", critical),
		rule("mv /* ", "Moving root filesystem", critical),
		rule("cp /dev/null ", "Overwriting with null", high),
		rule(":(){ :|:& };:", "Fork bomb variant", critical),
		rule("history -c", "Command history deletion", medium),
		rule("shred ", "Secure file deletion", medium),
		rule("wipefs ", "Filesystem signature wiping", high),
	}
}
