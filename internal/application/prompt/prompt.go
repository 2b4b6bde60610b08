// Package prompt renders the system and user prompts sent to the language
// model for completions, harm classification and fix suggestions.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/doeshing/shai-term/internal/domain"
)

const (
	completionSystem = `You are an intelligent terminal autocomplete assistant. Your job is to predict and complete shell commands based on context.

Rules:
1. Return ONLY the completion text - the part that comes AFTER the user's cursor
2. Keep completions concise and practical
3. Consider the user's command history and current directory
4. If unsure, prefer common/safe commands
5. Never suggest destructive commands (rm -rf, etc.) without explicit flags from user
6. Return empty string if no good completion exists

Output format: Just the completion text, nothing else. No explanations, no quotes, no markdown.`

	harmSystem = `You are a security analyzer for shell commands. Your job is to detect potentially harmful or dangerous commands.

Analyze commands for these categories of harm:
1. DESTRUCTIVE FILE OPERATIONS: rm -rf, rm -r, shred, wipe operations that can delete important files
2. SYSTEM MODIFICATIONS: Commands that modify system files, bootloader, partition tables
3. PERMISSION CHANGES: chmod 777, chown operations that weaken security
4. NETWORK RISKS: curl/wget piped to shell, reverse shells, unexpected network connections
5. RESOURCE ATTACKS: Fork bombs, infinite loops, memory exhaustion
6. DANGEROUS CHAINING: Commands using && or | that combine risky operations

Output format (JSON):
{
  "is_harmful": true/false,
  "reason": "Brief explanation of the risk",
  "severity": "low|medium|high|critical"
}

Severity levels:
- low: Minor risk, proceed with caution
- medium: Moderate risk, user should understand implications
- high: Significant risk, could cause data loss or system issues
- critical: Severe risk, could destroy system or compromise security

Be conservative - only flag truly dangerous commands. Common safe operations should not be flagged.`

	fixSystem = `You are an expert shell command debugger. When a command fails, you analyze the error and provide a corrected command.

Your task:
1. Analyze the failed command and its error output
2. Identify the root cause of the failure
3. Provide a corrected command that should work
4. Explain what was wrong and how the fix addresses it

Output format (JSON):
{
  "fixed_command": "the corrected command",
  "explanation": "Brief explanation of what was wrong and how the fix addresses it",
  "confidence": "low|medium|high"
}

Confidence levels:
- low: The fix is a guess, user should verify
- medium: The fix should likely work but may need adjustment
- high: The fix directly addresses the identified error

Common error categories:
- Typos in command or arguments
- Missing dependencies or packages
- Permission issues (suggest sudo if appropriate)
- Incorrect paths or file not found
- Syntax errors
- Wrong flags or options
- Missing quotes or escaping issues

Be concise but helpful. Only provide the JSON output.`

	explanationFormat = `Output format: completion|||explanation
Where:
- completion: The text to complete the command
- explanation: A brief (max 60 chars) explanation of why this suggestion was made

Example: eckout main|||Switch to the main branch`

	plainFormat = `Return ONLY the completion text that should appear after the cursor - do not repeat what the user has already typed.
If the input appears complete or you cannot suggest anything useful, return an empty string.`
)

// ExplanationSeparator splits a completion from its explanation.
const ExplanationSeparator = "|||"

// fixHistoryLines is how many history entries go into a fix prompt.
const fixHistoryLines = 5

var completionTemplate = template.Must(template.New("completion").Parse(
	"User is typing a command in the terminal and needs autocomplete suggestions.\n\n" +
		"Current input: `{{.Input}}`\n\n" +
		"## Terminal Context\n" +
		"- Current directory: {{.Cwd}}\n" +
		"{{if .Shell}}- Shell: {{.Shell}}\n{{end}}" +
		"{{if .OS}}- OS: {{.OS}}\n{{end}}" +
		"{{if .GitBranch}}- Git branch: {{.GitBranch}}\n{{end}}" +
		"- Available environment variables: {{.EnvVars}}\n\n" +
		"## Recent Command History (sanitized)\n" +
		"{{.History}}\n\n" +
		"## Instructions\n" +
		"Provide the SINGLE BEST completion for the user's current input. The completion should:\n" +
		"1. Continue from where the user stopped typing\n" +
		"2. Be a valid shell command\n" +
		"3. Consider the context (directory, history, common patterns)\n\n" +
		"{{.OutputFormat}}\n\n" +
		"Examples:\n" +
		"- Input: \"git ch\" -> Completion: \"eckout \"\n" +
		"- Input: \"ls -\" -> Completion: \"la\"\n" +
		"- Input: \"docker \" -> Completion: \"ps\"\n"))

var fixTemplate = template.Must(template.New("fix").Parse(
	"A shell command failed. Please analyze and provide a fix.\n\n" +
		"Failed command: `{{.Command}}`\n" +
		"Exit code: {{.ExitCode}}\n" +
		"Current directory: {{.Cwd}}\n\n" +
		"Error output:\n```\n{{.Output}}\n```\n\n" +
		"Recent command history:\n{{.History}}\n\n" +
		"Provide a JSON response with the fixed command and explanation."))

type completionData struct {
	Input        string
	Cwd          string
	Shell        string
	OS           string
	GitBranch    string
	EnvVars      string
	History      string
	OutputFormat string
}

type fixData struct {
	Command  string
	ExitCode int
	Cwd      string
	Output   string
	History  string
}

// CompletionSystem is the system prompt for inline completions.
func CompletionSystem() string { return completionSystem }

// HarmSystem is the system prompt for harm classification.
func HarmSystem() string { return harmSystem }

// FixSystem is the system prompt for fix suggestions.
func FixSystem() string { return fixSystem }

// Completion renders the user prompt for an inline completion.
func Completion(ctx domain.TerminalContext, withExplanation bool) (string, error) {
	history := "No recent commands"
	if sanitized := SanitizeHistory(ctx.CommandHistory); len(sanitized) > 0 {
		lines := make([]string, len(sanitized))
		for i, cmd := range sanitized {
			lines[i] = fmt.Sprintf("%d. %s", i+1, cmd)
		}
		history = strings.Join(lines, "\n")
	}

	env := "None"
	if names := SafeEnvNames(ctx.EnvVarNames); len(names) > 0 {
		env = strings.Join(names, ", ")
	}

	format := plainFormat
	if withExplanation {
		format = explanationFormat
	}

	return execute(completionTemplate, completionData{
		Input:        ctx.CurrentInput,
		Cwd:          ctx.Cwd,
		Shell:        ctx.Shell,
		OS:           ctx.OS,
		GitBranch:    ctx.GitBranch,
		EnvVars:      env,
		History:      history,
		OutputFormat: format,
	})
}

// Harm renders the user prompt for classifying command.
func Harm(command string) string {
	return "Analyze this shell command for potential harm:\n\n```\n" + command + "\n```\n\nRespond with JSON only."
}

// Fix renders the user prompt for a failed command. Output beyond
// domain.MaxFixPromptOutputBytes is cut and marked as truncated.
func Fix(ec domain.ErrorContext) (string, error) {
	history := "No recent commands"
	if len(ec.History) > 0 {
		recent := ec.History
		if len(recent) > fixHistoryLines {
			recent = recent[len(recent)-fixHistoryLines:]
		}
		history = strings.Join(SanitizeHistory(recent), "\n")
	}

	return execute(fixTemplate, fixData{
		Command:  ec.Command,
		ExitCode: ec.ExitCode,
		Cwd:      ec.Cwd,
		Output:   TruncateOutput(ec.Output, domain.MaxFixPromptOutputBytes),
		History:  history,
	})
}

// TruncateOutput cuts s to at most limit bytes on a rune boundary and
// appends a marker when anything was dropped.
func TruncateOutput(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return CutRunes(s, limit) + "...(truncated)"
}

// CutRunes returns the longest prefix of s of at most limit bytes that does
// not split a multi-byte rune.
func CutRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func execute(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
