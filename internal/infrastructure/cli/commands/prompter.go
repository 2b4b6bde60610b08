package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/infrastructure/cli/ui"
)

// Prompter asks the user to confirm a flagged command.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter over in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm shows the warning and asks for confirmation. Critical commands
// require typing "yes"; anything lower accepts y/N.
func (p *Prompter) Confirm(warning string, severity domain.Severity, command string) (bool, error) {
	fmt.Fprintf(p.out, "\n%s\n", warning)
	fmt.Fprintf(p.out, "Command:\n  %s\n", ui.Command(command))

	if severity == domain.SeverityCritical {
		return p.askExplicit()
	}
	return p.ask("[y/N]: ")
}

func (p *Prompter) ask(prompt string) (bool, error) {
	fmt.Fprint(p.out, "Continue? ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

func (p *Prompter) askExplicit() (bool, error) {
	fmt.Fprint(p.out, "Type 'yes' to confirm (or anything else to cancel): ")
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.TrimSpace(line) == "yes", nil
}
