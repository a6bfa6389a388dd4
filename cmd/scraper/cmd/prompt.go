package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"linkedin-scraper/internal/models"
)

// prompter asks questions on an interactive terminal
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// loginMode shows the numbered list of login methods and parses the answer
func (p *prompter) loginMode() (models.LoginMode, error) {
	fmt.Fprintln(p.out, "Login method:")
	for i, m := range models.LoginModes {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, m)
	}
	answer, err := p.ask("Choose [1]: ")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return models.LoginNone, nil
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(models.LoginModes) {
			return "", fmt.Errorf("choose a number between 1 and %d", len(models.LoginModes))
		}
		return models.LoginModes[n-1], nil
	}
	return models.ParseLoginMode(answer)
}

// resolveLogin uses --login when given and prompts otherwise
func resolveLogin(p *prompter) (models.LoginMode, error) {
	if loginMode != "" {
		return models.ParseLoginMode(loginMode)
	}
	if p == nil {
		return models.LoginNone, nil
	}
	return p.loginMode()
}
