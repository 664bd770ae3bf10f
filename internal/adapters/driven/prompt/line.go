package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// Ensure LinePrompter implements the interface.
var _ driven.Prompter = (*LinePrompter)(nil)

// LinePrompter asks questions one line at a time.
//
// A single goroutine owns the input. A line typed after a question was
// cancelled answers the next question.
type LinePrompter struct {
	mu     sync.Mutex
	reader *bufio.Reader
	out    io.Writer

	start   sync.Once
	lines   chan string
	readErr error
}

// NewLinePrompter creates a prompter reading answers from in and
// writing questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(in),
		out:    out,
		lines:  make(chan string),
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Confirm asks a yes/no question. Anything other than y or yes is a no.
func (p *LinePrompter) Confirm(ctx context.Context, message string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	answer, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Choose lists options and accepts either a label or, when no label is
// numeric, a menu number. An empty line cancels.
func (p *LinePrompter) Choose(ctx context.Context, message string, options []string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, message)
	numbered := hasNumericLabel(options)
	for i, option := range options {
		if numbered {
			fmt.Fprintf(p.out, "  - %s\n", option)
			continue
		}
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}
	fmt.Fprint(p.out, "Floor: ")

	answer, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	return parseChoice(answer, options), nil
}

// Notify prints a notice.
func (p *LinePrompter) Notify(_ context.Context, level driven.NoticeLevel, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if level == driven.NoticeInfo {
		fmt.Fprintln(p.out, message)
		return
	}
	fmt.Fprintf(p.out, "%s: %s\n", level, message)
}

// readLine reads one trimmed line, giving up when ctx is cancelled.
// EOF with no input is an empty answer.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	p.start.Do(func() { go p.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.readErr != nil && !errors.Is(p.readErr, io.EOF) {
				return "", fmt.Errorf("reading answer: %w", p.readErr)
			}
			return "", nil
		}
		return strings.TrimSpace(line), nil
	}
}

// readLoop feeds input lines to readLine until the input ends.
func (p *LinePrompter) readLoop() {
	defer close(p.lines)
	for {
		line, err := p.reader.ReadString('\n')
		if line != "" {
			p.lines <- line
		}
		if err != nil {
			p.readErr = err
			return
		}
	}
}

// parseChoice matches an answer against the option labels first.
// Menu numbers are accepted only when no label is itself a number, so
// numbered floors are always taken literally. Anything else is passed
// through for the caller to reject.
func parseChoice(input string, options []string) string {
	for _, option := range options {
		if strings.EqualFold(option, input) {
			return option
		}
	}
	if hasNumericLabel(options) {
		return input
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return input
}

func hasNumericLabel(options []string) bool {
	for _, option := range options {
		if _, err := strconv.Atoi(strings.TrimSpace(option)); err == nil {
			return true
		}
	}
	return false
}
