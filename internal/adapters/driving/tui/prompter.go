package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/logger"
)

// Ensure DialogPrompter implements the interface.
var _ driven.Prompter = (*DialogPrompter)(nil)

// DialogPrompter asks connector questions through dialogs in a running
// Bubbletea program. Confirm and Choose post a request message and block
// until the app answers on the reply channel, so they must be called
// from a tea.Cmd rather than from Update.
type DialogPrompter struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewDialogPrompter creates a detached prompter.
func NewDialogPrompter() *DialogPrompter {
	return &DialogPrompter{}
}

// Attach connects the prompter to a program, usually via tea.Program.Send.
// Passing nil detaches it.
func (p *DialogPrompter) Attach(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = send
}

// Attached reports whether the prompter can show dialogs.
func (p *DialogPrompter) Attached() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.send != nil
}

func (p *DialogPrompter) sender() func(tea.Msg) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.send
}

// Confirm shows a yes/no dialog and waits for the answer.
func (p *DialogPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	answer, err := p.ask(ctx, func(reply chan<- messages.Answer) tea.Msg {
		return messages.ConfirmRequested{Message: message, Reply: reply}
	})
	if err != nil {
		return false, err
	}
	return answer.Confirmed, nil
}

// Choose shows a pick-one dialog and waits for the answer.
func (p *DialogPrompter) Choose(ctx context.Context, message string, options []string) (string, error) {
	opts := append([]string(nil), options...)
	answer, err := p.ask(ctx, func(reply chan<- messages.Answer) tea.Msg {
		return messages.ChoiceRequested{Message: message, Options: opts, Reply: reply}
	})
	if err != nil {
		return "", err
	}
	return answer.Choice, nil
}

// Notify posts the notice to the status bar without waiting.
func (p *DialogPrompter) Notify(_ context.Context, level driven.NoticeLevel, message string) {
	send := p.sender()
	if send == nil {
		logger.Info("%s: %s", level, message)
		return
	}
	send(messages.NoticePosted{Level: level, Message: message})
}

func (p *DialogPrompter) ask(ctx context.Context, request func(chan<- messages.Answer) tea.Msg) (messages.Answer, error) {
	send := p.sender()
	if send == nil {
		return messages.Answer{}, ErrPrompterDetached
	}

	// Buffered so the app never blocks if the caller gave up.
	reply := make(chan messages.Answer, 1)
	send(request(reply))

	select {
	case answer := <-reply:
		return answer, nil
	case <-ctx.Done():
		return messages.Answer{}, ctx.Err()
	}
}
