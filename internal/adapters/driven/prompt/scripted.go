package prompt

import (
	"context"
	"sync"

	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// Ensure ScriptedPrompter implements the interface.
var _ driven.Prompter = (*ScriptedPrompter)(nil)

// Notice is a notice recorded by ScriptedPrompter.
type Notice struct {
	Level   driven.NoticeLevel
	Message string
}

// ScriptedPrompter answers every question from preset values and
// records what it was asked.
type ScriptedPrompter struct {
	mu sync.Mutex

	// Accept is the answer to every Confirm.
	Accept bool

	// Floor is the answer to every Choose. Empty cancels.
	Floor string

	// Err, when set, is returned from Confirm and Choose.
	Err error

	confirms []string
	choices  [][]string
	notices  []Notice
}

// NewScriptedPrompter creates a prompter that confirms with accept and
// picks floor whenever a choice is needed.
func NewScriptedPrompter(accept bool, floor string) *ScriptedPrompter {
	return &ScriptedPrompter{Accept: accept, Floor: floor}
}

// Confirm returns the preset answer.
func (p *ScriptedPrompter) Confirm(_ context.Context, message string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, message)
	if p.Err != nil {
		return false, p.Err
	}
	return p.Accept, nil
}

// Choose returns the preset floor.
func (p *ScriptedPrompter) Choose(_ context.Context, _ string, options []string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.choices = append(p.choices, append([]string(nil), options...))
	if p.Err != nil {
		return "", p.Err
	}
	return p.Floor, nil
}

// Notify records the notice.
func (p *ScriptedPrompter) Notify(_ context.Context, level driven.NoticeLevel, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, Notice{Level: level, Message: message})
}

// Confirms returns the messages passed to Confirm.
func (p *ScriptedPrompter) Confirms() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.confirms...)
}

// Choices returns the option lists passed to Choose.
func (p *ScriptedPrompter) Choices() [][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]string(nil), p.choices...)
}

// Notices returns the recorded notices.
func (p *ScriptedPrompter) Notices() []Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Notice(nil), p.notices...)
}
