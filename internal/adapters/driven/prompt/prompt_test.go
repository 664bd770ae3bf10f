package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

func TestLinePrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Use Main Elevator?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Use Main Elevator? [y/N]: ", out.String())
		})
	}
}

func TestLinePrompter_Choose(t *testing.T) {
	options := []string{"Ground", "First", "Second"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"by number", "2\n", "First"},
		{"by label", "second\n", "Second"},
		{"out of range", "7\n", "7"},
		{"unknown label", "Roof\n", "Roof"},
		{"cancel", "\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)

			got, err := p.Choose(context.Background(), "Which floor?", options)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "  1) Ground\n")
			assert.Contains(t, out.String(), "  3) Second\n")
		})
	}
}

func TestLinePrompter_Choose_NumericLabels(t *testing.T) {
	options := []string{"1", "3"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"label", "3\n", "3"},
		{"not a menu index", "2\n", "2"},
		{"first label", "1\n", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)

			got, err := p.Choose(context.Background(), "Which floor?", options)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "  - 3\n")
			assert.NotContains(t, out.String(), "1) ")
		})
	}
}

func TestLinePrompter_SequentialAnswers(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("y\n1\n"), &out)
	ctx := context.Background()

	ok, err := p.Confirm(ctx, "Switch floors?")
	require.NoError(t, err)
	assert.True(t, ok)

	floor, err := p.Choose(ctx, "Which floor?", []string{"Ground", "First"})
	require.NoError(t, err)
	assert.Equal(t, "Ground", floor)
}

func TestLinePrompter_ContextCancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	p := NewLinePrompter(reader, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Confirm(ctx, "Switch floors?")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLinePrompter_UsableAfterCancel(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	p := NewLinePrompter(reader, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Confirm(ctx, "Switch floors?")
	require.ErrorIs(t, err, context.Canceled)

	go func() { _, _ = writer.Write([]byte("y\n")) }()

	ok, err := p.Confirm(context.Background(), "Switch floors?")
	require.NoError(t, err)
	assert.True(t, ok, "the line typed after cancelling answers the next question")
}

func TestLinePrompter_Notify(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader(""), &out)

	p.Notify(context.Background(), driven.NoticeInfo, "Switched to First.")
	p.Notify(context.Background(), driven.NoticeWarning, "No matching connectors found.")

	assert.Equal(t, "Switched to First.\nwarning: No matching connectors found.\n", out.String())
}

func TestScriptedPrompter(t *testing.T) {
	p := NewScriptedPrompter(true, "First")
	ctx := context.Background()

	ok, err := p.Confirm(ctx, "Use Main Elevator?")
	require.NoError(t, err)
	assert.True(t, ok)

	floor, err := p.Choose(ctx, "Which floor?", []string{"First", "Second"})
	require.NoError(t, err)
	assert.Equal(t, "First", floor)

	p.Notify(ctx, driven.NoticeError, "boom")

	assert.Equal(t, []string{"Use Main Elevator?"}, p.Confirms())
	assert.Equal(t, [][]string{{"First", "Second"}}, p.Choices())
	assert.Equal(t, []Notice{{Level: driven.NoticeError, Message: "boom"}}, p.Notices())
}

func TestScriptedPrompter_Error(t *testing.T) {
	p := NewScriptedPrompter(true, "First")
	p.Err = errors.New("closed")

	ok, err := p.Confirm(context.Background(), "Switch?")
	assert.Error(t, err)
	assert.False(t, ok)

	floor, err := p.Choose(context.Background(), "Which?", []string{"First"})
	assert.Error(t, err)
	assert.Empty(t, floor)
}
