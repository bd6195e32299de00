package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"BirthdayKeeper/internal/config"
)

func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := Out
	buf := &bytes.Buffer{}
	Out = buf
	t.Cleanup(func() { Out = old })
	return buf
}

func TestDispatch_NoArgsShowsUsage(t *testing.T) {
	buf := captureOut(t)
	code := Dispatch(context.Background(), &config.Config{}, nil)
	assert.Equal(t, 2, code)
	assert.Contains(t, buf.String(), "Commands:")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	buf := captureOut(t)
	code := Dispatch(context.Background(), &config.Config{}, []string{"frobnicate"})
	assert.Equal(t, 2, code)
	assert.Contains(t, buf.String(), "Unknown command: frobnicate")
}

func TestDispatch_HelpForCommand(t *testing.T) {
	buf := captureOut(t)
	code := Dispatch(context.Background(), &config.Config{}, []string{"help", "add"})
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "Usage: add <name> <date>")
}

func TestDispatch_UsageErrorReturnsCode2(t *testing.T) {
	buf := captureOut(t)
	// add requires name and date
	code := Dispatch(context.Background(), &config.Config{}, []string{"add"})
	assert.Equal(t, 2, code)
	assert.Contains(t, buf.String(), "Usage: add")
}

func TestRegistryHasAllCommands(t *testing.T) {
	for _, name := range []string{
		"register", "login", "logout", "status", "list",
		"add", "edit", "remove", "sync", "import", "export",
	} {
		_, ok := Get(name)
		assert.True(t, ok, name)
	}
}
