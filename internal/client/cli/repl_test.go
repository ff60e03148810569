package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls   []string
	openErr error
}

func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Refetch(ctx context.Context) error {
	f.calls = append(f.calls, "refetch")
	return nil
}
func (f *fakeExec) Open(ctx context.Context, area string) error {
	f.calls = append(f.calls, "open "+area)
	return f.openErr
}
func (f *fakeExec) Back(ctx context.Context) error {
	f.calls = append(f.calls, "back")
	return nil
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	lines := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"login",
		"",
		"whoami",
		"open volunteer",
		"open",
		"back",
		"refetch",
		"logout",
		"foobar",
		"exit",
		"whoami",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(status)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "whoami", "open volunteer", "back", "refetch", "logout"}, exec.calls)
	assert.Contains(t, *lines, "together (status)> ")
	assert.Contains(t, *lines, "Usage: open <area>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_PrintsErrorsAndStopsAtEOF(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{openErr: errors.New(`unknown area "x"`)}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("open x")))

	assert.Equal(t, []string{"open x"}, exec.calls)
	assert.Contains(t, *lines, `Error: unknown area "x"`)
	assert.NotContains(t, *lines, "Bye!")
}
