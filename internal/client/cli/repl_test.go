package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls      []string
	reviewArgs []string
	reviewErr  error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Profile(context.Context) error { f.calls = append(f.calls, "profile"); return nil }
func (f *fakeExec) Models(context.Context) error  { f.calls = append(f.calls, "models"); return nil }
func (f *fakeExec) Review(_ context.Context, args []string) error {
	f.calls = append(f.calls, "review")
	f.reviewArgs = args
	return f.reviewErr
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func silence(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			} else if e, ok := v.(error); ok {
				parts = append(parts, e.Error())
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silence(t)

	input := strings.Join([]string{
		"help",
		"register",
		"login",
		"",
		"profile",
		"models",
		"review main.go llama3.2:1b",
		"logout",
		"exit",
		"profile",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"register", "login", "profile", "models", "review", "logout"}, exec.calls)
	assert.Equal(t, []string{"main.go", "llama3.2:1b"}, exec.reviewArgs)
}

func TestRunREPL_ErrorsAndUnknown(t *testing.T) {
	lines := silence(t)

	exec := &fakeExec{reviewErr: errors.New("no such file")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("review x\nfoobar\nquit\n")))

	assert.Contains(t, *lines, "Error: no such file")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("models")))

	assert.Equal(t, []string{"models"}, exec.calls)
}
