package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	args  map[string][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return f.err
}

func (f *fakeExec) List(_ context.Context, args []string) error { return f.record("list", args) }
func (f *fakeExec) Sort(_ context.Context, args []string) error { return f.record("sort", args) }
func (f *fakeExec) Show(_ context.Context, args []string) error { return f.record("show", args) }
func (f *fakeExec) Add(context.Context) error { return f.record("add", nil) }
func (f *fakeExec) Edit(_ context.Context, args []string) error { return f.record("edit", args) }
func (f *fakeExec) Delete(_ context.Context, args []string) error { return f.record("delete", args) }
func (f *fakeExec) Restore(context.Context) error { return f.record("restore", nil) }
func (f *fakeExec) Deleted(context.Context) error { return f.record("deleted", nil) }
func (f *fakeExec) Clear(context.Context) error { return f.record("clear", nil) }
func (f *fakeExec) Status(context.Context) error { return f.record("status", nil) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"list 2 5 ali veli",
		"l",
		"sort name-desc",
		"show 3",
		"add",
		"",
		"edit 4",
		"delete 5",
		"deleted",
		"restore",
		"clear",
		"status",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	prompts := 0
	runREPL(context.Background(), exec, func() string { prompts++; return "users> " }, bufio.NewReader(strings.NewReader(input)))

	require.Equal(t, []string{
		"list", "list", "sort", "show", "add", "edit", "delete",
		"deleted", "restore", "clear", "status",
	}, exec.calls)
	require.Empty(t, exec.args["list"])
	require.Equal(t, []string{"name-desc"}, exec.args["sort"])
	require.Equal(t, []string{"3"}, exec.args["show"])
	require.Equal(t, []string{"4"}, exec.args["edit"])
	require.Equal(t, []string{"5"}, exec.args["delete"])

	joined := strings.Join(*out, "\n")
	require.Contains(t, joined, "Available commands:")
	require.Contains(t, joined, "Unknown command: foobar")
	require.Contains(t, joined, "Bye!")
	require.Equal(t, 15, prompts)
}

func TestRunREPL_ListArguments(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list 2 5 ali veli\n")))

	require.Equal(t, []string{"2", "5", "ali", "veli"}, exec.args["list"])
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("status\nquit\n")))

	require.Equal(t, []string{"status"}, exec.calls)
	require.Equal(t, []string{"Error: boom", "Bye!"}, *out)
}

func TestRunREPL_EmptyPromptIsNotPrinted(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("\n\n")))

	require.Empty(t, *out)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("clear")))

	require.Equal(t, []string{"clear"}, exec.calls)
}
