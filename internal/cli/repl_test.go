package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls   []string
	openArg string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Users(ctx context.Context) error { f.calls = append(f.calls, "users"); return nil }
func (f *fakeExec) Chats(ctx context.Context) error { f.calls = append(f.calls, "chats"); return nil }
func (f *fakeExec) Open(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "open")
	f.openArg = arg
	return nil
}
func (f *fakeExec) Send(ctx context.Context) error { f.calls = append(f.calls, "send"); return nil }
func (f *fakeExec) Away(ctx context.Context) error { f.calls = append(f.calls, "away"); return nil }
func (f *fakeExec) Back(ctx context.Context) error { f.calls = append(f.calls, "back"); return nil }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"users",
		"chats",
		"open 2",
		"send",
		"away",
		"back",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "users", "chats", "open", "send", "away", "back", "logout"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if exec.openArg != "2" {
		t.Fatalf("open arg mismatch: got %q, want %q", exec.openArg, "2")
	}
}

func TestRunREPL_OpenWithoutArgDoesNotDispatch(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("open\nexit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	for _, c := range exec.calls {
		if c == "open" {
			t.Fatalf("open must not dispatch without an argument: %v", exec.calls)
		}
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")))

	if len(exec.calls) != 0 {
		t.Fatalf("no commands expected, got %v", exec.calls)
	}
}
