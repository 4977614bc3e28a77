package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Profile(ctx context.Context) error { return f.record("profile") }

func (f *fakeExec) ListPantry(ctx context.Context) error { return f.record("pantry") }
func (f *fakeExec) AddItem(ctx context.Context) error    { return f.record("additem") }
func (f *fakeExec) EditItem(ctx context.Context) error   { return f.record("edititem") }
func (f *fakeExec) DeleteItem(ctx context.Context) error { return f.record("delitem") }
func (f *fakeExec) Stats(ctx context.Context) error      { return f.record("stats") }
func (f *fakeExec) Expiring(ctx context.Context) error   { return f.record("expiring") }

func (f *fakeExec) Deals(ctx context.Context) error        { return f.record("deals") }
func (f *fakeExec) ShowCart(ctx context.Context) error     { return f.record("cart") }
func (f *fakeExec) CartAdd(ctx context.Context) error      { return f.record("cartadd") }
func (f *fakeExec) CartRemove(ctx context.Context) error   { return f.record("cartdel") }
func (f *fakeExec) CartQuantity(ctx context.Context) error { return f.record("cartqty") }
func (f *fakeExec) CartClear(ctx context.Context) error    { return f.record("cartclear") }
func (f *fakeExec) Checkout(ctx context.Context) error     { return f.record("checkout") }

func (f *fakeExec) ScanReceipt(ctx context.Context) error { return f.record("scan") }

func (f *fakeExec) Recommend(ctx context.Context) error     { return f.record("recommend") }
func (f *fakeExec) Chat(ctx context.Context) error          { return f.record("chat") }
func (f *fakeExec) Sessions(ctx context.Context) error      { return f.record("sessions") }
func (f *fakeExec) History(ctx context.Context) error       { return f.record("history") }
func (f *fakeExec) DeleteSession(ctx context.Context) error { return f.record("delsession") }
func (f *fakeExec) Suggest(ctx context.Context) error       { return f.record("suggest") }

func muteOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"deals",
		"cartadd",
		"cart",
		"checkout",
		"pantry",
		"stats",
		"scan",
		"recommend",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	want := []string{"login", "deals", "cartadd", "cart", "checkout", "pantry", "stats", "scan", "recommend"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range exec.calls {
		if c != want[i] {
			t.Fatalf("call %d: got %q, want %q", i, c, want[i])
		}
	}
}

func TestRunREPL_EmptyLinesAndQuit(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("\n   \nquit\npantry\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls after quit: %v", exec.calls)
	}
}

func TestRunREPL_ShortAliases(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("p\nexit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	if len(exec.calls) != 1 || exec.calls[0] != "pantry" {
		t.Fatalf("alias p: got %v", exec.calls)
	}
}
