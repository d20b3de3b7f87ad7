package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// recordingSleep collects the durations the forced approver waits for and
// runs an optional hook after each one.
type recordingSleep struct {
	calls []time.Duration
	after func(n int)
}

func (s *recordingSleep) sleep(d time.Duration) {
	s.calls = append(s.calls, d)
	if s.after != nil {
		s.after(len(s.calls))
	}
}

func newTestForcedApprover(out io.Writer, s *recordingSleep) *ForcedApprover {
	return &ForcedApprover{output: out, sleepFn: s.sleep}
}

func TestForcedApprover_SleepsOncePerSecond(t *testing.T) {
	var out bytes.Buffer
	s := &recordingSleep{}

	approved, err := newTestForcedApprover(&out, s).RequestApproval(context.Background(), "public")
	if err != nil {
		t.Fatalf("RequestApproval() error = %v", err)
	}
	if !approved {
		t.Fatal("RequestApproval() = false, want true")
	}

	want := int(pgiban.DefaultForceApprovalCountdown / time.Second)
	if len(s.calls) != want {
		t.Fatalf("sleep called %d times, want %d", len(s.calls), want)
	}
	for i, d := range s.calls {
		if d != time.Second {
			t.Errorf("sleep #%d = %v, want 1s", i+1, d)
		}
	}
}

func TestForcedApprover_CountsDown(t *testing.T) {
	var out bytes.Buffer
	_, _ = newTestForcedApprover(&out, &recordingSleep{}).RequestApproval(context.Background(), "billing")

	text := out.String()
	last := -1
	for n := 5; n >= 1; n-- {
		tick := fmt.Sprintf("Uninstalling in: %d seconds", n)
		idx := strings.Index(text, tick)
		if idx < 0 {
			t.Fatalf("output missing %q:\n%s", tick, text)
		}
		if idx < last {
			t.Errorf("%q printed out of order", tick)
		}
		last = idx
	}

	for _, want := range []string{"DANGER", "billing", "iban domain", "Proceeding with uninstall"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestForcedApprover_CancelledDuringLastSecond(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := int(pgiban.DefaultForceApprovalCountdown / time.Second)
	s := &recordingSleep{after: func(n int) {
		if n == ticks {
			cancel()
		}
	}}

	approved, err := newTestForcedApprover(&out, s).RequestApproval(ctx, "public")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RequestApproval() error = %v, want context.Canceled", err)
	}
	if approved {
		t.Fatal("RequestApproval() = true after cancellation")
	}
	if len(s.calls) != ticks {
		t.Errorf("sleep called %d times, want %d", len(s.calls), ticks)
	}
	if strings.Contains(out.String(), "Proceeding with uninstall") {
		t.Errorf("cancelled countdown must not announce the uninstall:\n%s", out.String())
	}
}

func TestForcedApprover_CancelledMidway(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &recordingSleep{after: func(n int) {
		if n == 2 {
			cancel()
		}
	}}

	approved, err := newTestForcedApprover(&out, s).RequestApproval(ctx, "public")
	if !errors.Is(err, context.Canceled) || approved {
		t.Fatalf("RequestApproval() = %v, %v; want false, context.Canceled", approved, err)
	}
	if len(s.calls) != 2 {
		t.Errorf("sleep called %d times after cancel at tick 2", len(s.calls))
	}
}

func TestForcedApprover_DeadlineAlreadyPassed(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	s := &recordingSleep{}
	approved, err := newTestForcedApprover(&out, s).RequestApproval(ctx, "public")
	if !errors.Is(err, context.DeadlineExceeded) || approved {
		t.Fatalf("RequestApproval() = %v, %v; want false, context.DeadlineExceeded", approved, err)
	}
	if len(s.calls) != 0 {
		t.Errorf("sleep called %d times on an expired context", len(s.calls))
	}
}

func TestNewForcedApprover(t *testing.T) {
	fa, ok := NewForcedApprover(true).(*ForcedApprover)
	if !ok {
		t.Fatal("NewForcedApprover() is not a *ForcedApprover")
	}
	if !fa.verbose || fa.output == nil || fa.sleepFn == nil {
		t.Errorf("NewForcedApprover(true) = %+v, want verbose with output and sleep set", fa)
	}
}

func TestInteractiveApprover_Confirmation(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		typed    string
		approved bool
		message  string
	}{
		{"exact name", "ledger", "ledger\n", true, "Confirmed"},
		{"surrounding blanks", "ledger", "  ledger \t\n", true, "Confirmed"},
		{"windows line ending", "billing", "billing\r\n", true, "Confirmed"},
		{"different name", "ledger", "public\n", false, "Input 'public' does not match schema name 'ledger'"},
		{"case differs", "ledger", "LEDGER\n", false, "does not match"},
		{"quoted name", "ledger", "'ledger'\n", false, "does not match"},
		{"blank line", "ledger", "\n", false, "does not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			a := &InteractiveApprover{input: strings.NewReader(tt.typed), output: &out}

			approved, err := a.RequestApproval(context.Background(), tt.schema)
			if err != nil {
				t.Fatalf("RequestApproval() error = %v", err)
			}
			if approved != tt.approved {
				t.Errorf("RequestApproval() = %v, want %v", approved, tt.approved)
			}
			if !strings.Contains(out.String(), tt.message) {
				t.Errorf("output missing %q:\n%s", tt.message, out.String())
			}
		})
	}
}

func TestInteractiveApprover_PromptNamesSchema(t *testing.T) {
	var out bytes.Buffer
	a := &InteractiveApprover{input: strings.NewReader("billing\n"), output: &out}

	_, _ = a.RequestApproval(context.Background(), "billing")

	text := out.String()
	for _, want := range []string{"WARNING:", "schema 'billing'", "iban domain", "type the schema name 'billing'"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestInteractiveApprover_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input io.Reader
		want  error
	}{
		{"read failure", &errorReader{err: io.ErrUnexpectedEOF}, io.ErrUnexpectedEOF},
		{"no newline before EOF", strings.NewReader("ledger"), io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &InteractiveApprover{input: tt.input, output: io.Discard}

			approved, err := a.RequestApproval(context.Background(), "ledger")
			if approved {
				t.Error("RequestApproval() = true on a read error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("RequestApproval() error = %v, want %v", err, tt.want)
			}
			if err != nil && !strings.Contains(err.Error(), "failed to read input") {
				t.Errorf("error %q not wrapped with read context", err)
			}
		})
	}
}

func TestInteractiveApprover_ContextCancelledWhileWaiting(t *testing.T) {
	input := newBlockingReader()
	t.Cleanup(func() { input.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &InteractiveApprover{input: input, output: io.Discard}
	approved, err := a.RequestApproval(ctx, "ledger")
	if !errors.Is(err, context.Canceled) || approved {
		t.Fatalf("RequestApproval() = %v, %v; want false, context.Canceled", approved, err)
	}
}

func TestNewInteractiveApprover(t *testing.T) {
	ia, ok := NewInteractiveApprover(false).(*InteractiveApprover)
	if !ok {
		t.Fatal("NewInteractiveApprover() is not an *InteractiveApprover")
	}
	if ia.verbose || ia.input == nil || ia.output == nil {
		t.Errorf("NewInteractiveApprover(false) = %+v, want stdin/stderr and verbose off", ia)
	}
}

type errorReader struct {
	err error
}

func (r *errorReader) Read([]byte) (int, error) {
	return 0, r.err
}

type blockingReader struct {
	done chan struct{}
}

func newBlockingReader() *blockingReader {
	return &blockingReader{done: make(chan struct{})}
}

func (r *blockingReader) Read([]byte) (int, error) {
	<-r.done
	return 0, io.EOF
}

func (r *blockingReader) Close() error {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	return nil
}
