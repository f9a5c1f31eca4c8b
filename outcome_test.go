package spindle

import (
	"errors"
	"strings"
	"testing"
)

func TestCapture_Success(t *testing.T) {
	out := Capture(func() (int, error) { return 7, nil })

	v, err := out.Unpack()
	if err != nil {
		t.Errorf("Unpack() error = %v", err)
	}
	if v != 7 {
		t.Errorf("Unpack() = %d, want 7", v)
	}
}

func TestCapture_Error(t *testing.T) {
	boom := errors.New("boom")
	out := Capture(func() (int, error) { return 0, boom })

	if !errors.Is(out.Err, boom) {
		t.Errorf("Err = %v, want boom", out.Err)
	}
}

func TestCapture_Panic(t *testing.T) {
	out := Capture(func() (string, error) { panic("kaboom") })

	var pe *PanicError
	if !errors.As(out.Err, &pe) {
		t.Fatalf("Err = %v, want *PanicError", out.Err)
	}
	if pe.Value != "kaboom" {
		t.Errorf("PanicError.Value = %v, want kaboom", pe.Value)
	}
	if !strings.Contains(pe.Error(), "kaboom") {
		t.Errorf("Error() = %q, should mention the panic value", pe.Error())
	}
	if len(pe.Stack) == 0 {
		t.Error("PanicError.Stack is empty")
	}
}

func TestCapture_PanicWithError(t *testing.T) {
	cause := errors.New("underlying")
	out := Capture(func() (int, error) { panic(cause) })

	var pe *PanicError
	if !errors.As(out.Err, &pe) {
		t.Fatalf("Err = %v, want *PanicError", out.Err)
	}
	if pe.Value != cause {
		t.Errorf("PanicError.Value = %v, want the panicked error", pe.Value)
	}
}
