package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseCall,
				Kind:       KindTypeMismatch,
				Path:       []string{"native", "add"},
				GoType:     "int",
				InterpType: "string",
				Detail:     "cannot convert",
			},
			contains: []string{"[call]", "type_mismatch", "native.add", "int", "string", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseWrap,
				Kind:  KindArityLimit,
			},
			contains: []string{"[wrap]", "arity_limit"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseExpose,
				Kind:   KindRegistration,
				Detail: "register native#add",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[expose]", "registration", "register native#add", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Registration(PhaseExpose, "native", "add", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is does not find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap does not return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := ArityLimit(PhaseWrap, "func(int, int, int, int, int)", 5)
	b := &Error{Phase: PhaseWrap, Kind: KindArityLimit}

	if !errors.Is(a, b) {
		t.Error("errors with matching phase and kind should match")
	}

	c := &Error{Phase: PhaseExpose, Kind: KindArityLimit}
	if errors.Is(a, c) {
		t.Error("errors with different phases should not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseExpose, KindTypeMismatch).
		Path("native", "hash").
		GoType("chan int").
		InterpType("number").
		Detail("cannot pass %s", "a channel").
		Build()

	if err.Phase != PhaseExpose || err.Kind != KindTypeMismatch {
		t.Fatalf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Detail != "cannot pass a channel" {
		t.Fatalf("unexpected detail: %q", err.Detail)
	}
	if len(err.Path) != 2 || err.Path[0] != "native" {
		t.Fatalf("unexpected path: %v", err.Path)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	if e := NotAFunction(PhaseWrap, "int"); e.Kind != KindNotAFunction || e.GoType != "int" {
		t.Errorf("NotAFunction: %v", e)
	}
	if e := Variadic(PhaseWrap, "func(...int)"); e.Kind != KindVariadic {
		t.Errorf("Variadic: %v", e)
	}
	if e := NotFound(PhaseCall, "function", "run"); !strings.Contains(e.Error(), `function "run" not found`) {
		t.Errorf("NotFound: %v", e)
	}
	if e := Closed("store"); e.Kind != KindClosed || !strings.Contains(e.Detail, "store") {
		t.Errorf("Closed: %v", e)
	}
}
