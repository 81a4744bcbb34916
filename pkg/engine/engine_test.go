package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chazu/modelgen/pkg/recipe"
)

func TestEvaluateEmptyString(t *testing.T) {
	for _, src := range []string{"", "   \n\t  \n  "} {
		r, evalErrs, err := NewEngine().Evaluate(src)
		if err != nil {
			t.Fatalf("unexpected fatal error: %v", err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("unexpected eval errors: %v", evalErrs)
		}
		if r == nil {
			t.Fatal("expected non-nil recipe")
		}
		if r.Primitive.Kind != "" || len(r.Steps) != 0 {
			t.Errorf("expected empty recipe, got %+v", r)
		}
	}
}

func TestEvaluateValidExpression(t *testing.T) {
	r, evalErrs, err := NewEngine().Evaluate("(def x 10)\n(def y 20)\n(+ x y)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if r == nil || len(r.Steps) != 0 {
		t.Fatalf("expected empty recipe, got %+v", r)
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	r, evalErrs, err := NewEngine().Evaluate("(cube :size 1")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if r != nil {
		t.Fatal("expected nil recipe on syntax error")
	}
	if len(evalErrs) == 0 || evalErrs[0].Message == "" {
		t.Fatal("expected a populated eval error for syntax error")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	r, evalErrs, err := NewEngine().Evaluate("(+ 1 undefined-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if r != nil {
		t.Fatal("expected nil recipe on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateResultWarnings(t *testing.T) {
	res, err := NewEngine().EvaluateResult(`(scale :uniform 2) (output "x.ply")`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if res.Recipe == nil {
		t.Fatal("expected recipe")
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected 2 warnings (no primitive, bad output), got %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0].String(), "primitive") {
		t.Errorf("unexpected warning %q", res.Warnings[0])
	}

	res, err = NewEngine().EvaluateResult(`(cube) (scale :uniform 2)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Col: 0, Message: "something went wrong"}
	s := e.Error()
	if !strings.Contains(s, "line 5") {
		t.Errorf("Error() should contain line info, got: %s", s)
	}
	if !strings.Contains(s, "something went wrong") {
		t.Errorf("Error() should contain message, got: %s", s)
	}

	e2 := EvalError{Message: "no location"}
	if strings.Contains(e2.Error(), "line") {
		t.Errorf("Error() with no line should not contain 'line', got: %s", e2.Error())
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine()
	src := `(cube :size 2) (rotate :axis :x :angle 30)`
	for i := 0; i < 5; i++ {
		r, evalErrs, err := eng.Evaluate(src)
		if err != nil {
			t.Fatalf("iteration %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: unexpected eval errors: %v", i, evalErrs)
		}
		if len(r.Steps) != 1 {
			t.Errorf("iteration %d: expected 1 step, got %d", i, len(r.Steps))
		}
	}
}

func TestEvaluateTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	eng := NewEngine()
	eng.Timeout = 50 * time.Millisecond
	eng.run = func(string) (*recipe.Recipe, []EvalError, error) {
		<-release
		return &recipe.Recipe{}, nil, nil
	}

	start := time.Now()
	_, _, err := eng.Evaluate("(box)")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got: %v", err)
	}
	if !strings.Contains(err.Error(), "50ms") {
		t.Errorf("expected the limit in the message, got: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("timeout took too long: %s", time.Since(start))
	}
}

func TestEvaluateContextCanceled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	eng := NewEngine()
	eng.run = func(string) (*recipe.Recipe, []EvalError, error) {
		<-release
		return &recipe.Recipe{}, nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := eng.EvaluateContext(ctx, "(box)")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	eng := NewEngine()
	eng.run = func(source string) (*recipe.Recipe, []EvalError, error) {
		if source == "slow" {
			close(entered)
			<-release
		}
		return &recipe.Recipe{}, nil, nil
	}

	stale := make(chan error, 1)
	go func() {
		_, _, err := eng.Evaluate("slow")
		stale <- err
	}()

	<-entered
	r, _, err := eng.Evaluate("fast")
	if err != nil {
		t.Fatalf("newer evaluation failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected recipe from newer evaluation")
	}
	close(release)

	if err := <-stale; !errors.Is(err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded, got: %v", err)
	}
}

func TestEvaluateRecoversPanic(t *testing.T) {
	eng := NewEngine()
	eng.run = func(string) (*recipe.Recipe, []EvalError, error) {
		panic("boom")
	}

	_, _, err := eng.Evaluate("(box)")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected panic error, got: %v", err)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "error on line format",
			msg:      "Error on line 5: unexpected token\n",
			wantLine: 5,
			wantMsg:  "unexpected token",
		},
		{
			name:     "no line info",
			msg:      "some generic error",
			wantLine: 0,
			wantMsg:  "some generic error",
		},
		{
			name:     "line format lowercase",
			msg:      "error on line 12: missing paren",
			wantLine: 12,
			wantMsg:  "missing paren",
		},
		{
			name:     "short line format",
			msg:      "line 3: bad axis",
			wantLine: 3,
			wantMsg:  "bad axis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			e := errs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", e.Line, tt.wantLine)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }
