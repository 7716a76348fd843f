package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/set 2025-12-31 23:59", TypeSet},
		{"in 2d 4h", TypeIn},
		{"/clear", TypeClear},
		{"  /DEBUG  ", TypeDebug},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseKeepsArguments(t *testing.T) {
	cmd, err := Parse("/set May 23, 2025 23:59:59")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Set == nil || cmd.Set.Date != "May 23, 2025 23:59:59" {
		t.Fatalf("unexpected set args: %+v", cmd.Set)
	}

	cmd, err = Parse("/in 1w 2d")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.In == nil || cmd.In.Window != "1w 2d" {
		t.Fatalf("unexpected in args: %+v", cmd.In)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"/", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"/set", ErrCodeInvalidArgument},
		{"/in   ", ErrCodeInvalidArgument},
		{"/clear now", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/set tomorrow-ish")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Set: func(a SetArgs) (Result, error) {
			called = true
			if a.Date != "tomorrow-ish" {
				t.Fatalf("unexpected date: %q", a.Date)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteNoArgCommands(t *testing.T) {
	var cleared, toggled bool
	handlers := Handlers{
		Clear: func() (Result, error) { cleared = true; return Result{}, nil },
		Debug: func() (Result, error) { toggled = true; return Result{}, nil },
	}
	for _, in := range []string{"/clear", "/debug"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		if _, err := Execute(cmd, handlers); err != nil {
			t.Fatalf("execute %q failed: %v", in, err)
		}
	}
	if !cleared || !toggled {
		t.Fatalf("expected both handlers, cleared=%v toggled=%v", cleared, toggled)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("in 3h")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
