package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "validation error",
			code:    "E001",
			wantMsg: "Malformed virtual node",
			wantCat: CategoryValidation,
		},
		{
			name:    "lifecycle error",
			code:    "E010",
			wantMsg: "Lifecycle hook failed",
			wantCat: CategoryLifecycle,
		},
		{
			name:    "host error",
			code:    "E020",
			wantMsg: "Host tree operation failed",
			wantCat: CategoryHost,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "tree.json")
	if err.Message != `file "tree.json" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != err.Message {
		t.Errorf("Error() = %q, want %q", err.Error(), err.Message)
	}
}

func TestErrorString(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New("E010").WithComponent("Counter").WithDetail("DidMount returned an error").Wrap(cause)

	got := err.Error()
	want := "E010: Lifecycle hook failed (Counter): DidMount returned an error: boom"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrapAndIs(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := fmt.Errorf("mount: %w", New("E020").Wrap(cause))

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !HasCode(err, "E020") {
		t.Error("HasCode(E020) = false, want true")
	}
	if HasCode(err, "E001") {
		t.Error("HasCode(E001) = true, want false")
	}

	var ve *VtreeError
	if !As(err, &ve) {
		t.Fatal("As should find *VtreeError")
	}
	if ve.Category != CategoryHost {
		t.Errorf("Category = %q, want %q", ve.Category, CategoryHost)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E020") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E001")
	if got := FromError(orig, "E020"); got != orig {
		t.Error("FromError should return an existing *VtreeError unchanged")
	}

	plain := fmt.Errorf("plain")
	got := FromError(plain, "E031")
	if got.Code != "E031" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E001").
		WithPath("div > ul > li[2]").
		WithDetail("element node has an empty tag").
		WithSuggestion("Pass a tag name to vdom.H")

	out := err.Format()
	for _, want := range []string{
		"ERROR E001: Malformed virtual node",
		"at div > ul > li[2]",
		"element node has an empty tag",
		"Hint: Pass a tag name to vdom.H",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E001").WithPath("div")
	if got := err.FormatCompact(); got != "div: E001: Malformed virtual node" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E010").WithComponent("Clock").Wrap(fmt.Errorf("tick"))
	got := err.FormatJSON()
	for _, want := range []string{`"code":"E010"`, `"category":"lifecycle"`, `"component":"Clock"`, `"cause":"tick"`} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatJSON() missing %s: %s", want, got)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, line := range lines {
		if len(line) > 20 {
			t.Errorf("line too long: %q", line)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText of empty string should be nil")
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("E021"); !ok {
		t.Error("E021 should be registered")
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("unexpected template for unknown code")
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", New("E030"))
	if got := CodeOf(wrapped); got != "E030" {
		t.Errorf("CodeOf(wrapped) = %q, want E030", got)
	}
	if got := CodeOf(stderrors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", got)
	}
}
