package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: %s", "gif")
	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v", err.Code)
	}
	if !strings.Contains(err.Error(), "gif") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("expected ';', found '}'")
	err := Wrap(ErrCodeParseFailed, cause, "parse source")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "expected ';'") {
		t.Errorf("Error() should include the cause: %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "missing")
	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}

	// Codes are found through wrapping layers.
	wrapped := Wrap(ErrCodeInternal, err, "outer")
	if !Is(wrapped, ErrCodeInternal) {
		t.Error("Is should match the outermost code")
	}

	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(New(ErrCodeRender, "boom")) != ErrCodeRender {
		t.Error("GetCode should return the code")
	}
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("GetCode on a plain error should be empty")
	}
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
}

func TestUserMessage(t *testing.T) {
	cause := stderrors.New("expected declaration, found 'if'")
	err := Wrap(ErrCodeParseFailed, cause, "parse source")

	msg := UserMessage(err)
	if !strings.Contains(msg, "expected declaration") {
		t.Errorf("UserMessage should carry the upstream diagnostics: %q", msg)
	}

	if UserMessage(stderrors.New("plain")) == "" {
		t.Error("UserMessage on a plain error should not be empty")
	}
}
