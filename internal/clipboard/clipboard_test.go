package clipboard

import (
	"testing"

	apperrors "github.com/criatividade-digital/revisa/internal/errors"
)

func TestCopierFuncAdapter(t *testing.T) {
	var got string
	c := CopierFunc(func(text string) error {
		got = text
		return nil
	})
	if err := c.Copy("prompt gerado"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if got != "prompt gerado" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestCopyOnUnsupportedPlatform(t *testing.T) {
	if Available() {
		t.Skip("clipboard backend present on this system")
	}
	err := Copy("x")
	if err == nil {
		t.Fatal("expected an error without a clipboard backend")
	}
	if apperrors.GetAppError(err).Code != apperrors.ErrCodeClipboardUnavailable {
		t.Errorf("expected CLIPBOARD_UNAVAILABLE, got %v", err)
	}
}
