// Package clipboard wraps the system clipboard behind a small interface
// so the prompt-building flow can treat copying as a best-effort side
// effect.
package clipboard

import (
	"runtime"

	atotto "github.com/atotto/clipboard"

	apperrors "github.com/criatividade-digital/revisa/internal/errors"
)

// Copier writes text to some clipboard. The form controller takes one of
// these so tests can capture copies without touching the real clipboard.
type Copier interface {
	Copy(text string) error
}

// CopierFunc adapts a function to the Copier interface.
type CopierFunc func(text string) error

// Copy implements Copier.
func (f CopierFunc) Copy(text string) error { return f(text) }

// System returns a Copier backed by the OS clipboard.
func System() Copier {
	return CopierFunc(Copy)
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	if atotto.Unsupported {
		return unavailable()
	}
	if err := atotto.WriteAll(text); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeClipboardUnavailable,
			"falha ao copiar para a área de transferência")
	}
	return nil
}

// Available reports whether a clipboard backend exists on this system.
func Available() bool {
	return !atotto.Unsupported
}

func unavailable() *apperrors.AppError {
	msg := "nenhuma área de transferência disponível"
	if runtime.GOOS == "linux" {
		msg = "nenhum utilitário de área de transferência encontrado (instale xclip, xsel ou wl-clipboard)"
	}
	return apperrors.NewAppError(apperrors.ErrCodeClipboardUnavailable, msg).
		WithContext("os", runtime.GOOS)
}
