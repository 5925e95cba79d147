package review

import (
	"os"
	"testing"
)

func TestIsTTY(t *testing.T) {
	// TTY or not depends on how the tests run; only require that the
	// answer is stable and consistent with the convenience wrapper.
	stdoutTTY := IsTTY(os.Stdout.Fd())

	if got := IsTTY(os.Stdout.Fd()); got != stdoutTTY {
		t.Errorf("IsTTY(stdout) not stable: %v then %v", stdoutTTY, got)
	}

	if got := IsOutputTerminal(); got != stdoutTTY {
		t.Errorf("IsOutputTerminal() = %v, IsTTY(stdout) = %v", got, stdoutTTY)
	}
}
