package clipboard

import "testing"

func TestErrClipboardUnavailableIsDistinct(t *testing.T) {
	if ErrClipboardUnavailable == nil {
		t.Fatalf("expected a sentinel error")
	}
	if ErrClipboardUnavailable.Error() == "" {
		t.Fatalf("expected a non-empty error message")
	}
}
