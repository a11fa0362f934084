package key

import "testing"

func TestModifierBits(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModShift)

	if !m.HasCtrl() || !m.HasShift() {
		t.Errorf("expected Ctrl+Shift, got %v", m)
	}
	if m.HasAlt() || m.HasMeta() {
		t.Errorf("unexpected modifiers in %v", m)
	}

	m = m.Without(ModCtrl)
	if m.HasCtrl() {
		t.Error("Without(ModCtrl) must clear Ctrl")
	}
	if !m.HasShift() {
		t.Error("Without(ModCtrl) must keep Shift")
	}

	if !ModNone.IsEmpty() {
		t.Error("ModNone must be empty")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModAlt, "Ctrl+Alt"},
		{ModCtrl | ModShift | ModMeta, "Ctrl+Shift+Meta"},
	}

	for _, tc := range tests {
		if got := tc.mods.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
