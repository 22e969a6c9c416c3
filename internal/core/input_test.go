package core

import "testing"

func TestInputFrameMaskRoundTrip(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionFire)
	f.Set(ActionPause)

	back := FrameFromMask(f.Mask(), 16)

	for _, a := range []Action{ActionLeft, ActionFire, ActionPause} {
		if !back.Has(a) {
			t.Errorf("FrameFromMask lost %v", a)
		}
	}
	if back.Has(ActionRight) {
		t.Error("FrameFromMask set an action that was not in the mask")
	}
	if back.DeltaMs != 16 {
		t.Errorf("DeltaMs = %v, expected 16", back.DeltaMs)
	}
}

func TestInputFrameClearResetsDelta(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.DeltaMs = 20
	f.Clear()

	if f.Has(ActionRight) || f.DeltaMs != 0 {
		t.Errorf("Clear left state behind: %+v", f)
	}
}
