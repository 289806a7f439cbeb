//go:build !tinygo

package hal

import "testing"

func TestHostFramebufferPresentPublishesFrame(t *testing.T) {
	fb := newHostFramebuffer(2, 1)
	dst := make([]byte, 2*1*4)

	if _, ok := fb.snapshotRGBA(dst, 0); ok {
		t.Fatal("snapshot before Present reported a new frame")
	}

	fb.ClearRGB(255, 0, 0)
	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	frames, ok := fb.snapshotRGBA(dst, 0)
	if !ok || frames != 1 {
		t.Fatalf("snapshot = %d, %v, want 1, true", frames, ok)
	}
	if dst[0] != 255 || dst[1] != 0 || dst[2] != 0 || dst[3] != 255 {
		t.Fatalf("pixel 0 = %v, want red", dst[:4])
	}

	// Drawing without Present leaves the published frame alone.
	fb.ClearRGB(0, 0, 255)
	if _, ok := fb.snapshotRGBA(dst, frames); ok {
		t.Fatal("snapshot reported a frame that was never presented")
	}
}
