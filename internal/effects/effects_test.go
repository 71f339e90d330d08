// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/termfolio/termfolio/surface"
	"github.com/termfolio/termfolio/transition"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func textAt(buf surface.Buffer, x, y, n int) string {
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, buf[y][x+i].Ch)
	}
	return string(out)
}

func TestShuffleRevealsExactTextAfterDuration(t *testing.T) {
	eff := NewShuffle("HELLO", 2, 1, tcell.StyleDefault, 800*time.Millisecond).(*shuffleEffect)
	eff.Start(t0)

	buf := surface.NewBuffer(20, 4, tcell.StyleDefault)
	eff.Update(t0.Add(time.Second))
	eff.Apply(buf)

	if got := textAt(buf, 2, 1, 5); got != "HELLO" {
		t.Fatalf("revealed text = %q, want HELLO", got)
	}
	if eff.Active() {
		t.Fatal("effect still active after full reveal")
	}
}

func TestShuffleChurnsUnrevealedRunes(t *testing.T) {
	eff := NewShuffle("HELLO", 0, 0, tcell.StyleDefault, 800*time.Millisecond).(*shuffleEffect)
	eff.Start(t0)

	buf := surface.NewBuffer(10, 1, tcell.StyleDefault)
	eff.Update(t0) // nothing revealed yet
	eff.Apply(buf)

	got := textAt(buf, 0, 0, 5)
	if got == "HELLO" {
		t.Fatal("text fully revealed at progress 0")
	}
	for _, r := range got {
		if r != ' ' && (r < brailleBase || r >= brailleBase+brailleCount) {
			t.Fatalf("unrevealed rune %q is not a braille block", r)
		}
	}
}

func TestShuffleRevealIsLeftToRight(t *testing.T) {
	eff := NewShuffle("ABCD", 0, 0, tcell.StyleDefault, 1000*time.Millisecond).(*shuffleEffect)
	eff.Start(t0)
	eff.Update(t0.Add(500 * time.Millisecond))

	buf := surface.NewBuffer(10, 1, tcell.StyleDefault)
	eff.Apply(buf)
	if buf[0][0].Ch != 'A' || buf[0][1].Ch != 'B' {
		t.Fatalf("first half not locked: %q%q", buf[0][0].Ch, buf[0][1].Ch)
	}
}

func TestTypewriterTypesAtConfiguredCadence(t *testing.T) {
	eff := NewTypewriter("hi there", 1, 0, tcell.StyleDefault, 100*time.Millisecond).(*typewriterEffect)
	eff.Start(t0)

	buf := surface.NewBuffer(20, 1, tcell.StyleDefault)
	eff.Update(t0.Add(350 * time.Millisecond))
	eff.Apply(buf)
	if got := textAt(buf, 1, 0, 3); got != "hi " {
		t.Fatalf("typed prefix = %q, want \"hi \"", got)
	}

	eff.Update(t0.Add(10 * time.Second))
	eff.Apply(buf)
	if got := textAt(buf, 1, 0, 8); got != "hi there" {
		t.Fatalf("final text = %q", got)
	}
	if eff.Active() {
		t.Fatal("typewriter still active after completing")
	}
}

func TestBlobsMoveAndStayInBounds(t *testing.T) {
	eff := NewBlobs(4, tcell.NewRGBColor(100, 50, 200), 0.4).(*blobsEffect)
	buf := surface.NewBuffer(40, 12, tcell.StyleDefault.Background(tcell.ColorBlack))

	eff.Apply(buf) // learn the buffer size
	before := make([]blob, len(eff.blobs))
	copy(before, eff.blobs)

	eff.Update(t0)
	eff.Update(t0.Add(500 * time.Millisecond))
	eff.Apply(buf)

	var moved bool
	for i, b := range eff.blobs {
		if b.x != before[i].x || b.y != before[i].y {
			moved = true
		}
		if b.x < 0 || b.x > 40 || b.y < 0 || b.y > 12 {
			t.Fatalf("blob %d escaped: (%g,%g)", i, b.x, b.y)
		}
	}
	if !moved {
		t.Fatal("no blob moved")
	}
}

func TestTimelineEasesBetweenValues(t *testing.T) {
	tl := NewTimeline(0)
	tl.AnimateTo("fade", 1, time.Second, t0)

	if v := tl.Value("fade", t0); v != 0 {
		t.Fatalf("value at start = %g, want 0", v)
	}
	mid := tl.Value("fade", t0.Add(500*time.Millisecond))
	if mid <= 0 || mid >= 1 {
		t.Fatalf("midpoint value %g outside (0,1)", mid)
	}
	if v := tl.Value("fade", t0.Add(2*time.Second)); v != 1 {
		t.Fatalf("value past duration = %g, want 1", v)
	}
	if tl.IsAnimating("fade", t0.Add(2*time.Second)) {
		t.Fatal("still animating past duration")
	}
}

func TestTimelineRetargetsFromCurrentValue(t *testing.T) {
	tl := NewTimeline(0)
	tl.AnimateTo("v", 1, time.Second, t0)
	mid := tl.Value("v", t0.Add(500*time.Millisecond))

	tl.AnimateTo("v", 0, time.Second, t0.Add(500*time.Millisecond))
	start := tl.Value("v", t0.Add(500*time.Millisecond))
	if start != mid {
		t.Fatalf("retarget jumped: %g, want %g", start, mid)
	}
}

func TestManagerKeepsSettledTextPainted(t *testing.T) {
	m := NewManager()
	done := NewShuffle("X", 0, 0, tcell.StyleDefault, time.Millisecond).(*shuffleEffect)
	done.Start(t0)
	done.Update(t0.Add(time.Second)) // reveal finished
	m.Add(done)

	buf := surface.NewBuffer(5, 1, tcell.StyleDefault)
	m.Apply(buf)
	if buf[0][0].Ch != 'X' {
		t.Fatal("settled text vanished after the reveal finished")
	}
	if m.AnyActive() {
		t.Fatal("AnyActive true with only settled effects")
	}
}

func TestManagerSkipsUnstartedEffects(t *testing.T) {
	m := NewManager()
	m.Add(NewShuffle("X", 0, 0, tcell.StyleDefault, time.Second))

	buf := surface.NewBuffer(5, 1, tcell.StyleDefault)
	m.Apply(buf)
	if buf[0][0].Ch != ' ' {
		t.Fatal("unstarted effect painted")
	}
}

func TestTimelineEasedOverrideIsExactlyLinear(t *testing.T) {
	tl := NewTimeline(0)
	tl.AnimateToEased("v", 1, time.Second, transition.EaseLinear, t0)
	if v := tl.Value("v", t0.Add(250*time.Millisecond)); v != 0.25 {
		t.Fatalf("linear value at 1/4 = %g, want 0.25", v)
	}
}

func TestBlobsAlphaFadesIn(t *testing.T) {
	eff := NewBlobs(1, tcell.NewRGBColor(100, 50, 200), 0.4).(*blobsEffect)
	buf := surface.NewBuffer(40, 12, tcell.StyleDefault)
	eff.Apply(buf) // learn the buffer size

	eff.Update(t0)
	eff.Update(t0.Add(100 * time.Millisecond))
	early := eff.curAlpha
	if early >= 0.4 {
		t.Fatalf("alpha at 100ms = %g, want below full strength", early)
	}

	eff.Update(t0.Add(500 * time.Millisecond))
	if eff.curAlpha <= early {
		t.Fatalf("alpha not rising: %g then %g", early, eff.curAlpha)
	}

	eff.Update(t0.Add(1000 * time.Millisecond))
	eff.Update(t0.Add(1900 * time.Millisecond))
	if eff.curAlpha != 0.4 {
		t.Fatalf("alpha after fade-in = %g, want 0.4", eff.curAlpha)
	}
}

func TestRegistryBuildsKnownEffects(t *testing.T) {
	for _, id := range []string{"shuffle", "typewriter", "blobs"} {
		factory, ok := Lookup(id)
		if !ok {
			t.Fatalf("effect %q not registered", id)
		}
		eff, err := factory(Config{"text": "x"})
		if err != nil {
			t.Fatalf("build %q: %v", id, err)
		}
		if eff.ID() != id {
			t.Fatalf("effect reports ID %q, want %q", eff.ID(), id)
		}
	}
}
