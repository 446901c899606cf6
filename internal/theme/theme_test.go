package theme

import (
	"errors"
	"slices"
	"testing"
	"time"

	"scroll-scene/internal/content"
	"scroll-scene/internal/core"
	"scroll-scene/internal/observe"
	"scroll-scene/internal/page"
	"scroll-scene/internal/tween"
)

var palettes = map[string]content.Theme{
	"a": {Primary: core.MustHex("#100000"), Secondary: core.MustHex("#200000"), Background: core.MustHex("#300000")},
	"b": {Primary: core.MustHex("#001000"), Secondary: core.MustHex("#002000"), Background: core.MustHex("#003000")},
	"c": {Primary: core.MustHex("#000010"), Secondary: core.MustHex("#000020"), Background: core.MustHex("#000030")},
	"d": {Primary: core.MustHex("#101010"), Secondary: core.MustHex("#202020"), Background: core.MustHex("#303030")},
}

func stacked(ids ...string) func() []observe.Target {
	return func() []observe.Target {
		out := make([]observe.Target, len(ids))
		for i, id := range ids {
			out[i] = observe.Target{ID: id, Top: float64(i) * 800, Height: 800}
		}
		return out
	}
}

func TestScrollingTopToBottomVisitsThemesInOrder(t *testing.T) {
	var style page.Style
	engine := tween.NewEngine()
	var seen []string
	tr := New(&style, palettes, engine, stacked("a", "b", "c", "d"), OnChange(func(id string) { seen = append(seen, id) }))
	tr.Observe(0, 800)
	for y := 0.0; y <= 2400; y += 20 {
		tr.Check(y, 800)
		engine.Step(16 * time.Millisecond)
	}
	if !slices.Equal(seen, []string{"a", "b", "c", "d"}) {
		t.Fatalf("transitions = %v", seen)
	}
	if tr.Active() != "d" {
		t.Fatalf("active = %q", tr.Active())
	}
	engine.Step(Duration)
	if style.Background != palettes["d"].Background {
		t.Fatalf("background = %s", style.Background.Hex())
	}
}

func TestNewDominancePreemptsRunningFade(t *testing.T) {
	var style page.Style
	engine := tween.NewEngine()
	tr := New(&style, palettes, engine, stacked("a", "b"))
	if err := tr.TransitionTo("a"); err != nil {
		t.Fatal(err)
	}
	engine.Step(300 * time.Millisecond)
	if err := tr.TransitionTo("b"); err != nil {
		t.Fatal(err)
	}
	// Nine channels, one tween each: the fade to a must be gone.
	if got := engine.Active(); got != 9 {
		t.Fatalf("active tweens = %d, want 9", got)
	}
	engine.Step(Duration)
	if style.Primary != palettes["b"].Primary || style.Secondary != palettes["b"].Secondary {
		t.Fatalf("style = %+v", style)
	}
}

func TestUnknownThemeKeepsCurrent(t *testing.T) {
	style := page.Style{Background: core.MustHex("#123456")}
	engine := tween.NewEngine()
	tr := New(&style, palettes, engine, stacked("x"))
	tr.Observe(0, 800)
	if tr.Active() != "" || engine.Active() != 0 {
		t.Fatal("unknown section must not start a transition")
	}
	if err := tr.TransitionTo("x"); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("err = %v", err)
	}
	if style.Background != core.MustHex("#123456") {
		t.Fatal("style changed")
	}
}

func TestDisconnectLandsFade(t *testing.T) {
	var style page.Style
	engine := tween.NewEngine()
	tr := New(&style, palettes, engine, stacked("a"))
	tr.Observe(0, 800)
	engine.Step(100 * time.Millisecond)
	tr.Disconnect()
	if style.Background != palettes["a"].Background || engine.Active() != 0 {
		t.Fatalf("style=%+v active=%d", style, engine.Active())
	}
}

func TestResumeAdoptsThemeAlreadyOnScreen(t *testing.T) {
	a := palettes["a"]
	style := page.Style{Primary: a.Primary, Secondary: a.Secondary, Background: a.Background}
	engine := tween.NewEngine()
	var seen []string
	tr := New(&style, palettes, engine, stacked("a", "b"), Resume("a"), OnChange(func(id string) { seen = append(seen, id) }))
	tr.Observe(0, 800)
	if len(seen) != 0 || engine.Active() != 0 {
		t.Fatalf("resumed theme faded again: seen=%v active=%d", seen, engine.Active())
	}
	if tr.Active() != "a" {
		t.Fatalf("active = %q", tr.Active())
	}
	tr.Check(800, 800)
	if !slices.Equal(seen, []string{"b"}) {
		t.Fatalf("transitions = %v", seen)
	}
}

func TestResumeIgnoredWhenStyleDiffers(t *testing.T) {
	var style page.Style
	engine := tween.NewEngine()
	var seen []string
	tr := New(&style, palettes, engine, stacked("a"), Resume("a"), OnChange(func(id string) { seen = append(seen, id) }))
	tr.Observe(0, 800)
	if !slices.Equal(seen, []string{"a"}) || engine.Active() == 0 {
		t.Fatalf("seen=%v active=%d", seen, engine.Active())
	}
}
