package main

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"

	"segled.dev/gpio-segled/segled"
)

func TestClockText(t *testing.T) {
	rt := initRuntime(defaultSettings())

	// even second keeps the dot, leading zero becomes a space
	base := time.Date(2020, 1, 2, 9, 30, 0, 0, time.UTC)
	rt.clock = clockwork.NewFakeClockAt(base)
	assert.Equal(t, clockText(rt), " 9.30")

	// odd second blinks it off
	rt.clock = clockwork.NewFakeClockAt(base.Add(time.Second))
	assert.Equal(t, clockText(rt), " 930")

	// blinking disabled keeps the dot on odd seconds too
	rt.settings.settings[sBlinkDot] = false
	assert.Equal(t, clockText(rt), " 9.30")

	rt.settings.settings[sBlinkDot] = true
	rt.clock = clockwork.NewFakeClockAt(time.Date(2020, 1, 2, 15, 4, 2, 0, time.UTC))
	assert.Equal(t, clockText(rt), "15.04")
}

func TestRunClockMode(t *testing.T) {
	settings := defaultSettings()
	settings.settings[sClockMode] = true
	rt := initRuntime(settings)
	clock := clockwork.NewFakeClockAt(time.Date(2020, 1, 2, 12, 34, 0, 0, time.UTC))
	rt.clock = clock

	stub, lines := newStubPanel(8, 4)
	disp, err := segled.NewDisplay("panel0", lines, false)
	assert.NilError(t, err)
	rt.panels = append(rt.panels, &panel{disp: disp, stub: stub})

	wg.Add(1)
	go runClockMode(rt)

	// once the runner sleeps, the first write has landed
	clock.BlockUntil(1)
	assert.Equal(t, disp.Text(), "12.34")

	rt.signalQuit()
	clock.Advance(settings.GetDuration(sClockTick))
	wg.Wait()
}
