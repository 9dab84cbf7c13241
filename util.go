package main

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"segled.dev/gpio-segled/segled"
)

var wg sync.WaitGroup

// commChannels ties the runner goroutines together.
type commChannels struct {
	quit chan struct{}
}

// panel is one configured display: the engine state, its scanner and
// the provider teardown.  stub is non-nil for the "stub" provider so
// the simulator can read the levels back.
type panel struct {
	disp    *segled.Display
	scanner *segled.Scanner
	closer  func() error
	stub    *stubPanel
}

type runtimeConfig struct {
	settings *configSettings
	clock    clockwork.Clock
	comms    commChannels
	panels   []*panel

	quitOnce sync.Once
}

func initRuntime(settings *configSettings) *runtimeConfig {
	return &runtimeConfig{
		settings: settings,
		clock:    clockwork.NewRealClock(),
		comms:    commChannels{quit: make(chan struct{})},
	}
}

// signalQuit tells every runner to wind down.  Safe to call from
// multiple places (signal handler, simulator keypress, fatal setup).
func (rt *runtimeConfig) signalQuit() {
	rt.quitOnce.Do(func() { close(rt.comms.quit) })
}

func (rt *runtimeConfig) findPanel(name string) *panel {
	for _, p := range rt.panels {
		if p.disp.Name() == name {
			return p
		}
	}
	return nil
}
