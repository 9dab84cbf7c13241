package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"segled.dev/gpio-segled/periphlines"
	"segled.dev/gpio-segled/rpiolines"
	"segled.dev/gpio-segled/segled"
)

// gpio-segled -config={config file}

func buildPanels(rt *runtimeConfig) error {
	sim := rt.settings.GetBool(sSim)
	for _, dc := range rt.settings.displays {
		var (
			lines  segled.Lines
			closer func() error
			stub   *stubPanel
		)

		provider := dc.provider
		if sim && provider != "stub" {
			log.Printf("display %s: simulating %s provider", dc.name, provider)
			provider = "stub"
		}

		switch provider {
		case "stub":
			nseg := len(dc.segPins)
			if nseg == 0 {
				nseg = len(dc.segNames)
			}
			ndig := len(dc.digitPins)
			if ndig == 0 {
				ndig = len(dc.digitNames)
			}
			stub, lines = newStubPanel(nseg, ndig)
		case "rpio":
			set, err := rpiolines.Open(rpiolines.Config{
				SegmentPins:       dc.segPins,
				DigitPins:         dc.digitPins,
				ActiveLowSegments: dc.activeLowSegments,
				ActiveLowDigits:   dc.activeLowDigits,
			})
			if err != nil {
				return err
			}
			lines, closer = set.Lines(), set.Close
		case "periph":
			set, err := periphlines.Open(periphlines.Config{
				SegmentPins:       dc.segNames,
				DigitPins:         dc.digitNames,
				ActiveLowSegments: dc.activeLowSegments,
				ActiveLowDigits:   dc.activeLowDigits,
			})
			if err != nil {
				return err
			}
			lines, closer = set.Lines(), set.Close
		}

		disp, err := segled.NewDisplay(dc.name, lines, dc.segAdjust)
		if err != nil {
			if closer != nil {
				closer()
			}
			return err
		}
		rt.panels = append(rt.panels, &panel{
			disp:    disp,
			scanner: segled.NewScanner(disp, rt.clock),
			closer:  closer,
			stub:    stub,
		})
	}
	return nil
}

// teardownPanels stops the scanners first, then releases the pins.
func teardownPanels(rt *runtimeConfig) {
	for _, p := range rt.panels {
		p.scanner.Stop()
		if p.closer != nil {
			if err := p.closer(); err != nil {
				log.Printf("display %s: %v", p.disp.Name(), err)
			}
		}
	}
}

func main() {
	configFile := flag.String("config", "segled.json", "config file")
	flag.Parse()

	settings := initSettings(*configFile)
	setupLogging(settings)
	settings.Dump()

	rt := initRuntime(settings)
	if err := buildPanels(rt); err != nil {
		teardownPanels(rt)
		log.Fatal(err)
	}

	for _, p := range rt.panels {
		p.scanner.Start()
	}

	// wait on our three workers: config service, clock mode, simulator
	wg.Add(3)
	go runConfigService(rt)
	go runClockMode(rt)
	go runSimPanel(rt)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		rt.signalQuit()
	}()

	<-rt.comms.quit
	wg.Wait()
	teardownPanels(rt)
}
