package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// settings keys
const (
	sListen    = "listen"
	sLogFile   = "logFile"
	sLogSize   = "logMaxSizeMB"
	sLogCount  = "logBackups"
	sSim       = "sim"
	sClockMode = "clockMode"
	sBlinkDot  = "blinkDot"
	sClockTick = "clockTick"
	sSimTick   = "simTick"
)

// displayConfig is one panel's worth of wiring from the config file.
type displayConfig struct {
	name              string
	provider          string // "rpio", "periph" or "stub"
	segPins           []int
	digitPins         []int
	segNames          []string
	digitNames        []string
	segAdjust         bool
	activeLowSegments bool
	activeLowDigits   bool
}

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
	displays []displayConfig
}

func defaultSettings() *configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sListen] = ":8080"
	s[sLogFile] = ""
	s[sLogSize] = 10
	s[sLogCount] = 3
	s[sClockMode] = false
	s[sBlinkDot] = true
	s[sClockTick], _ = time.ParseDuration("250ms")
	s[sSimTick], _ = time.ParseDuration("50ms")

	// no GPIO hardware off-Pi, default to the simulator there
	s[sSim] = runtime.GOARCH != "arm" && runtime.GOARCH != "arm64"

	return &configSettings{settings: s}
}

// defaultDisplay is what you get with no displays configured: one
// simulated 4-digit panel with a decimal point line.
func defaultDisplay() displayConfig {
	return displayConfig{
		name:      "panel0",
		provider:  "stub",
		segPins:   []int{0, 1, 2, 3, 4, 5, 6, 7},
		digitPins: []int{8, 9, 10, 11},
	}
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try "true" and "false"
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal = true
				case "false":
					bVal = false
				default:
					return err
				}
				err = nil
			}
			s.settings[k] = bVal
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return err
		}
	}

	return s.displaysFromJSON(data)
}

func intArray(data []byte, keys ...string) []int {
	var out []int
	jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if n, err := strconv.Atoi(string(value)); err == nil {
			out = append(out, n)
		}
	}, keys...)
	return out
}

func stringArray(data []byte, keys ...string) []string {
	var out []string
	jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if dataType == jsonparser.String {
			out = append(out, string(value))
		}
	}, keys...)
	return out
}

func (s *configSettings) displaysFromJSON(data []byte) error {
	var parseErr error
	jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if parseErr != nil {
			return
		}
		dc := displayConfig{provider: "stub"}
		if name, err := jsonparser.GetString(value, "name"); err == nil {
			dc.name = name
		} else {
			dc.name = fmt.Sprintf("panel%d", len(s.displays))
		}
		if prov, err := jsonparser.GetString(value, "provider"); err == nil {
			dc.provider = prov
		}
		dc.segPins = intArray(value, "segPins")
		dc.digitPins = intArray(value, "digitPins")
		dc.segNames = stringArray(value, "segNames")
		dc.digitNames = stringArray(value, "digitNames")
		dc.segAdjust, _ = jsonparser.GetBoolean(value, "segAdjust")
		dc.activeLowSegments, _ = jsonparser.GetBoolean(value, "activeLowSegments")
		dc.activeLowDigits, _ = jsonparser.GetBoolean(value, "activeLowDigits")

		switch dc.provider {
		case "rpio", "stub":
			if n := len(dc.segPins); n != 7 && n != 8 {
				parseErr = fmt.Errorf("display %s: want 7 or 8 segPins, got %d", dc.name, n)
				return
			}
			if len(dc.digitPins) < 1 {
				parseErr = fmt.Errorf("display %s: no digitPins", dc.name)
				return
			}
		case "periph":
			if n := len(dc.segNames); n != 7 && n != 8 {
				parseErr = fmt.Errorf("display %s: want 7 or 8 segNames, got %d", dc.name, n)
				return
			}
			if len(dc.digitNames) < 1 {
				parseErr = fmt.Errorf("display %s: no digitNames", dc.name)
				return
			}
		default:
			parseErr = fmt.Errorf("display %s: unknown provider %q", dc.name, dc.provider)
			return
		}

		s.displays = append(s.displays, dc)
	}, "displays")

	if parseErr != nil {
		return parseErr
	}
	if len(s.displays) == 0 {
		s.displays = append(s.displays, defaultDisplay())
	}
	return nil
}

func initSettings(configFile string) *configSettings {
	log.Println("initSettings")

	s := defaultSettings()

	data, err := os.ReadFile(configFile)
	if err != nil {
		log.Printf("no config file at '%s', using defaults", configFile)
		s.displays = append(s.displays, defaultDisplay())
		return s
	}

	log.Printf("reading configuration from '%s'", configFile)
	if err := s.settingsFromJSON(data); err != nil {
		log.Fatal(err.Error())
	}

	return s
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) Dump() {
	for k, v := range s.settings {
		log.Printf("%s : %T: %v", k, v, v)
	}
	for _, d := range s.displays {
		log.Printf("display %s (%s): %d segments, %d digits, segAdjust=%v",
			d.name, d.provider, len(d.segPins)+len(d.segNames),
			len(d.digitPins)+len(d.digitNames), d.segAdjust)
	}
}
