/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer persistent state
 */

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/OpenPrinting/ippcodec/logger"
	"gopkg.in/ini.v1"
)

// PrinterState manages the printer state that survives restarts
// (last allocated job ID, DNS-SD name after collision resolution)
type PrinterState struct {
	LastJobID     int    // Last allocated job ID
	DNSSdName     string // DNS-SD name, from printer description
	DNSSdOverride string // DNS-SD name after collision resolution

	lock sync.Mutex     // Access lock
	path string         // Path to the disk file
	log  *logger.Logger // Where errors go
}

// LoadPrinterState loads PrinterState from a disk file.
// A missing or broken file yields the initial state
func LoadPrinterState(path string, log *logger.Logger) *PrinterState {
	state := &PrinterState{path: path, log: log}

	inifile, err := ini.Load(state.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error('!', "STATE LOAD: %s", state.error("%s", err))
		}
		return state
	}

	if section, _ := inifile.GetSection("printer"); section != nil {
		if key, _ := section.GetKey("last-job-id"); key != nil {
			id, err := key.Int()
			if err != nil || id < 0 {
				log.Error('!', "STATE LOAD: %s",
					state.error("%s: invalid value %q", key.Name(), key.String()))
			} else {
				state.LastJobID = id
			}
		}

		state.DNSSdName = state.loadString(section, "dns-sd-name")
		state.DNSSdOverride = state.loadString(section, "dns-sd-override")
	}

	return state
}

// Load string, defaults to ""
func (state *PrinterState) loadString(section *ini.Section, name string) string {
	if key, _ := section.GetKey(name); key != nil {
		return key.String()
	}

	return ""
}

// NextJobID allocates the next job ID and saves the state
func (state *PrinterState) NextJobID() int {
	state.lock.Lock()
	state.LastJobID++
	if state.LastJobID <= 0 {
		state.LastJobID = 1
	}
	id := state.LastJobID
	state.lock.Unlock()

	state.Save()
	return id
}

// SetDNSSdName updates DNS-SD names and saves the state, if changed
func (state *PrinterState) SetDNSSdName(name, override string) {
	state.lock.Lock()
	changed := state.DNSSdName != name || state.DNSSdOverride != override
	state.DNSSdName, state.DNSSdOverride = name, override
	state.lock.Unlock()

	if changed {
		state.Save()
	}
}

// Save updates PrinterState on disk
func (state *PrinterState) Save() {
	state.lock.Lock()
	defer state.lock.Unlock()

	os.MkdirAll(filepath.Dir(state.path), 0755)

	inifile := ini.Empty()
	section, _ := inifile.NewSection("printer")
	section.NewKey("last-job-id", strconv.Itoa(state.LastJobID))

	if state.DNSSdName != "" {
		section.NewKey("dns-sd-name", state.DNSSdName)
	}

	if state.DNSSdOverride != "" {
		section.NewKey("dns-sd-override", state.DNSSdOverride)
	}

	err := inifile.SaveTo(state.path)
	if err != nil {
		state.log.Error('!', "STATE SAVE: %s", state.error("%s", err))
	}
}

// Format an error, related to the state file
func (state *PrinterState) error(format string, args ...interface{}) error {
	return fmt.Errorf(filepath.Base(state.path)+": "+format, args...)
}
