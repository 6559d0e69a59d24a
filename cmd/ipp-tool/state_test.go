/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer state tests
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenPrinting/ippcodec/logger"
)

func TestPrinterState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "printer.state")

	state := LoadPrinterState(path, nil)
	assert.Equal(t, 0, state.LastJobID)

	assert.Equal(t, 1, state.NextJobID())
	assert.Equal(t, 2, state.NextJobID())
	state.SetDNSSdName("Office", "Office (1)")

	state = LoadPrinterState(path, nil)
	assert.Equal(t, 2, state.LastJobID)
	assert.Equal(t, "Office", state.DNSSdName)
	assert.Equal(t, "Office (1)", state.DNSSdOverride)
	assert.Equal(t, 3, state.NextJobID())
}

func TestPrinterStateBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "printer.state")
	require.NoError(t, os.WriteFile(path,
		[]byte("[printer]\nlast-job-id = many\ndns-sd-name = Office\n"), 0644))

	var buf bytes.Buffer
	log := logger.NewWriterLogger(&buf, logger.LogAll)

	state := LoadPrinterState(path, log)
	assert.Equal(t, 0, state.LastJobID)
	assert.Equal(t, "Office", state.DNSSdName)
	assert.Contains(t, buf.String(), `printer.state: last-job-id: invalid value "many"`)
}
