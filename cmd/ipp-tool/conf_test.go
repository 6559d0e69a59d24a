/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Configuration tests
 */

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenPrinting/ippcodec/logger"
)

// writeConf writes configuration file into the temporary directory
func writeConf(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), ConfFileName)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestConfLoad(t *testing.T) {
	path := writeConf(t, `
; ipp-tool configuration
[network]
  http-port = 8631
  dns-sd = disable
  interface = all

[logging]
  main-log = debug,trace-ipp
  console-log = error
  max-file-size = 2M
  max-backup-files = 3

[printer]
  description = /etc/ipp-tool/printer.yaml
  name = Office
  spool-dir = /tmp/spool/

[client]
  timeout = 1m30s
  request-id = 100

[unknown]
  key = value
`)

	conf := DefaultConfiguration()
	require.NoError(t, confLoadFile(&conf, path))

	assert.Equal(t, 8631, conf.HTTPPort)
	assert.False(t, conf.DNSSdEnable)
	assert.False(t, conf.LoopbackOnly)
	assert.Equal(t, logger.LogError|logger.LogInfo|logger.LogDebug|logger.LogTraceIPP,
		conf.LogMain)
	assert.Equal(t, logger.LogError, conf.LogConsole)
	assert.Equal(t, int64(2*1024*1024), conf.LogMaxFileSize)
	assert.Equal(t, uint(3), conf.LogMaxBackupFiles)
	assert.Equal(t, "/etc/ipp-tool/printer.yaml", conf.PrinterDescription)
	assert.Equal(t, "Office", conf.PrinterName)
	assert.Equal(t, "/tmp/spool", conf.SpoolDir)
	assert.Equal(t, 90*time.Second, conf.ClientTimeout)
	assert.Equal(t, uint32(100), conf.ClientRequestID)
}

func TestConfDefaults(t *testing.T) {
	conf := DefaultConfiguration()

	// Missing file is not an error
	path := filepath.Join(t.TempDir(), ConfFileName)
	require.NoError(t, confLoadFile(&conf, path))
	assert.Equal(t, DefaultConfiguration(), conf)

	// Keys not mentioned keep their values
	path = writeConf(t, "[network]\nhttp-port = 1631\n")
	require.NoError(t, confLoadFile(&conf, path))
	assert.Equal(t, 1631, conf.HTTPPort)
	assert.True(t, conf.DNSSdEnable)
	assert.Equal(t, 30*time.Second, conf.ClientTimeout)
}

func TestConfBadValues(t *testing.T) {
	type testData struct {
		text string // Configuration text
		err  string // Expected error, without file name
	}

	tests := []testData{
		{"[network]\nhttp-port = 0",
			"http-port: must be in range 1...65535"},
		{"[network]\nhttp-port = 65536",
			"http-port: must be in range 1...65535"},
		{"[network]\nhttp-port = http",
			`http-port: "http": invalid port`},
		{"[network]\ndns-sd = maybe",
			"dns-sd: must be disable or enable"},
		{"[network]\ninterface = eth0",
			"interface: must be all or loopback"},
		{"[logging]\nmain-log = info,verbose",
			`main-log: invalid log level "verbose"`},
		{"[logging]\nmax-file-size = 10G",
			`max-file-size: "10G": invalid size`},
		{"[logging]\nmax-file-size = 99999999999999999M",
			"max-file-size: size too large"},
		{"[logging]\nmax-backup-files = -1",
			`max-backup-files: "-1": invalid number`},
		{"[printer]\nspool-dir = ",
			"spool-dir: must not be empty"},
		{"[client]\ntimeout = soon",
			`timeout: "soon": invalid duration`},
		{"[client]\ntimeout = -5s",
			`timeout: "-5s": invalid duration`},
		{"[client]\nrequest-id = 0",
			"request-id: must not be 0"},
		{"[client]\nrequest-id = 4294967296",
			`request-id: "4294967296": invalid request ID`},
	}

	for _, test := range tests {
		path := writeConf(t, test.text)
		conf := DefaultConfiguration()
		err := confLoadFile(&conf, path)
		assert.EqualError(t, err, path+": "+test.err, test.text)
	}
}
