/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Command line and output tests
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenPrinting/ippcodec"
)

func TestParseArgv(t *testing.T) {
	type testData struct {
		argv  []string // Command line
		mode  RunMode  // Expected mode
		args  int      // Expected count of mode arguments
		trace bool     // Expected trace flag
		err   string   // Expected error
	}

	tests := []testData{
		{argv: []string{"server"}, mode: RunServer},
		{argv: []string{"-trace", "get-attrs", "ipp://h/", "printer-name", "printer-state"},
			mode: RunGetAttrs, args: 3, trace: true},
		{argv: []string{"print", "ipp://h/", "file.pdf"}, mode: RunPrint, args: 2},
		{argv: []string{"txt", "ipp://h/"}, mode: RunTxt, args: 1},
		{argv: []string{"usb"}, mode: RunUsb},
		{argv: []string{"check"}, mode: RunCheck},
		{argv: []string{}, err: "Run mode missed"},
		{argv: []string{"-v", "check"}, err: "Invalid option -v"},
		{argv: []string{"scan"}, err: "Invalid run mode scan"},
		{argv: []string{"get-attrs"}, err: "get-attrs: missed arguments"},
		{argv: []string{"print", "ipp://h/"}, err: "print: missed arguments"},
		{argv: []string{"txt", "ipp://h/", "x"}, err: "txt: too many arguments"},
	}

	for _, test := range tests {
		params, err := parseArgv(test.argv)
		if test.err != "" {
			assert.EqualError(t, err, test.err, "%v", test.argv)
			continue
		}

		require.NoError(t, err, "%v", test.argv)
		assert.Equal(t, test.mode, params.Mode, "%v", test.argv)
		assert.Len(t, params.Args, test.args, "%v", test.argv)
		assert.Equal(t, test.trace, params.Trace, "%v", test.argv)
	}
}

func TestRunModeString(t *testing.T) {
	assert.Equal(t, "get-attrs", RunGetAttrs.String())
	assert.Equal(t, "server", RunServer.String())
	assert.Equal(t, "unknown (42)", RunMode(42).String())
}

func TestPrintAttrs(t *testing.T) {
	attrs := ippcodec.Attributes{
		ippcodec.MakeAttribute("printer-name", ippcodec.Name("lp")),
		ippcodec.MakeAttributeList("sides-supported",
			ippcodec.Keyword("one-sided"), ippcodec.Keyword("two-sided-long-edge")),
	}

	var buf bytes.Buffer
	printAttrs(&buf, attrs)

	assert.Equal(t,
		"printer-name (nameWithoutLanguage): lp\n"+
			"sides-supported (keyword): one-sided, two-sided-long-edge\n",
		buf.String())
}

func TestPrinterURI(t *testing.T) {
	conf := DefaultConfiguration()
	conf.HTTPPort = 8631
	assert.Equal(t, "ipp://localhost:8631/ipp/print", printerURI(conf))
}

func TestDocumentFormat(t *testing.T) {
	type testData struct {
		data   string // File content
		format string // Expected format
	}

	tests := []testData{
		{"%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n", "application/pdf"},
		{"\xff\xd8\xff\xe0\x00\x10JFIF\x00", "image/jpeg"},
		{"Hello, world\n", "text/plain"},
	}

	dir := t.TempDir()
	for i, test := range tests {
		path := filepath.Join(dir, strconv.Itoa(i))
		require.NoError(t, os.WriteFile(path, []byte(test.data), 0644))

		format, err := documentFormat(path)
		require.NoError(t, err)
		assert.Equal(t, test.format, format)
	}

	_, err := documentFormat(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
