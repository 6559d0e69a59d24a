/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Logger tests
 */

package logger

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenPrinting/ippcodec"
)

func TestParseLevels(t *testing.T) {
	levels, err := ParseLevels("error, trace-ipp")
	require.NoError(t, err)
	assert.Equal(t, LogError|LogInfo|LogDebug|LogTraceIPP, levels)

	levels, err = ParseLevels("all")
	require.NoError(t, err)
	assert.Equal(t, LogAll, levels)

	levels, err = ParseLevels("")
	require.NoError(t, err)
	assert.Equal(t, LogLevel(0), levels)

	_, err = ParseLevels("info,verbose")
	assert.Error(t, err)
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LogError|LogInfo)

	l.Error('!', "failed: %d", 1)
	l.Info(' ', "hello")
	l.Debug(' ', "hidden")

	assert.Equal(t, "! failed: 1\n  hello\n", buf.String())
}

func TestLoggerNil(t *testing.T) {
	var l *Logger

	assert.False(t, l.Enabled(LogAll))
	assert.NotPanics(t, func() {
		l.Info(' ', "nothing")
		l.Begin().Debug(' ', "nothing").Dump(LogDebug, []byte{1}).Commit()
		l.Close()
	})
}

func TestLoggerCc(t *testing.T) {
	var main, console bytes.Buffer
	l := NewWriterLogger(&main, LogAll).
		Cc(NewWriterLogger(&console, LogError))

	l.Begin().
		Error('!', "bad").
		Debug(' ', "details").
		Commit()

	assert.Equal(t, "! bad\n  details\n", main.String())
	assert.Equal(t, "! bad\n", console.String())
}

func TestLoggerDump(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LogDebug)

	l.Dump(LogDebug, []byte("0123456789abcdef\x01"))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "  0000: 30 31 32 33:34 35 36 37:38 39 61 62:63 64 65 66: 0123456789abcdef",
		lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  0010: 01 "))
	assert.True(t, strings.HasSuffix(lines[1], " ."))
}

func TestLoggerIpp(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LogTraceIPP)

	m := ippcodec.NewRequest(ippcodec.DefaultVersion,
		ippcodec.OpGetPrinterAttributes, 3)
	m.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute(ippcodec.AttrCharset, ippcodec.Charset("utf-8")))

	l.Begin().IppRequest(LogTraceIPP, '>', m).Commit()

	out := buf.String()
	assert.Contains(t, out, "> {\n")
	assert.Contains(t, out, ">     OPERATION Get-Printer-Attributes\n")
	assert.Contains(t, out, `>     ATTR "attributes-charset" charset: utf-8`)

	// Disabled level produces nothing
	buf.Reset()
	l.Begin().IppResponse(LogDebug, '<', m).Commit()
	assert.Empty(t, buf.String())
}

func TestLineWriter(t *testing.T) {
	var lines []string
	lw := LineWriter{Func: func(line []byte) {
		lines = append(lines, string(line))
	}}

	io.WriteString(&lw, "one\ntw")
	io.WriteString(&lw, "o\n\nthree")
	lw.Close()

	assert.Equal(t, []string{"one", "two", "", "three"}, lines)
}

func TestLoggerRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.log")

	l := NewFileLogger(path, LogInfo, 64, 2)
	defer l.Close()

	for i := 0; i < 10; i++ {
		l.Info(' ', "line %d, long enough to trigger rotation", i)
	}

	backup := path + ".0.gz"
	require.FileExists(t, backup)

	f, err := os.Open(backup)
	require.NoError(t, err)
	defer f.Close()

	r, err := gzip.NewReader(f)
	require.NoError(t, err)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), "long enough to trigger rotation")

	assert.NoFileExists(t, path+".2.gz")
}
