/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Line splitter
 */

package logger

import (
	"bytes"
)

// LineWriter implements io.Writer and io.Closer interfaces.
// It splits the stream into text lines and calls Func for
// each complete line, without the trailing '\n'
//
// Close flushes the last incomplete line, if any
type LineWriter struct {
	Func func([]byte) // write-line callback
	buf  bytes.Buffer // incomplete line
}

// Write implements io.Writer interface
func (lw *LineWriter) Write(text []byte) (int, error) {
	n := len(text)

	for {
		i := bytes.IndexByte(text, '\n')
		if i < 0 {
			lw.buf.Write(text)
			return n, nil
		}

		line := text[:i]
		if lw.buf.Len() > 0 {
			lw.buf.Write(line)
			line = lw.buf.Bytes()
		}

		lw.Func(line)
		lw.buf.Reset()
		text = text[i+1:]
	}
}

// Close implements io.Closer interface
func (lw *LineWriter) Close() error {
	if lw.buf.Len() > 0 {
		lw.Func(lw.buf.Bytes())
		lw.buf.Reset()
	}
	return nil
}
