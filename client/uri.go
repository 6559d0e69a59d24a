/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer URI handling
 */

package client

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/OpenPrinting/ippcodec"
)

// NormalizeURI parses printer URI and returns two forms of it:
//   - the IPP form (ipp:// or ipps://), used as the printer-uri
//     attribute value
//   - the HTTP form (http:// or https://), used to send requests
//
// Both http and ipp schemes are accepted on input. If URI has no
// port, the IPP port 631 is used
func NormalizeURI(uri string) (ippURI, httpURL string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid printer URI: %w", err)
	}

	if u.Host == "" {
		return "", "", fmt.Errorf("invalid printer URI %q: missing host", uri)
	}

	var ippScheme, httpScheme string
	switch strings.ToLower(u.Scheme) {
	case "ipp", "http":
		ippScheme, httpScheme = "ipp", "http"
	case "ipps", "https":
		ippScheme, httpScheme = "ipps", "https"
	default:
		return "", "", fmt.Errorf("invalid printer URI %q: unsupported scheme %q",
			uri, u.Scheme)
	}

	if u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(),
			strconv.Itoa(ippcodec.DefaultPort))
	}

	u.Scheme = ippScheme
	ippURI = u.String()

	u.Scheme = httpScheme
	httpURL = u.String()

	return ippURI, httpURL, nil
}
