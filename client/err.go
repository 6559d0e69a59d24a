/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Client errors
 */

package client

import (
	"fmt"
)

// HTTPError is returned when server replies with HTTP status
// other than 200 OK. Such a reply carries no IPP message
type HTTPError struct {
	StatusCode int    // HTTP status code, i.e. 404
	Status     string // HTTP status line, i.e. "404 Not Found"
}

// Error returns error string
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP: %s", e.Status)
}
