/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Common paths
 */

package main

const (
	// PathConfDir defines path to configuration directory
	PathConfDir = "/etc/ipp-tool"

	// PathProgState defines path to program state directory
	PathProgState = "/var/ipp-tool"

	// PathSpoolDir defines path to directory where received
	// jobs are stored
	PathSpoolDir = PathProgState + "/spool"

	// PathStateFile defines path to the printer state file
	PathStateFile = PathProgState + "/printer.state"

	// PathLogDir defines path to log directory
	PathLogDir = "/var/log/ipp-tool"

	// PathLogFile defines path to the main log file
	PathLogFile = PathLogDir + "/main.log"
)
