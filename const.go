/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Various constants
 */

package ippcodec

const (
	// ContentType is the HTTP content type for IPP messages
	ContentType = "application/ipp"

	// DefaultPort is the IANA-assigned IPP port
	DefaultPort = 631

	// msgPrintIndent used for indentation by message pretty-printer
	msgPrintIndent = "    "

	// headerSize is the size of the fixed message header
	headerSize = 8
)

// Attribute names used by requests and responses
const (
	AttrCharset                 = "attributes-charset"
	AttrNaturalLanguage         = "attributes-natural-language"
	AttrPrinterURI              = "printer-uri"
	AttrRequestedAttributes     = "requested-attributes"
	AttrRequestingUserName      = "requesting-user-name"
	AttrJobName                 = "job-name"
	AttrJobID                   = "job-id"
	AttrJobURI                  = "job-uri"
	AttrJobUUID                 = "job-uuid"
	AttrJobState                = "job-state"
	AttrJobStateReasons         = "job-state-reasons"
	AttrDocumentFormat          = "document-format"
	AttrDocumentName            = "document-name"
	AttrLastDocument            = "last-document"
	AttrStatusMessage           = "status-message"
	AttrWhichJobs               = "which-jobs"
	AttrMyJobs                  = "my-jobs"
	AttrLimit                   = "limit"
	AttrPrinterName             = "printer-name"
	AttrPrinterInfo             = "printer-info"
	AttrPrinterLocation         = "printer-location"
	AttrPrinterState            = "printer-state"
	AttrPrinterStateReasons     = "printer-state-reasons"
	AttrPrinterStateMessage     = "printer-state-message"
	AttrPrinterMakeAndModel     = "printer-make-and-model"
	AttrPrinterIsAcceptingJobs  = "printer-is-accepting-jobs"
	AttrPrinterUpTime           = "printer-up-time"
	AttrPrinterUUID             = "printer-uuid"
	AttrPrinterURISupported     = "printer-uri-supported"
	AttrURISecuritySupported    = "uri-security-supported"
	AttrURIAuthSupported        = "uri-authentication-supported"
	AttrIppVersionsSupported    = "ipp-versions-supported"
	AttrOperationsSupported     = "operations-supported"
	AttrCharsetConfigured       = "charset-configured"
	AttrCharsetSupported        = "charset-supported"
	AttrLanguageConfigured      = "natural-language-configured"
	AttrLanguageSupported       = "generated-natural-language-supported"
	AttrDocumentFormatDefault   = "document-format-default"
	AttrDocumentFormatSupported = "document-format-supported"
	AttrQueuedJobCount          = "queued-job-count"
	AttrPdlOverrideSupported    = "pdl-override-supported"
	AttrCompressionSupported    = "compression-supported"
	AttrFinishingsDefault       = "finishings-default"
	AttrFinishingsSupported     = "finishings-supported"
)

// PrinterState enumerates values of the "printer-state" attribute
type PrinterState int32

// PrinterState values
const (
	PrinterIdle       PrinterState = 3
	PrinterProcessing PrinterState = 4
	PrinterStopped    PrinterState = 5
)

// JobState enumerates values of the "job-state" attribute
type JobState int32

// JobState values
const (
	JobPending           JobState = 3
	JobPendingHeld       JobState = 4
	JobProcessing        JobState = 5
	JobProcessingStopped JobState = 6
	JobCanceled          JobState = 7
	JobAborted           JobState = 8
	JobCompleted         JobState = 9
)

// Finishings enumerates values of the "finishings" attribute
type Finishings int32

// Finishings values (the most common subset)
const (
	FinishingsNone   Finishings = 3
	FinishingsStaple Finishings = 4
	FinishingsPunch  Finishings = 5
	FinishingsCover  Finishings = 6
	FinishingsBind   Finishings = 7
)
