/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP Operation Codes
 */

package ippcodec

import (
	"fmt"
)

// Op represents an IPP Operation Code
type Op Code

// Op codes
const (
	OpPrintJob             Op = 0x0002 // Print-Job: Print a single file
	OpPrintURI             Op = 0x0003 // Print-URI: Print a single URL
	OpValidateJob          Op = 0x0004 // Validate-Job: Validate job values prior to submission
	OpCreateJob            Op = 0x0005 // Create-Job: Create an empty print job
	OpSendDocument         Op = 0x0006 // Send-Document: Add a file to a job
	OpSendURI              Op = 0x0007 // Send-URI: Add a URL to a job
	OpCancelJob            Op = 0x0008 // Cancel-Job: Cancel a job
	OpGetJobAttributes     Op = 0x0009 // Get-Job-Attributes: Get information about a job
	OpGetJobs              Op = 0x000a // Get-Jobs: Get a list of jobs
	OpGetPrinterAttributes Op = 0x000b // Get-Printer-Attributes: Get information about a printer
	OpHoldJob              Op = 0x000c // Hold-Job: Hold a job for printing
	OpReleaseJob           Op = 0x000d // Release-Job: Release a job for printing
	OpRestartJob           Op = 0x000e // Restart-Job: Reprint a job

	OpPausePrinter               Op = 0x0010 // Pause-Printer: Stop a printer
	OpResumePrinter              Op = 0x0011 // Resume-Printer: Start a printer
	OpPurgeJobs                  Op = 0x0012 // Purge-Jobs: Delete all jobs
	OpSetPrinterAttributes       Op = 0x0013 // Set-Printer-Attributes: Set printer values
	OpSetJobAttributes           Op = 0x0014 // Set-Job-Attributes: Set job values
	OpGetPrinterSupportedValues  Op = 0x0015 // Get-Printer-Supported-Values: Get supported values
	OpCreatePrinterSubscriptions Op = 0x0016 // Create-Printer-Subscriptions: Create printer subscriptions
	OpCreateJobSubscriptions     Op = 0x0017 // Create-Job-Subscriptions: Create job subscriptions
	OpGetSubscriptionAttributes  Op = 0x0018 // Get-Subscription-Attributes: Get subscription information
	OpGetSubscriptions           Op = 0x0019 // Get-Subscriptions: Get list of subscriptions
	OpRenewSubscription          Op = 0x001a // Renew-Subscription: Renew a printer subscription
	OpCancelSubscription         Op = 0x001b // Cancel-Subscription: Cancel a subscription
	OpGetNotifications           Op = 0x001c // Get-Notifications: Get notification events

	OpCancelMyJobs      Op = 0x0039 // Cancel-My-Jobs: Cancel a user's jobs
	OpCloseJob          Op = 0x003b // Close-Job: Close a job and start printing
	OpIdentifyPrinter   Op = 0x003c // Identify-Printer: Make the printer beep or flash
	OpValidateDocument  Op = 0x003d // Validate-Document: Validate document values prior to submission
	OpCupsGetDefault    Op = 0x4001 // CUPS-Get-Default: Get the default printer
	OpCupsGetPrinters   Op = 0x4002 // CUPS-Get-Printers: Get a list of printers and/or classes
	OpCupsGetDocument   Op = 0x4027 // CUPS-Get-Document: Get a document file
	OpCupsCreateLocalPr Op = 0x4028 // CUPS-Create-Local-Printer: Create a local printer
)

// String returns an Op name, as defined by RFC 8011 and friends
func (op Op) String() string {
	if s := opNames[op]; s != "" {
		return s
	}

	return fmt.Sprintf("0x%4.4x", int(op))
}

var opNames = map[Op]string{
	OpPrintJob:                   "Print-Job",
	OpPrintURI:                   "Print-URI",
	OpValidateJob:                "Validate-Job",
	OpCreateJob:                  "Create-Job",
	OpSendDocument:               "Send-Document",
	OpSendURI:                    "Send-URI",
	OpCancelJob:                  "Cancel-Job",
	OpGetJobAttributes:           "Get-Job-Attributes",
	OpGetJobs:                    "Get-Jobs",
	OpGetPrinterAttributes:       "Get-Printer-Attributes",
	OpHoldJob:                    "Hold-Job",
	OpReleaseJob:                 "Release-Job",
	OpRestartJob:                 "Restart-Job",
	OpPausePrinter:               "Pause-Printer",
	OpResumePrinter:              "Resume-Printer",
	OpPurgeJobs:                  "Purge-Jobs",
	OpSetPrinterAttributes:       "Set-Printer-Attributes",
	OpSetJobAttributes:           "Set-Job-Attributes",
	OpGetPrinterSupportedValues:  "Get-Printer-Supported-Values",
	OpCreatePrinterSubscriptions: "Create-Printer-Subscriptions",
	OpCreateJobSubscriptions:     "Create-Job-Subscriptions",
	OpGetSubscriptionAttributes:  "Get-Subscription-Attributes",
	OpGetSubscriptions:           "Get-Subscriptions",
	OpRenewSubscription:          "Renew-Subscription",
	OpCancelSubscription:         "Cancel-Subscription",
	OpGetNotifications:           "Get-Notifications",
	OpCancelMyJobs:               "Cancel-My-Jobs",
	OpCloseJob:                   "Close-Job",
	OpIdentifyPrinter:            "Identify-Printer",
	OpValidateDocument:           "Validate-Document",
	OpCupsGetDefault:             "CUPS-Get-Default",
	OpCupsGetPrinters:            "CUPS-Get-Printers",
	OpCupsGetDocument:            "CUPS-Get-Document",
	OpCupsCreateLocalPr:          "CUPS-Create-Local-Printer",
}
