// Package lianke provides a client for the Lianke cloud print box API.
//
// A Lianke print box bridges physical printers and scanners to the cloud.
// Every call addresses one box through a credential triple: the platform
// ApiKey plus the box's device ID and device key.
//
// Basic usage:
//
//	client := lianke.New(apiKey, deviceID, deviceKey)
//
//	// List the USB printers attached to the box
//	printers, err := client.PrinterList(ctx, lianke.PrinterTypeUSB)
//
//	// Submit a print job
//	resp, err := client.SubmitJob(ctx, &lianke.JobSubmission{
//		PrinterHash: printers.Row[0].HashID,
//		Parameters:  map[string]any{"dmCopies": 2},
//		Document:    doc,
//	})
//
// The package covers device info, printer listing and status, print job
// submission, polling and cancellation, and the scanning sibling of the API.
// Higher-level tool operations with a uniform result envelope live in the
// toolbox subpackage.
package lianke
