package toolbox

import "fmt"

// PrintJobPrompt renders instruction text guiding a user through submitting a
// print job with the given settings.
func PrintJobPrompt(fileURL, paperSize string, copies int, color string) string {
	return fmt.Sprintf(`Please submit a print job with the following settings:
- File URL: %s
- Paper size: %s
- Copies: %d
- Color mode: %s

Make sure the device ID and device key are configured, then submit the job.
`, fileURL, paperSize, copies, color)
}

// DeviceSetupPrompt renders the setup walkthrough for a new print box.
func DeviceSetupPrompt(deviceID, deviceKey string) string {
	if deviceID == "" {
		deviceID = "scan the QR code on the box to obtain it"
	}
	if deviceKey == "" {
		deviceKey = "scan the QR code on the box to obtain it"
	}

	return fmt.Sprintf(`Lianke print box setup:

1. Device ID: %s
2. Device key: %s
3. ApiKey: register at https://open.liankenet.com/ and supply it as the ApiKey header

Steps:
1. Scan the device QR code for the device ID and device key
2. Pass ApiKey, DeviceId and DeviceKey as call metadata
3. Use the printer list operation to discover printers
4. Use the submit operation to print

Notes:
1. The hash_id returned by the printer list is what submissions expect as printer_hash
2. All credentials travel as per-call metadata; nothing is stored
`, deviceID, deviceKey)
}
