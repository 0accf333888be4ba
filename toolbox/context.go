package toolbox

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Metadata keys the invoking host forwards with each call.
const (
	MetaAPIKey    = "ApiKey"
	MetaDeviceID  = "DeviceId"
	MetaDeviceKey = "DeviceKey"
)

// CallMeta carries the per-call metadata (typically request headers) from the
// invoking host. Lookups are case-insensitive.
type CallMeta map[string]string

// Get returns the value for key, matching case-insensitively.
func (m CallMeta) Get(key string) string {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// DeviceContext is the credential triple required to address one print box.
// It is built fresh per call and never persisted.
type DeviceContext struct {
	APIKey    string `validate:"required"`
	DeviceID  string `validate:"required"`
	DeviceKey string `validate:"required"`
}

var validate = validator.New()

// resolveContext layers per-call metadata over argument defaults. Metadata is
// the authenticated source and wins when both are present; the ApiKey has no
// argument fallback. The resolver fails before any network call is attempted.
func resolveContext(meta CallMeta, deviceID, deviceKey string) (DeviceContext, error) {
	dc := DeviceContext{
		APIKey:    meta.Get(MetaAPIKey),
		DeviceID:  firstNonEmpty(meta.Get(MetaDeviceID), deviceID),
		DeviceKey: firstNonEmpty(meta.Get(MetaDeviceKey), deviceKey),
	}

	if dc.APIKey == "" {
		return dc, faultf(FaultMissingCredentials, "missing ApiKey in call metadata")
	}

	if err := validate.Struct(dc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return dc, faultf(FaultMissingCredentials, "missing device credentials: %s", strings.Join(missing, ", "))
		}
		return dc, faultf(FaultMissingCredentials, "invalid device credentials: %v", err)
	}

	return dc, nil
}

// firstNonEmpty returns the first non-empty value in precedence order.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
