package toolbox

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	lianke "github.com/liankenet/lianke-go"
)

// Result is the uniform envelope every tool operation returns. Code 200
// denotes success; failures carry a caller-visible code and message instead
// of an error value, so nothing ever propagates to the invoking host as a
// raw fault.
type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// ok wraps a successful payload.
func ok(data any) Result {
	return Result{Code: http.StatusOK, Msg: "success", Data: data}
}

// FaultKind classifies an operation failure.
type FaultKind int

const (
	// FaultMissingCredentials: the credential triple could not be resolved.
	FaultMissingCredentials FaultKind = iota
	// FaultValidation: a structurally required job option failed to parse.
	FaultValidation
	// FaultNotFound: a caller-supplied local path does not exist.
	FaultNotFound
	// FaultNoPrinter: the box reports no printer to submit to.
	FaultNoPrinter
	// FaultFetch: acquiring the document failed.
	FaultFetch
)

// Fault is a tagged operation failure carrying a caller-facing message.
type Fault struct {
	Kind FaultKind
	Msg  string
}

func (f *Fault) Error() string {
	return f.Msg
}

func faultf(kind FaultKind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// normalize funnels every failure into the result envelope. Service-reported
// faults pass their code through, defaulting to 503 when the service supplied
// none; tagged faults map to their fixed code band; anything else degrades to
// a generic 503.
func (t *Toolbox) normalize(op string, err error) Result {
	var apiErr *lianke.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Code
		if code == 0 {
			code = http.StatusServiceUnavailable
		}
		return Result{Code: code, Msg: apiErr.Msg}
	}

	if errors.Is(err, lianke.ErrNoPrinter) {
		return Result{Code: http.StatusNotFound, Msg: "no printer connected"}
	}

	var fault *Fault
	if errors.As(err, &fault) {
		code := http.StatusBadRequest
		if fault.Kind == FaultNoPrinter {
			code = http.StatusNotFound
		}
		return Result{Code: code, Msg: fault.Msg}
	}

	t.logger.Error(op+" failed", zap.Error(err))
	return Result{Code: http.StatusServiceUnavailable, Msg: op + " failed: " + err.Error()}
}
