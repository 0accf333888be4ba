// Package toolbox exposes the Lianke print box operations invoked by an
// orchestration host on behalf of an end user. Every operation resolves its
// device context from the per-call metadata, performs a single synchronous
// remote call and returns the uniform Result envelope; failures are returned,
// never raised.
package toolbox

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	lianke "github.com/liankenet/lianke-go"
)

// Document downloads are bounded by this timeout; there is no retry.
const fetchTimeout = 30 * time.Second

// Toolbox holds the per-process collaborators of the tool operations. All
// per-call state (device context, parameters, documents) is constructed fresh
// inside each operation, so a Toolbox is safe for concurrent use.
type Toolbox struct {
	logger      *zap.Logger
	fetchClient *http.Client
	clientOpts  []lianke.Option
}

// ToolOption configures a Toolbox.
type ToolOption func(*Toolbox)

// WithClientOptions passes options through to every Lianke client the toolbox
// constructs.
func WithClientOptions(opts ...lianke.Option) ToolOption {
	return func(t *Toolbox) {
		t.clientOpts = append(t.clientOpts, opts...)
	}
}

// WithFetchClient sets the HTTP client used for document downloads.
func WithFetchClient(client *http.Client) ToolOption {
	return func(t *Toolbox) {
		t.fetchClient = client
	}
}

// New creates a toolbox.
func New(logger *zap.Logger, opts ...ToolOption) *Toolbox {
	t := &Toolbox{
		logger:      logger,
		fetchClient: &http.Client{Timeout: fetchTimeout},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// client builds a Lianke client for one resolved device context.
func (t *Toolbox) client(dc DeviceContext) *lianke.Client {
	return lianke.New(dc.APIKey, dc.DeviceID, dc.DeviceKey, t.clientOpts...)
}

// DeviceArgs are the credential arguments shared by every operation. They are
// a convenience default; metadata-sourced values take precedence.
type DeviceArgs struct {
	DeviceID  string `json:"device_id"`
	DeviceKey string `json:"device_key"`
}

// PrinterListArgs select which printers to list.
type PrinterListArgs struct {
	DeviceArgs
	PrinterType lianke.PrinterType `json:"printer_type"`
}

// PrinterArgs address one printer by its opaque hash ID.
type PrinterArgs struct {
	DeviceArgs
	PrinterHash string `json:"printer_hash" binding:"required"`
}

// JobArgs address one submitted job by its task ID.
type JobArgs struct {
	DeviceArgs
	TaskID string `json:"task_id" binding:"required"`
}

// SubmitJobArgs describe a print job submission. Exactly one of FileURL and
// FilePath is used, depending on the operation invoked.
type SubmitJobArgs struct {
	DeviceArgs
	JobOptions
	FileURL     string `json:"job_file_url"`
	FilePath    string `json:"file_path"`
	PrinterHash string `json:"printer_hash"`
	Overrides   string `json:"kwargs"`
}

// DeviceInfo returns information about the print box.
func (t *Toolbox) DeviceInfo(ctx context.Context, meta CallMeta, args DeviceArgs) Result {
	const op = "getting device info"

	dc, err := resolveContext(meta, args.DeviceID, args.DeviceKey)
	if err != nil {
		return t.normalize(op, err)
	}

	data, err := t.client(dc).DeviceInfo(ctx)
	if err != nil {
		return t.normalize(op, err)
	}

	return ok(data)
}

// PrinterList returns the printers attached to the box, filtered by type.
func (t *Toolbox) PrinterList(ctx context.Context, meta CallMeta, args PrinterListArgs) Result {
	const op = "getting printer list"

	dc, err := resolveContext(meta, args.DeviceID, args.DeviceKey)
	if err != nil {
		return t.normalize(op, err)
	}

	printerType := args.PrinterType
	if printerType == 0 {
		printerType = lianke.PrinterTypeUSB
	}

	list, err := t.client(dc).PrinterList(ctx, printerType)
	if err != nil {
		return t.normalize(op, err)
	}

	return ok(map[string]any{
		"printers": list.Row,
		"total":    len(list.Row),
	})
}

// PrinterParams returns the parameter options a printer supports.
func (t *Toolbox) PrinterParams(ctx context.Context, meta CallMeta, args PrinterArgs) Result {
	const op = "getting printer params"

	dc, err := resolveContext(meta, args.DeviceID, args.DeviceKey)
	if err != nil {
		return t.normalize(op, err)
	}

	data, err := t.client(dc).PrinterParams(ctx, args.PrinterHash)
	if err != nil {
		return t.normalize(op, err)
	}

	return ok(data)
}

// PrinterStatus returns the real-time state of a printer.
func (t *Toolbox) PrinterStatus(ctx context.Context, meta CallMeta, args PrinterArgs) Result {
	const op = "getting printer status"

	dc, err := resolveContext(meta, args.DeviceID, args.DeviceKey)
	if err != nil {
		return t.normalize(op, err)
	}

	data, err := t.client(dc).PrinterStatus(ctx, args.PrinterHash)
	if err != nil {
		return t.normalize(op, err)
	}

	return ok(data)
}

// SubmitJob downloads the document from args.FileURL and submits it as a
// print job.
func (t *Toolbox) SubmitJob(ctx context.Context, meta CallMeta, args SubmitJobArgs) Result {
	const op = "submitting print job"

	dc, err := resolveContext(meta, args.DeviceID, args.DeviceKey)
	if err != nil {
		return t.normalize(op, err)
	}

	data, err := t.submit(ctx, dc, args, func(ctx context.Context) (*lianke.Document, error) {
		return t.fetchDocument(ctx, args.FileURL)
	})
	if err != nil {
		return t.normalize(op, err)
	}

	return ok(data)
}

// SubmitJobFromFile reads the document from local storage and submits it as a
// print job.
func (t *Toolbox) SubmitJobFromFile(ctx context.Context, meta CallMeta, args SubmitJobArgs) Result {
	const op = "submitting print job"

	dc, err := resolveContext(meta, args.DeviceID, args.DeviceKey)
	if err != nil {
		return t.normalize(op, err)
	}

	data, err := t.submit(ctx, dc, args, func(context.Context) (*lianke.Document, error) {
		return readDocument(args.FilePath)
	})
	if err != nil {
		return t.normalize(op, err)
	}

	return ok(data)
}

// submit runs the shared submission pipeline: resolve the target printer,
// merge the parameter set, acquire the document, upload. The printer is
// resolved before the document is acquired so that a box with no printer
// never costs a download.
func (t *Toolbox) submit(ctx context.Context, dc DeviceContext, args SubmitJobArgs, acquire func(context.Context) (*lianke.Document, error)) (map[string]any, error) {
	client := t.client(dc)

	printerHash := args.PrinterHash
	if printerHash == "" {
		resolved, err := client.DefaultPrinter(ctx)
		if err != nil {
			return nil, err
		}
		printerHash = resolved
	}

	params, warnings, err := buildJobParams(args.JobOptions, args.Overrides)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		t.logger.Warn(warning, zap.String("printerHash", printerHash))
	}

	doc, err := acquire(ctx)
	if err != nil {
		return nil, err
	}

	return client.SubmitJob(ctx, &lianke.JobSubmission{
		PrinterHash: printerHash,
		Parameters:  params,
		Document:    doc,
	})
}

// JobStatus returns the state of a submitted job.
func (t *Toolbox) JobStatus(ctx context.Context, meta CallMeta, args JobArgs) Result {
	const op = "getting job status"

	dc, err := resolveContext(meta, args.DeviceID, args.DeviceKey)
	if err != nil {
		return t.normalize(op, err)
	}

	data, err := t.client(dc).JobResult(ctx, args.TaskID)
	if err != nil {
		return t.normalize(op, err)
	}

	return ok(data)
}

// CancelJob cancels a submitted job.
func (t *Toolbox) CancelJob(ctx context.Context, meta CallMeta, args JobArgs) Result {
	const op = "cancelling job"

	dc, err := resolveContext(meta, args.DeviceID, args.DeviceKey)
	if err != nil {
		return t.normalize(op, err)
	}

	if err := t.client(dc).CancelJob(ctx, args.TaskID); err != nil {
		return t.normalize(op, err)
	}

	return ok(nil)
}
