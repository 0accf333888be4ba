// Package server binds the toolbox operations to a plain HTTP surface for
// direct invocation. Credentials arrive as the ApiKey, DeviceId and DeviceKey
// request headers; arguments arrive as a JSON body; every route answers with
// the uniform result envelope and HTTP 200.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/liankenet/lianke-go/toolbox"
)

// Server routes tool invocations to a toolbox.
type Server struct {
	engine  *gin.Engine
	toolbox *toolbox.Toolbox
	logger  *zap.Logger
}

// New creates a server around the given toolbox.
func New(tb *toolbox.Toolbox, logger *zap.Logger) *Server {
	s := &Server{
		engine:  gin.New(),
		toolbox: tb,
		logger:  logger,
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes()

	return s
}

// requestLogger logs one line per handled request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	tools := s.engine.Group("/tools")
	tools.POST("/get_device_info", handle(s, (*toolbox.Toolbox).DeviceInfo))
	tools.POST("/get_printer_list", handle(s, (*toolbox.Toolbox).PrinterList))
	tools.POST("/get_printer_params", handle(s, (*toolbox.Toolbox).PrinterParams))
	tools.POST("/get_printer_status", handle(s, (*toolbox.Toolbox).PrinterStatus))
	tools.POST("/submit_print_job", handle(s, (*toolbox.Toolbox).SubmitJob))
	tools.POST("/submit_print_job_with_file", handle(s, (*toolbox.Toolbox).SubmitJobFromFile))
	tools.POST("/get_job_status", handle(s, (*toolbox.Toolbox).JobStatus))
	tools.POST("/cancel_print_job", handle(s, (*toolbox.Toolbox).CancelJob))

	prompts := s.engine.Group("/prompts")
	prompts.GET("/print_job", s.printJobPrompt)
	prompts.GET("/device_setup", s.deviceSetupPrompt)
}

// handle adapts one toolbox operation into a gin handler: headers become the
// call metadata, the JSON body becomes the typed arguments, and the result
// envelope is the response no matter what happened. An empty body is allowed
// for operations whose arguments are all optional.
func handle[A any](s *Server, op func(*toolbox.Toolbox, context.Context, toolbox.CallMeta, A) toolbox.Result) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args A
		if err := c.ShouldBindJSON(&args); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusOK, toolbox.Result{
				Code: http.StatusBadRequest,
				Msg:  "invalid arguments: " + err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, op(s.toolbox, c.Request.Context(), callMeta(c), args))
	}
}

func (s *Server) printJobPrompt(c *gin.Context) {
	copies, err := strconv.Atoi(c.DefaultQuery("copies", "1"))
	if err != nil {
		copies = 1
	}

	text := toolbox.PrintJobPrompt(
		c.Query("file_url"),
		c.DefaultQuery("paper_size", "A4"),
		copies,
		c.DefaultQuery("color", "monochrome"),
	)
	c.String(http.StatusOK, text)
}

func (s *Server) deviceSetupPrompt(c *gin.Context) {
	text := toolbox.DeviceSetupPrompt(c.Query("device_id"), c.Query("device_key"))
	c.String(http.StatusOK, text)
}

// callMeta extracts the credential headers the invoking host forwarded.
func callMeta(c *gin.Context) toolbox.CallMeta {
	return toolbox.CallMeta{
		toolbox.MetaAPIKey:    c.GetHeader(toolbox.MetaAPIKey),
		toolbox.MetaDeviceID:  c.GetHeader(toolbox.MetaDeviceID),
		toolbox.MetaDeviceKey: c.GetHeader(toolbox.MetaDeviceKey),
	}
}
