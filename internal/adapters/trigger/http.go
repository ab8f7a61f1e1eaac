package trigger

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"go.uber.org/zap"
)

// HTTPTrigger serves the pipeline actions over a small HTTP API. It replaces
// the interactive dashboard of earlier revisions of this workflow: one
// endpoint per button.
type HTTPTrigger struct {
	generator *core.GeneratorService
	verifier  *core.VerifierService
	usage     core.UsageReporter
	logger    *zap.Logger
	server    *http.Server
}

// NewHTTPTrigger creates a new HTTP trigger listening on addr
func NewHTTPTrigger(
	generator *core.GeneratorService,
	verifier *core.VerifierService,
	usage core.UsageReporter,
	addr string,
	logger *zap.Logger,
) *HTTPTrigger {
	t := &HTTPTrigger{
		generator: generator,
		verifier:  verifier,
		usage:     usage,
		logger:    logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/api/generate", t.handleGenerate)
	router.POST("/api/verify", t.handleVerify)
	router.GET("/api/usage", t.handleUsage)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}
	return t
}

// Start starts the HTTP server in the background
func (t *HTTPTrigger) Start() error {
	t.logger.Info("Starting HTTP trigger", zap.String("addr", t.server.Addr))
	go func() {
		if err := t.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server
func (t *HTTPTrigger) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return t.server.Shutdown(ctx)
}

func (t *HTTPTrigger) handleGenerate(c *gin.Context) {
	summary, err := t.generator.Run(c.Request.Context())
	if err != nil {
		t.logger.Error("Generation run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   summary.String(),
		"generated": summary.Generated,
		"skipped":   summary.Skipped,
	})
}

func (t *HTTPTrigger) handleVerify(c *gin.Context) {
	summary, err := t.verifier.Run(c.Request.Context())
	if err != nil {
		t.logger.Error("Verification run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	errs := make([]gin.H, 0, len(summary.Errors))
	for _, e := range summary.Errors {
		errs = append(errs, gin.H{"email": e.Email, "reason": e.Reason})
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  summary.String(),
		"verified": summary.Verified,
		"skipped":  summary.Skipped,
		"errors":   errs,
	})
}

func (t *HTTPTrigger) handleUsage(c *gin.Context) {
	usage, err := t.usage.Usage(c.Request.Context())
	if err != nil {
		t.logger.Error("Usage lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"used_searches":      usage.UsedSearches,
		"used_verifications": usage.UsedVerifications,
	})
}
