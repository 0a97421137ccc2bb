// FILE: lixenwraith/filelog/example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/filelog"
	"github.com/lixenwraith/filelog/compat"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func main() {
	printer, err := filelog.NewBuilder().
		Directory("/var/log/fasthttp").
		Naming("level").
		Format("time").
		QueueCapacity(4096).
		MaxAge(24 * time.Hour).
		Build()
	if err != nil {
		panic(err)
	}
	defer printer.Shutdown()

	builder := compat.NewBuilder().WithPrinter(printer)

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter, err := builder.BuildFastHTTP(
		compat.WithDefaultLevel(filelog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)
	if err != nil {
		panic(err)
	}

	// Application logs share the same files through zap
	appLogger, err := builder.BuildZap("app", nil)
	if err != nil {
		panic(err)
	}
	defer appLogger.Sync()

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			appLogger.Debug("request", zap.ByteString("path", ctx.Path()))
			requestHandler(ctx)
		},
		Logger: fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	appLogger.Info("starting server", zap.String("addr", ":8080"))
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) int64 {
	if strings.Contains(msg, "connection cannot be served") {
		return filelog.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return filelog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
