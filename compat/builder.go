// FILE: lixenwraith/filelog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/filelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Builder provides a flexible way to create configured adapters for gnet, fasthttp and zap.
// It can use an existing printer or create a new one from a *filelog.Config.
type Builder struct {
	printer Printer
	created *filelog.LogPrinter // Set when the builder created the printer itself
	cfg     *filelog.Config
	err     error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithPrinter specifies an existing printer to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithPrinter(p Printer) *Builder {
	if p == nil {
		b.err = fmt.Errorf("filelog/compat: provided printer cannot be nil")
		return b
	}
	b.printer = p
	return b
}

// WithConfig provides a configuration for a new printer instance.
// If neither WithPrinter nor WithConfig is used, a default printer will be created.
func (b *Builder) WithConfig(cfg *filelog.Config) *Builder {
	b.cfg = cfg
	return b
}

// getPrinter resolves the printer to be used, creating one if necessary
func (b *Builder) getPrinter() (Printer, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.printer != nil {
		return b.printer, nil
	}

	p, err := filelog.New(b.cfg)
	if err != nil {
		return nil, err
	}

	// Cache the newly created printer for subsequent builds with this builder
	b.printer = p
	b.created = p
	return p, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	p, err := b.getPrinter()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(p, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	p, err := b.getPrinter()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(p, opts...), nil
}

// BuildZap creates a *zap.Logger writing through the printer
func (b *Builder) BuildZap(tag string, enabler zapcore.LevelEnabler, opts ...zap.Option) (*zap.Logger, error) {
	p, err := b.getPrinter()
	if err != nil {
		return nil, err
	}
	return zap.New(NewZapCore(p, tag, enabler), opts...), nil
}

// GetPrinter returns the underlying printer, creating it if needed
func (b *Builder) GetPrinter() (Printer, error) {
	return b.getPrinter()
}

// Shutdown stops a printer the builder created; printers passed in are left to their owner
func (b *Builder) Shutdown() error {
	if b.created == nil {
		return nil
	}
	return b.created.Shutdown()
}

// --- Example Usage ---
//
//	// 1. Create the application's printer
//	printer, err := filelog.NewBuilder().
//		Directory("/var/log/app").
//		LevelString("debug").
//		Build()
//	if err != nil { /* handle error */ }
//	defer printer.Shutdown()
//
//	// 2. Create a builder and provide the existing printer
//	builder := compat.NewBuilder().WithPrinter(printer)
//
//	// 3. Build the required adapters
//	gnetLogger, _ := builder.BuildGnet()
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	zapLogger, _ := builder.BuildZap("app", zapcore.InfoLevel)
//
//	// 4. Configure your servers with the adapters
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
