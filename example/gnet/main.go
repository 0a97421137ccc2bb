// FILE: lixenwraith/filelog/example/gnet/main.go
package main

import (
	"github.com/lixenwraith/filelog"
	"github.com/lixenwraith/filelog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	cfg, err := filelog.NewConfigFromOverrides(
		"directory=/var/log/gnet",
		"prefix=gnet",
		"level=debug",
		"format=json",
	)
	if err != nil {
		panic(err)
	}

	printer, err := filelog.New(cfg)
	if err != nil {
		panic(err)
	}
	defer printer.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(printer, compat.WithGnetTag("echo"))

	// Configure gnet server with the adapter
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
