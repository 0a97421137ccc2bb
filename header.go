// FILE: lixenwraith/filelog/header.go
package filelog

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

// SystemHeader returns a HeaderFunc writing host, platform and application metadata
// at the top of each newly created file.
func SystemHeader(app, version string) HeaderFunc {
	return func(path string) string {
		host, err := os.Hostname()
		if err != nil {
			host = "unknown"
		}

		var sb strings.Builder
		sb.WriteString(">>>>>>>>>>>>>>>> File Header >>>>>>>>>>>>>>>>\n")
		fmt.Fprintf(&sb, "File          : %s\n", path)
		fmt.Fprintf(&sb, "Created       : %s\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(&sb, "Host          : %s\n", host)
		fmt.Fprintf(&sb, "Platform      : %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(&sb, "Go Version    : %s\n", runtime.Version())
		fmt.Fprintf(&sb, "PID           : %d\n", os.Getpid())
		fmt.Fprintf(&sb, "App           : %s\n", app)
		fmt.Fprintf(&sb, "App Version   : %s\n", version)
		sb.WriteString("<<<<<<<<<<<<<<<< File Header <<<<<<<<<<<<<<<<")
		return sb.String()
	}
}
