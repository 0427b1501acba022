package ch

import (
	"os"
	"runtime"
	"strings"

	"csvsplit/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClientInfo names this process in clickhouse's query log
// role is the service name, tag the release when known
func ClientInfo(role, tag string) clickhouse.ClientInfo {
	role, tag = strings.TrimSpace(role), strings.TrimSpace(tag)
	bi := version.Info(role)
	if tag == "" {
		tag = bi.Version
	}
	host, _ := os.Hostname()

	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		{Name: "csvsplit", Version: tag},
		{Name: "role", Version: role},
		{Name: "commit", Version: bi.Commit},
		{Name: "go", Version: runtime.Version()},
		{Name: "host", Version: host},
	}}
}
