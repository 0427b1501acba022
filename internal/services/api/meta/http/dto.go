package http

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"csvsplit-api"`
	Started string `json:"started" example:"2026-01-10T08:00:00Z"`
	Now     string `json:"now"     example:"2026-01-10T08:04:00Z"`
}

// ReadyCheck is one backend probe, Status is ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse rolls the probes up into ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-01-10T08:04:00Z"`
}

// ServiceResponse is process info, Uptime in seconds
type ServiceResponse struct {
	Name    string   `json:"name"    example:"csvsplit-api"`
	Started string   `json:"started" example:"2026-01-10T08:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"240"`
	Modules []string `json:"modules"`
}
