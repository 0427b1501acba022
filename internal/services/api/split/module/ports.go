package module

import "csvsplit/internal/services/api/split/domain"

// Ports exposes the split service for cross-module lookups
type Ports struct {
	Service domain.ServicePort
}

func (m *Module) Ports() any { return Ports{Service: m.svc} }
