package worker

import (
	"github.com/spec-kit/hospital-console/internal/service"
)

// StartAuditWorker registers the session audit handlers.
func StartAuditWorker(audit *service.AuditService) {
	if audit == nil {
		return
	}
	audit.RegisterHandlers()
}
