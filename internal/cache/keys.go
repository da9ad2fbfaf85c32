package cache

import (
	"fmt"
	"time"
)

// EmployeeTTL bounds how stale a cached identity snapshot may get. Metrics
// are never cached; only the slowly-changing identity record is.
const EmployeeTTL = 5 * time.Minute

func EmployeeKey(empleadoID int64) string {
	return fmt.Sprintf("empleado:%d", empleadoID)
}

func RateLimitKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:%s", clientIP)
}
