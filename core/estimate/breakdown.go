package estimate

import (
	"fmt"
	"strings"
	"time"

	"github.com/tallerix/scheduling/core/model"
	"github.com/tallerix/scheduling/core/sharedtime"
)

// buildBreakdown renders the human-readable derivation shown next to the
// delivery date. The wording is Spanish to match the rest of the product.
// limit is the resolver's effective concurrency cap.
func buildBreakdown(res sharedtime.Result, techs []model.SupportTechnician, limit int, offset, effective float64, deliveryAt time.Time) string {
	var parts []string

	demand := fmt.Sprintf("%sh exclusivo", trimHours(res.ExclusiveHours))
	if res.SharedServicesCount > 0 {
		demand += fmt.Sprintf(" + %sh compartido (cuello de botella, %d/%d servicios)",
			trimHours(res.SharedHours), res.SharedServicesCount, limit)
	}
	demand += fmt.Sprintf(" = %sh", trimHours(res.TotalHours()))
	parts = append(parts, demand)

	if !res.CanUseSharedTime {
		parts = append(parts, "tiempo compartido excedido, los servicios restantes se suman en secuencia")
	}
	if len(techs) > 0 {
		parts = append(parts, fmt.Sprintf("con %d técnico(s) de apoyo → %sh efectivas", len(techs), trimHours(effective)))
	}
	if offset > 0 {
		parts = append(parts, fmt.Sprintf("carga previa de %sh antepuesta", trimHours(offset)))
	}
	parts = append(parts, fmt.Sprintf("entrega %s a las %s",
		deliveryAt.Format("2006-01-02"), deliveryAt.Format("15:04")))

	return strings.Join(parts, ", ")
}

// trimHours formats hours without trailing zeros, e.g. 5.5 and 4.
func trimHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
