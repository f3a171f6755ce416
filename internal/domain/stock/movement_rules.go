package stock

import (
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
)

// MovementInput son los campos de un movimiento sujetos a las reglas de
// combinación tipo/origen/destino. La validación precede a toda mutación.
type MovementInput struct {
	Type         string
	SourceSiteID *string
	TargetSiteID *string
	Quantity     int
	Condition    Condition
}

// ValidateMovement aplica la tabla de invariantes por tipo:
//
//	IN       → destino requerido, sin origen
//	OUT      → origen requerido, sin destino
//	TRANSFER → origen y destino requeridos, distintos entre sí
//
// La cantidad debe ser un entero positivo y el estado NEW o USED.
func ValidateMovement(in MovementInput) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !in.Condition.Valid() {
		return domain.ErrInvalidInput
	}
	hasSource := in.SourceSiteID != nil && *in.SourceSiteID != ""
	hasTarget := in.TargetSiteID != nil && *in.TargetSiteID != ""

	switch in.Type {
	case entity.MovementTypeIN:
		if !hasTarget || hasSource {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		if !hasSource || hasTarget {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTRANSFER:
		if !hasSource || !hasTarget {
			return domain.ErrInvalidInput
		}
		if *in.SourceSiteID == *in.TargetSiteID {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
