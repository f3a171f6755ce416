package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

func strPtr(s string) *string { return &s }

func TestValidateMovement(t *testing.T) {
	siteA := strPtr("site-a")
	siteB := strPtr("site-b")

	cases := []struct {
		name    string
		in      stock.MovementInput
		wantErr bool
	}{
		{
			name: "IN válido: solo destino",
			in:   stock.MovementInput{Type: "IN", TargetSiteID: siteA, Quantity: 5, Condition: stock.ConditionNew},
		},
		{
			name:    "IN sin destino",
			in:      stock.MovementInput{Type: "IN", Quantity: 5, Condition: stock.ConditionNew},
			wantErr: true,
		},
		{
			name:    "IN con origen además del destino",
			in:      stock.MovementInput{Type: "IN", SourceSiteID: siteA, TargetSiteID: siteB, Quantity: 5, Condition: stock.ConditionNew},
			wantErr: true,
		},
		{
			name: "OUT válido: solo origen",
			in:   stock.MovementInput{Type: "OUT", SourceSiteID: siteA, Quantity: 2, Condition: stock.ConditionUsed},
		},
		{
			name:    "OUT sin origen",
			in:      stock.MovementInput{Type: "OUT", Quantity: 2, Condition: stock.ConditionUsed},
			wantErr: true,
		},
		{
			name:    "OUT con destino además del origen",
			in:      stock.MovementInput{Type: "OUT", SourceSiteID: siteA, TargetSiteID: siteB, Quantity: 2, Condition: stock.ConditionUsed},
			wantErr: true,
		},
		{
			name: "TRANSFER válido: origen y destino distintos",
			in:   stock.MovementInput{Type: "TRANSFER", SourceSiteID: siteA, TargetSiteID: siteB, Quantity: 1, Condition: stock.ConditionNew},
		},
		{
			name:    "TRANSFER sin destino",
			in:      stock.MovementInput{Type: "TRANSFER", SourceSiteID: siteA, Quantity: 1, Condition: stock.ConditionNew},
			wantErr: true,
		},
		{
			name:    "TRANSFER con origen igual al destino",
			in:      stock.MovementInput{Type: "TRANSFER", SourceSiteID: siteA, TargetSiteID: strPtr("site-a"), Quantity: 1, Condition: stock.ConditionNew},
			wantErr: true,
		},
		{
			name:    "cantidad cero",
			in:      stock.MovementInput{Type: "IN", TargetSiteID: siteA, Quantity: 0, Condition: stock.ConditionNew},
			wantErr: true,
		},
		{
			name:    "cantidad negativa",
			in:      stock.MovementInput{Type: "IN", TargetSiteID: siteA, Quantity: -3, Condition: stock.ConditionNew},
			wantErr: true,
		},
		{
			name:    "estado desconocido",
			in:      stock.MovementInput{Type: "IN", TargetSiteID: siteA, Quantity: 3, Condition: "BROKEN"},
			wantErr: true,
		},
		{
			name:    "tipo desconocido",
			in:      stock.MovementInput{Type: "MOVE", TargetSiteID: siteA, Quantity: 3, Condition: stock.ConditionNew},
			wantErr: true,
		},
		{
			name:    "destino con cadena vacía cuenta como ausente",
			in:      stock.MovementInput{Type: "IN", TargetSiteID: strPtr(""), Quantity: 3, Condition: stock.ConditionNew},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := stock.ValidateMovement(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
