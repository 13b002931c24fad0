package transform

import (
	"github.com/persys/ventas-etl/internal/domain"
	"github.com/persys/ventas-etl/internal/sheet"
)

// ColumnRef locates a column either by canonical name + aliases or, for
// sheets whose headers carry no meaning, by fixed 0-based position.
type ColumnRef struct {
	Canonical sheet.CanonicalColumn
	Index     int // used when >= 0
}

// Named builds an alias-resolved reference.
func Named(name string, aliases ...string) ColumnRef {
	return ColumnRef{Canonical: sheet.CanonicalColumn{Name: name, Aliases: aliases}, Index: -1}
}

// At builds a positional reference.
func At(index int) ColumnRef {
	return ColumnRef{Index: index}
}

// none marks a column the source does not provide.
func none() ColumnRef {
	return ColumnRef{Index: -1}
}

// Source is the per-source mapping table. The four monthly sources differ
// only in these values; one transformer consumes them all.
type Source struct {
	Key         string // short name for logs and consolidation order
	Type        domain.TransactionType
	BusinessID  string
	CategoryID  *int64
	Description string

	// StatusColumn names the workflow-status column to filter on, empty
	// when the source has no status field.
	StatusColumn string

	// DatePositional selects the positional date strategy; DateIndex is
	// only read in that case, DateAliases otherwise.
	DatePositional bool
	DateIndex      int
	DateAliases    []string

	Amount     ColumnRef
	Account    ColumnRef
	ExternalID ColumnRef
	Reference  ColumnRef
}

func categoryID(id int64) *int64 { return &id }

// Sources returns the four configured sources in load order.
func Sources() []Source {
	return []Source{
		{
			Key:          "ventas_pc",
			Type:         domain.TypeIncome,
			BusinessID:   "negocio1",
			CategoryID:   categoryID(1),
			Description:  "Venta de vestidos Peri Collection",
			StatusColumn: "Estado",
			DateAliases:  []string{"FechaEntrega", "Fecha de pago", "Fecha"},
			Amount:       Named("TotalPedido", "Total", "Monto"),
			Account:      Named("MetodoPago", "Metodo de pago", "Metodo"),
			ExternalID:   Named("IdPedido"),
			Reference:    none(),
		},
		{
			Key:          "ventas_pi",
			Type:         domain.TypeIncome,
			BusinessID:   "negocio2",
			CategoryID:   categoryID(2),
			Description:  "Matrícula Peri Institute",
			StatusColumn: "Estado",
			DateAliases:  []string{"Fecha de pago", "FechaPago", "Fecha"},
			Amount:       Named("Monto", "Importe", "Total"),
			Account:      Named("MetodoPago", "Metodo de pago", "Metodo"),
			ExternalID:   Named("IdMatricula", "Matricula", "Codigo"),
			Reference:    Named("Comprobante", "Recibo"),
		},
		{
			// Legacy sheet, no usable headers: everything is positional.
			Key:            "ventas_pi_2",
			Type:           domain.TypeIncome,
			BusinessID:     "negocio2",
			CategoryID:     categoryID(2),
			Description:    "Matrícula Peri Institute (hoja antigua)",
			DatePositional: true,
			DateIndex:      1,
			Amount:         At(3),
			Account:        At(4),
			ExternalID:     At(0),
			Reference:      none(),
		},
		{
			Key:            "ventas_pi_3",
			Type:           domain.TypeIncome,
			BusinessID:     "negocio2",
			CategoryID:     categoryID(2),
			Description:    "Matrícula Peri Institute (matrícula antigua)",
			DatePositional: true,
			DateIndex:      2,
			Amount:         At(4),
			Account:        At(5),
			ExternalID:     At(0),
			Reference:      none(),
		},
	}
}
