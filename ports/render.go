package ports

import (
	"context"

	"unipower/domain/power"
)

// Renderer consumes a finished power table and produces an external
// artifact (heat-map workbook, HTML report). Renderers receive rows of
// (numeric, numeric, categorical, power in [0,1]) and nothing else;
// styling lives inside the adapter, never in the core.
type Renderer interface {
	Render(ctx context.Context, label string, table *power.Table) error
}
