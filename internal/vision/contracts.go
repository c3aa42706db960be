package vision

import (
	"context"

	"github.com/auditpack/auditpack/internal/entity"
)

// Extractor is the interface the ingestion orchestrator depends on. Photos
// are data URLs as delivered by the capture surface. The raw JSON document
// accepted by the gateway is returned alongside the coerced record for
// auditing. Implementations are stateless and safe to retry in full.
type Extractor interface {
	Extract(ctx context.Context, photos []string) (entity.ExtractedData, []byte /*rawJSON*/, error)
}
