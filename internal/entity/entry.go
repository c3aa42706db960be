package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/auditpack/auditpack/constants"
)

// ProductEntry is one ingested capture. Created exactly once by the
// orchestrator; only the review status changes afterwards.
type ProductEntry struct {
	ID            uuid.UUID              `json:"id"`
	ListID        uuid.UUID              `json:"list_id"`
	InspectorID   uuid.UUID              `json:"inspector_id"`
	Photos        []string               `json:"photos"`
	Extracted     ExtractedData          `json:"extracted"`
	CNPJRaiz      string                 `json:"cnpj_raiz"`
	IsNewProspect bool                   `json:"is_new_prospect"`
	ReviewStatus  constants.ReviewStatus `json:"review_status"`
	CapturedAt    time.Time              `json:"captured_at"`
}
