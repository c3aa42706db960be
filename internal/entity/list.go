package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/auditpack/auditpack/constants"
)

// InspectionList is the unit of remote persistence: entries are embedded in
// the list's record, newest first, so any entry mutation rewrites the whole
// sequence. Revision increases on every remote write and guards the
// read-modify-write cycle.
type InspectionList struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Establishment string               `json:"establishment"`
	City          string               `json:"city"`
	InspectorID   uuid.UUID            `json:"inspector_id"`
	IsClosed      bool                 `json:"is_closed"`
	Status        constants.ListStatus `json:"status"`
	Revision      int64                `json:"revision"`
	CreatedAt     time.Time            `json:"created_at"`
	Entries       []ProductEntry       `json:"entries"`
}
