package constants

// ReviewStatus is the canonical review state of a product entry.
type ReviewStatus string

// Stable values (store these exact strings in the list document).
const (
	ReviewPending  ReviewStatus = "PENDING"  // initial state after ingestion
	ReviewApproved ReviewStatus = "APPROVED" // confirmed by a reviewer
	ReviewRejected ReviewStatus = "REJECTED" // discarded by a reviewer
)

// ListStatus is the lifecycle state of an inspection list.
type ListStatus string

const (
	ListExecuting ListStatus = "EXECUTING" // open for new captures
	ListClosed    ListStatus = "CLOSED"    // terminal, no further entries
)
