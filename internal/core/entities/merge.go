package entities

// MergeOp is a pseudo-component: a parsed node marked with
// merge="append|replace|remove-component" that mutates an already-indexed
// Component rather than being indexed itself. Merge ops are queued during
// loading and applied, in ascending order, after every origin's base
// index is built.
type MergeOp struct {
	Kind   MergeKind
	Target string // the component id this merge applies to

	// Origin/Priority/Sequence determine application order: ascending
	// (origin-priority, origin-name, document-order)
	OriginPriority int
	OriginName     string
	DocumentOrder  int

	// Payload is the partial Component carrying the fields to apply. For
	// MergeReplace, the non-empty Name, Summary, Description, Icons,
	// Categories, Keywords, Screenshots and URLs are applied. For
	// MergeAppend, Categories, Keywords, Screenshots, Releases and Provides
	// are appended then de-duplicated; other list fields are not applied.
	// For MergeRemoveComponent, Payload is unused.
	Payload *Component
}

// Less orders two MergeOps by the ascending (origin-priority,
// origin-name, document-order) rule.
func (m MergeOp) Less(other MergeOp) bool {
	if m.OriginPriority != other.OriginPriority {
		return m.OriginPriority < other.OriginPriority
	}
	if m.OriginName != other.OriginName {
		return m.OriginName < other.OriginName
	}
	return m.DocumentOrder < other.DocumentOrder
}
