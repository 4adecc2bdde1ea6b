package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeOp_Less_ByPriority(t *testing.T) {
	a := MergeOp{OriginPriority: 0, OriginName: "b", DocumentOrder: 0}
	b := MergeOp{OriginPriority: 1, OriginName: "a", DocumentOrder: 0}
	assert.True(t, a.Less(b), "lower priority should sort first regardless of name")
}

func TestMergeOp_Less_ByOriginName(t *testing.T) {
	a := MergeOp{OriginPriority: 0, OriginName: "alpha", DocumentOrder: 5}
	b := MergeOp{OriginPriority: 0, OriginName: "beta", DocumentOrder: 0}
	assert.True(t, a.Less(b), "equal priority should fall back to origin name")
}

func TestMergeOp_Less_ByDocumentOrder(t *testing.T) {
	a := MergeOp{OriginPriority: 0, OriginName: "same", DocumentOrder: 1}
	b := MergeOp{OriginPriority: 0, OriginName: "same", DocumentOrder: 2}
	assert.True(t, a.Less(b), "equal priority and name should fall back to document order")
	assert.False(t, b.Less(a), "reverse comparison should be false")
}
