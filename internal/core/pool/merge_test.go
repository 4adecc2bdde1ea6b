package pool

import (
	"testing"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMerges_AppendDedupesCategories(t *testing.T) {
	c := newTestComponent("org.example.App", "App")
	c.Categories = []string{"Utility"}

	payload := entities.NewComponent("org.example.App", entities.NewContext())
	payload.Categories = []string{"Utility", "Office"}

	out := applyMerges([]*entities.Component{c}, []entities.MergeOp{
		{Kind: entities.MergeAppend, Target: "org.example.App", Payload: payload},
	})

	require.Len(t, out, 1)
	assert.Len(t, out[0].Categories, 2)
}

func TestApplyMerges_OrderIsDeterministic(t *testing.T) {
	c := newTestComponent("org.example.App", "Original")

	later := entities.NewComponent("org.example.App", entities.NewContext())
	later.Name.Set("C", "From later origin")
	earlier := entities.NewComponent("org.example.App", entities.NewContext())
	earlier.Name.Set("C", "From earlier origin")

	out := applyMerges([]*entities.Component{c}, []entities.MergeOp{
		{Kind: entities.MergeReplace, Target: "org.example.App", OriginPriority: 1, Payload: later},
		{Kind: entities.MergeReplace, Target: "org.example.App", OriginPriority: 0, Payload: earlier},
	})

	got, _ := out[0].Name.Get("C")
	assert.Equal(t, "From later origin", got, "the higher-origin-priority merge should apply last")
}

func TestApplyMerges_AppendDedupesReleasesAndScreenshots(t *testing.T) {
	c := newTestComponent("org.example.App", "App")
	c.Releases = []entities.Release{{Version: "1.0"}}
	c.Screenshots = []entities.Screenshot{
		{Images: []entities.ScreenshotImage{{URL: "https://example.org/shot1.png"}}},
	}

	payload := entities.NewComponent("org.example.App", entities.NewContext())
	payload.Releases = []entities.Release{{Version: "1.0"}, {Version: "2.0"}}
	payload.Screenshots = []entities.Screenshot{
		{Images: []entities.ScreenshotImage{{URL: "https://example.org/shot1.png"}}},
		{Images: []entities.ScreenshotImage{{URL: "https://example.org/shot2.png"}}},
	}

	op := entities.MergeOp{Kind: entities.MergeAppend, Target: "org.example.App", Payload: payload}

	// Apply the same append merge set twice: the result must be idempotent.
	out := applyMerges([]*entities.Component{c}, []entities.MergeOp{op})
	out = applyMerges(out, []entities.MergeOp{op})

	require.Len(t, out, 1)
	assert.Len(t, out[0].Releases, 2, "releases should be deduped by version")
	assert.Len(t, out[0].Screenshots, 2, "screenshots should be deduped by image identity")
}

func TestApplyMerges_DiscardsUnknownTarget(t *testing.T) {
	c := newTestComponent("org.example.App", "App")
	out := applyMerges([]*entities.Component{c}, []entities.MergeOp{
		{Kind: entities.MergeRemoveComponent, Target: "no.such.id"},
	})
	assert.Len(t, out, 1, "merge on unknown target should be discarded")
}

func TestApplyMerges_NoOpsReturnsInputUnchanged(t *testing.T) {
	c := newTestComponent("org.example.App", "App")
	out := applyMerges([]*entities.Component{c}, nil)
	require.Len(t, out, 1)
	assert.Same(t, c, out[0], "applyMerges with no ops should return the input slice unchanged")
}
