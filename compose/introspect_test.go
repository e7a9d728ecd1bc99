package compose

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
)

func TestPipelineInfoTree(t *testing.T) {
	p := FromSlice([]int{1, 2, 3}).
		Filter(func(v int) bool { return v%2 == 1 }).
		Take(2).
		Foreach(func(int) {})

	info := p.Info()

	// 数据源一侧：一层已映射源，内部是已融合的组合操作
	assert.Equal(t, "mapped_source", info.Source.Kind)
	assert.Equal(t, "iterable_source", info.Source.Upstream.Kind)
	assert.Equal(t, "compose", info.Source.Operation.Kind)
	assert.Equal(t, "filter", info.Source.Operation.First.Name)
	assert.Equal(t, "take", info.Source.Operation.Second.Name)

	assert.Equal(t, "foreach_sink", info.Sink.Kind)
}

func TestInfoDumpIsValidJSON(t *testing.T) {
	p := FromSlice([]int{1, 2}).Take(1).Foreach(func(int) {})

	out, err := p.Info().Dump()
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, sonic.UnmarshalString(out, &decoded))

	src := decoded["source"].(map[string]any)
	assert.Equal(t, "mapped_source", src["kind"])
	assert.Equal(t, "take", src["operation"].(map[string]any)["name"])
	assert.Equal(t, "int", src["element_type"])
}

func TestInfoNeverTouchesCapturedValues(t *testing.T) {
	calls := 0
	src := FromSlice([]int{1}).Filter(func(v int) bool {
		calls++
		return true
	})

	_ = src.Info()
	_, err := src.Info().Dump()
	assert.NoError(t, err)
	assert.Zero(t, calls)
}
