package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/favbox/flume/schema"
)

func TestNamedOperatorsAreTableInstances(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}

	// 手写 take(3) 的转移表，与命名组合子在相同输入下行为一致
	handTake := FoldUntil[int, int, int](3,
		func(remaining int, v int) schema.FoldCommand[int, int] {
			switch {
			case remaining > 1:
				return schema.FoldEmit(v, remaining-1)
			case remaining == 1:
				return schema.FoldEmitAndStop[int, int](v)
			default:
				return schema.FoldStop[int, int]()
			}
		}, nil)

	want := drain(evalSourceValue(Via(FromSlice(input), Take[int](3))))
	got := drain(evalSourceValue(Via(FromSlice(input), handTake)))
	assert.Equal(t, want, got)

	// 手写 filter 的转移表
	isEven := func(v int) bool { return v%2 == 0 }
	handFilter := FoldUntil[struct{}, int, int](struct{}{},
		func(s struct{}, v int) schema.FoldCommand[struct{}, int] {
			if isEven(v) {
				return schema.FoldEmit(v, s)
			}
			return schema.FoldContinue[struct{}, int](s)
		}, nil)

	want = drain(evalSourceValue(Via(FromSlice(input), Filter(isEven))))
	got = drain(evalSourceValue(Via(FromSlice(input), handFilter)))
	assert.Equal(t, want, got)
}

func TestFoldUntilCompletionTail(t *testing.T) {
	// 计数状态机：逐元素推进状态，上游完成时产出尾部元素
	count := FoldUntil[int, string, int](0,
		func(n int, _ string) schema.FoldCommand[int, int] {
			return schema.FoldContinue[int, int](n + 1)
		},
		func(n int) (int, bool) {
			return n, true
		})

	src := Via(FromSlice([]string{"a", "b", "c"}), count)
	assert.Equal(t, []any{3}, drain(evalSourceValue(src)))
}

func TestTakeNonPositiveStopsImmediately(t *testing.T) {
	src := FromSlice([]int{1, 2}).Take(0)
	assert.Empty(t, drain(evalSourceValue(src)))
}

func TestCompressFoldsConcurrentArrivals(t *testing.T) {
	max := func(a, b int) int {
		if a > b {
			return a
		}
		return b
	}
	n := Compress(max).node

	// 下游一直未就绪：四次到达全部折叠进缓存值
	state := n.seed
	for _, v := range []int{5, 1, 9, 2} {
		assert.True(t, n.consumeFn(state))
		state = n.compressFn(state, v)
	}

	// 下游就绪：恰好产出一个折叠结果，之后缓存为空
	out, next, ok := n.expandFn(state)
	assert.True(t, ok)
	assert.Equal(t, 9, out)

	_, _, ok = n.expandFn(next)
	assert.False(t, ok)
}

func TestExpandReSuppliesLatest(t *testing.T) {
	n := Expand(func(v int) int { return v }).node

	// 上游产出首个元素之前绝不凭空造数
	_, _, ok := n.expandFn(n.seed)
	assert.False(t, ok)

	// 一次到达之后，下游每次询问都得到重新供给
	state := n.compressFn(n.seed, 7)
	for i := 0; i < 3; i++ {
		out, next, ok := n.expandFn(state)
		assert.True(t, ok)
		assert.Equal(t, 7, out)
		state = next
	}
}

func TestExpandExtrapolates(t *testing.T) {
	n := Expand(func(v int) int { return v + 1 }).node

	state := n.compressFn(n.seed, 7)
	var outs []int
	for i := 0; i < 3; i++ {
		out, next, ok := n.expandFn(state)
		assert.True(t, ok)
		outs = append(outs, out.(int))
		state = next
	}

	// 每次供给后以 produce 外推下一次的供给值
	assert.Equal(t, []int{7, 8, 9}, outs)
}

func TestBufferGatesConsumption(t *testing.T) {
	n := Buffer[int](2).node

	// 缓冲未满才允许向上游请求
	state := n.seed
	assert.True(t, n.consumeFn(state))
	state = n.compressFn(state, 1)
	assert.True(t, n.consumeFn(state))
	state = n.compressFn(state, 2)
	assert.False(t, n.consumeFn(state))

	// 按到达顺序供给，弹出即腾出容量
	out, state, ok := n.expandFn(state)
	assert.True(t, ok)
	assert.Equal(t, 1, out)
	assert.True(t, n.consumeFn(state))

	out, state, ok = n.expandFn(state)
	assert.True(t, ok)
	assert.Equal(t, 2, out)

	_, _, ok = n.expandFn(state)
	assert.False(t, ok)
}

func TestCompressBehavesAsIdentityWhenDownstreamKeepsUp(t *testing.T) {
	// 下游始终就绪时不发生折叠，逐个透传
	src := FromSlice([]int{3, 1, 4}).Compress(func(a, b int) int { return a + b })
	assert.Equal(t, []any{3, 1, 4}, drain(evalSourceValue(src)))
}
