package compose

import (
	"fmt"
	"reflect"

	"github.com/favbox/flume/schema"
)

// 参考求值器：基于拉取语义在测试内解释构建出的描述值，
// 用于验证转移表与算子契约（节奏、拉取次数、分组……）。
// 库本身是惰性数据，从不执行——求值器只存在于测试中。

// pull 逐个拉取元素，ok 为 false 表示流结束。
type pull func() (any, bool)

// drain 拉取到流结束，收集全部元素。
func drain(p pull) []any {
	var out []any
	for v, ok := p(); ok; v, ok = p() {
		out = append(out, v)
	}
	return out
}

// evalSourceValue 求值类型安全门面包装的数据源。
func evalSourceValue[A any](s Source[A]) pull {
	return evalSource(s.node)
}

func evalSource(n *sourceNode) pull {
	switch n.kind {
	case srcIterable:
		next := n.iterator()
		return next
	case srcMapped:
		return evalOp(n.op, evalSource(n.upstream))
	case srcProducer:
		panic("参考求值器不支持外部推式生产者")
	default:
		panic(fmt.Sprintf("不可能的数据源节点类型: %d", int8(n.kind)))
	}
}

func evalOp(n *opNode, upstream pull) pull {
	switch n.kind {
	case opIdentity:
		return upstream

	case opCompose:
		return evalOp(n.second, evalOp(n.first, upstream))

	case opMap:
		return func() (any, bool) {
			v, ok := upstream()
			if !ok {
				return nil, false
			}
			return n.mapFn(v), true
		}

	case opFold:
		done := false
		return func() (any, bool) {
			if done {
				return nil, false
			}
			done = true
			acc := n.seed
			for v, ok := upstream(); ok; v, ok = upstream() {
				acc = n.foldFn(acc, v)
			}
			return acc, true
		}

	case opFoldUntil:
		return evalFoldUntil(n, upstream)

	case opBuffer:
		return evalBuffer(n, upstream)

	case opTransform:
		return evalTransform(n, upstream)

	case opTakeWhile:
		stopped := false
		return func() (any, bool) {
			if stopped {
				return nil, false
			}
			v, ok := upstream()
			if !ok || !n.predFn(v) {
				stopped = true
				return nil, false
			}
			return v, true
		}

	case opConcat:
		var second pull
		return func() (any, bool) {
			if second == nil {
				if v, ok := upstream(); ok {
					return v, true
				}
				second = evalSource(n.source)
			}
			return second()
		}

	case opMerge:
		// 跨源交错顺序不作规定，先左后右足以验证各源自身顺序与总量
		other := evalSource(n.source)
		leftDone := false
		return func() (any, bool) {
			if !leftDone {
				if v, ok := upstream(); ok {
					return v, true
				}
				leftDone = true
			}
			return other()
		}

	case opZip:
		other := evalSource(n.source)
		done := false
		return func() (any, bool) {
			if done {
				return nil, false
			}
			l, ok := upstream()
			if !ok {
				done = true
				return nil, false
			}
			r, ok := other()
			if !ok {
				done = true
				return nil, false
			}
			return Pair[any, any]{First: l, Second: r}, true
		}

	case opSpan:
		return evalSpan(n, upstream)

	case opFlatten:
		return flattenPull(upstream)

	case opFlatMapNested:
		return flattenPull(evalOp(n.inner, upstream))

	case opTee:
		deliver := sinkDeliver(n.sink)
		return func() (any, bool) {
			v, ok := upstream()
			if !ok {
				return nil, false
			}
			deliver(v)
			return v, true
		}

	case opProcessor:
		panic("参考求值器不支持不透明处理器")

	default:
		panic(fmt.Sprintf("不可能的操作节点类型: %d", int8(n.kind)))
	}
}

func evalFoldUntil(n *opNode, upstream pull) pull {
	state := n.seed
	stopped := false
	return func() (any, bool) {
		if stopped {
			return nil, false
		}
		for {
			v, ok := upstream()
			if !ok {
				stopped = true
				if n.doneFn != nil {
					if out, has := n.doneFn(state); has {
						return out, true
					}
				}
				return nil, false
			}

			c := n.stepFn(state, v)
			switch c.Kind() {
			case schema.FoldCommandEmit:
				state = c.State()
				return c.Value(), true
			case schema.FoldCommandEmitAndStop:
				stopped = true
				return c.Value(), true
			case schema.FoldCommandContinue:
				state = c.State()
			case schema.FoldCommandStop:
				stopped = true
				return nil, false
			default:
				panic(fmt.Sprintf("不可能的有界折叠指令类型: %d", int8(c.Kind())))
			}
		}
	}
}

// evalBuffer 以「下游始终就绪」的节奏解释弹性缓冲。
// compress / expand 的缓冲语义本身由 automaton_test.go 直接驱动转移表验证。
func evalBuffer(n *opNode, upstream pull) pull {
	state := n.seed
	upDone := false
	return func() (any, bool) {
		for {
			if out, next, ok := n.expandFn(state); ok {
				state = next
				return out, true
			}
			if upDone || !n.consumeFn(state) {
				return nil, false
			}
			v, ok := upstream()
			if !ok {
				upDone = true
				continue
			}
			state = n.compressFn(state, v)
		}
	}
}

func evalTransform(n *opNode, upstream pull) pull {
	state := n.seed
	var queue []any
	stopped := false

	apply := func(c schema.Command[any, any]) {
		switch c.Kind() {
		case schema.CommandEmit:
			queue = append(queue, c.Value())
		case schema.CommandContinue:
			state = c.State()
		case schema.CommandStop:
			stopped = true
		case schema.CommandMulti:
			for _, e := range c.List() {
				switch e.Kind() {
				case schema.CommandEmit:
					queue = append(queue, e.Value())
				case schema.CommandStop:
					stopped = true
				default:
					panic(fmt.Sprintf("指令列表中不可能出现的变体: %s", e.Kind()))
				}
			}
		default:
			panic(fmt.Sprintf("不可能的多发射指令类型: %d", int8(c.Kind())))
		}
	}

	return func() (any, bool) {
		for {
			if len(queue) > 0 {
				v := queue[0]
				queue = queue[1:]
				return v, true
			}
			if stopped {
				return nil, false
			}
			v, ok := upstream()
			if !ok {
				stopped = true
				if n.flushFn != nil {
					queue = append(queue, n.flushFn(state)...)
				}
				continue
			}
			apply(n.emitFn(state, v))
		}
	}
}

// evalSpan 把上游切分为极大段：满足谓词的连续元素构成一段，
// 每个不满足的元素独立成段。
func evalSpan(n *opNode, upstream pull) pull {
	var queue []*sourceNode
	var run []any
	done := false

	flushRun := func() {
		if len(run) > 0 {
			queue = append(queue, sliceSource(run, n.inType))
			run = nil
		}
	}

	return func() (any, bool) {
		for {
			if len(queue) > 0 {
				g := queue[0]
				queue = queue[1:]
				return g, true
			}
			if done {
				return nil, false
			}
			v, ok := upstream()
			if !ok {
				done = true
				flushRun()
				continue
			}
			if n.predFn(v) {
				run = append(run, v)
				continue
			}
			flushRun()
			queue = append(queue, sliceSource([]any{v}, n.inType))
		}
	}
}

func flattenPull(upstream pull) pull {
	var cur pull
	return func() (any, bool) {
		for {
			if cur != nil {
				if v, ok := cur(); ok {
					return v, true
				}
				cur = nil
			}
			v, ok := upstream()
			if !ok {
				return nil, false
			}
			cur = evalSource(asSourceNode(v))
		}
	}
}

// asSourceNode 取回异构元素携带的数据源结构（Source 门面或内部节点均可）。
func asSourceNode(v any) *sourceNode {
	r, ok := v.(interface{ ref() *sourceNode })
	if !ok {
		panic(fmt.Sprintf("参考求值器: 元素不是数据源: %T", v))
	}
	return r.ref()
}

// sliceSource 由已收集的元素构造测试内的可迭代数据源节点。
func sliceSource(values []any, elemType reflect.Type) *sourceNode {
	vs := values
	return &sourceNode{
		kind:     srcIterable,
		elemType: elemType,
		payload:  vs,
		iterator: func() func() (any, bool) {
			i := 0
			return func() (any, bool) {
				if i >= len(vs) {
					return nil, false
				}
				v := vs[i]
				i++
				return v, true
			}
		},
	}
}

func sinkDeliver(n *sinkNode) func(any) {
	switch n.kind {
	case sinkForeach:
		return n.foreachFn
	case sinkConsumer, sinkMapped:
		panic("参考求值器只支持 Foreach 旁路汇点")
	default:
		panic(fmt.Sprintf("不可能的汇点节点类型: %d", int8(n.kind)))
	}
}
