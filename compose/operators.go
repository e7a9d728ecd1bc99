package compose

/*
 * operators.go - 算子词汇表
 *
 * 前半部分是原语节点形态的构造函数（Map、Fold、Concat、Flatten、Merge、Zip、
 * Span、Tee、TakeWhile、提升的外部处理器），后半部分是两个通用状态机的表实例化
 * （filter、drop、take、find、exists、forAll、mapFind、head、tail、
 * dropWhile、compress、expand、buffer）——命名组合子不携带独立逻辑，
 * 只是 FoldUntil / ElasticBuffer 的一张转移表。
 *
 * 节奏契约（由外部执行引擎遵守，这里只负责无歧义地结构化表达）：
 * 每个算子的消费不快于下游需求，产出不快于上游供给。
 */

import (
	"github.com/favbox/flume/internal/generic"
	"github.com/favbox/flume/schema"
)

// ====== 原语节点 ======

// Map 对每个元素应用 f，节奏中性。
func Map[A, B any](f func(A) B) Operation[A, B] {
	return Operation[A, B]{node: &opNode{
		kind:    opMap,
		inType:  generic.TypeOf[A](),
		outType: generic.TypeOf[B](),
		mapFn: func(v any) any {
			return f(v.(A))
		},
		userFn: f,
	}}
}

// Fold 以允许的最大速率消费上游，上游完成后恰好产出一个元素：
// f 对 seed 与完整序列的左折叠结果。
func Fold[A, B any](seed B, f func(B, A) B) Operation[A, B] {
	return Operation[A, B]{node: &opNode{
		kind:    opFold,
		inType:  generic.TypeOf[A](),
		outType: generic.TypeOf[B](),
		seed:    seed,
		foldFn: func(state, elem any) any {
			return f(state.(B), elem.(A))
		},
		userFn: f,
	}}
}

// Concat 当前流完成后，继续以 next 的元素延长同一输出流，顺序保持。
func Concat[A any](next Source[A]) Operation[A, A] {
	t := generic.TypeOf[A]()
	return Operation[A, A]{node: &opNode{kind: opConcat, inType: t, outType: t, source: next.node}}
}

// Merge 交错上游流与 other 的流。合并输出的节奏受下游需求限制；
// 跨源交错顺序不作规定，但每个源自身的相对顺序保持不变。
func Merge[A any](other Source[A]) Operation[A, A] {
	t := generic.TypeOf[A]()
	return Operation[A, A]{node: &opNode{kind: opMerge, inType: t, outType: t, source: other.node}}
}

// Pair 是 Zip 的输出元素：一对同步到达的元素。
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip 将每个上游元素与 other 的下一个元素配对。
// 两侧都有可用元素之前停顿；任一侧完成即完成；已配对的元素绝不丢弃。
func Zip[A, B any](other Source[B]) Operation[A, Pair[A, B]] {
	return Operation[A, Pair[A, B]]{node: &opNode{
		kind:    opZip,
		inType:  generic.TypeOf[A](),
		outType: generic.TypeOf[Pair[A, B]](),
		source:  other.node,
	}}
}

// Span 将上游切分为极大段：谓词 p 保持成立时元素追加到当前子流，
// 第一个不满足的元素开启新的子流。输出是流的流，
// 需要时经 Flatten / FlatMapNested 在外部重新拼接。
func Span[A any](p func(A) bool) Operation[A, Source[A]] {
	return Operation[A, Source[A]]{node: &opNode{
		kind:    opSpan,
		inType:  generic.TypeOf[A](),
		outType: generic.TypeOf[Source[A]](),
		predFn: func(v any) bool {
			return p(v.(A))
		},
		userFn: p,
	}}
}

// Tee 让每个经过的元素同时送达 sink；
// 主路节奏受主消费者与 sink 中较慢一方的限制。
func Tee[A any](sink Sink[A]) Operation[A, A] {
	t := generic.TypeOf[A]()
	return Operation[A, A]{node: &opNode{kind: opTee, inType: t, outType: t, sink: sink.node}}
}

// TakeWhile 在谓词保持成立期间透传元素，遇到首个不满足的元素即结束。
func TakeWhile[A any](p func(A) bool) Operation[A, A] {
	t := generic.TypeOf[A]()
	return Operation[A, A]{node: &opNode{
		kind:    opTakeWhile,
		inType:  t,
		outType: t,
		predFn: func(v any) bool {
			return p(v.(A))
		},
		userFn: p,
	}}
}

// Flatten 给定一条数据源的流，按到达顺序先耗尽一个内层数据源再进入下一个；
// 输出是有序拼接。
func Flatten[A any]() Operation[Source[A], A] {
	return Operation[Source[A], A]{node: &opNode{
		kind:    opFlatten,
		inType:  generic.TypeOf[Source[A]](),
		outType: generic.TypeOf[A](),
	}}
}

// FlatMapNested 对每个输入应用 op 得到一个数据源，随后行为同 Flatten。
func FlatMapNested[A, B any](op Operation[A, Source[B]]) Operation[A, B] {
	return Operation[A, B]{node: &opNode{
		kind:    opFlatMapNested,
		inType:  generic.TypeOf[A](),
		outType: generic.TypeOf[B](),
		inner:   op.node,
	}}
}

// FlatMap 是 FlatMapNested(Map(f)) 的便捷写法。
func FlatMap[A, B any](f func(A) Source[B]) Operation[A, B] {
	return FlatMapNested(Map(f))
}

// LiftProcessor 将外部双向处理器整体提升为一个不透明操作节点，
// 语义与节奏不变，纯边界适配。
func LiftProcessor[A, B any](p schema.Processor[A, B]) Operation[A, B] {
	return Operation[A, B]{node: &opNode{
		kind:      opProcessor,
		inType:    generic.TypeOf[A](),
		outType:   generic.TypeOf[B](),
		processor: p,
	}}
}

// ====== 有界折叠的表实例化 ======

// named 为表实例化补记算子别名与定义它的用户参数（用于结构描述与等价比较）。
func named[I, O any](op Operation[I, O], name string, a, b any) Operation[I, O] {
	op.node.name = name
	op.node.userFn = a
	op.node.userFn2 = b
	return op
}

// Filter 保留满足谓词的元素。状态为空；命中则产出，否则继续。
func Filter[A any](p func(A) bool) Operation[A, A] {
	op := FoldUntil[struct{}, A, A](struct{}{},
		func(s struct{}, v A) schema.FoldCommand[struct{}, A] {
			if p(v) {
				return schema.FoldEmit(v, s)
			}
			return schema.FoldContinue[struct{}, A](s)
		}, nil)

	return named(op, "filter", p, nil)
}

// Drop 跳过前 n 个元素。状态为计数器；计数未尽时递减继续，之后原样透传。
func Drop[A any](n int) Operation[A, A] {
	op := FoldUntil[int, A, A](n,
		func(remaining int, v A) schema.FoldCommand[int, A] {
			if remaining > 0 {
				return schema.FoldContinue[int, A](remaining - 1)
			}
			return schema.FoldEmit(v, 0)
		}, nil)

	return named(op, "drop", nil, nil)
}

// Take 只取前 n 个元素。状态为计数器；在最后一个允许的元素处 EmitAndStop，
// 因此不会向上游请求第 n+1 个元素；n 不为正时首个输入即 Stop。
func Take[A any](n int) Operation[A, A] {
	op := FoldUntil[int, A, A](n,
		func(remaining int, v A) schema.FoldCommand[int, A] {
			switch {
			case remaining > 1:
				return schema.FoldEmit(v, remaining-1)
			case remaining == 1:
				return schema.FoldEmitAndStop[int, A](v)
			default:
				return schema.FoldStop[int, A]()
			}
		}, nil)

	return named(op, "take", nil, nil)
}

// DropWhile 跳过满足谓词的前缀，自首个不满足的元素起原样透传。
func DropWhile[A any](p func(A) bool) Operation[A, A] {
	op := FoldUntil[bool, A, A](true,
		func(dropping bool, v A) schema.FoldCommand[bool, A] {
			if dropping && p(v) {
				return schema.FoldContinue[bool, A](true)
			}
			return schema.FoldEmit(v, false)
		}, nil)

	return named(op, "drop_while", p, nil)
}

// Find 在首个命中谓词的元素处 EmitAndStop，之后的元素不再被消费；
// 无命中时完成而无输出。
func Find[A any](p func(A) bool) Operation[A, A] {
	op := FoldUntil[struct{}, A, A](struct{}{},
		func(s struct{}, v A) schema.FoldCommand[struct{}, A] {
			if p(v) {
				return schema.FoldEmitAndStop[struct{}, A](v)
			}
			return schema.FoldContinue[struct{}, A](s)
		}, nil)

	return named(op, "find", p, nil)
}

// MapFind 在 f 首次给出结果的元素处 EmitAndStop 该结果；
// 上游完成仍无命中时产出 fallback。
func MapFind[A, B any](f func(A) (B, bool), fallback B) Operation[A, B] {
	op := FoldUntil[struct{}, A, B](struct{}{},
		func(s struct{}, v A) schema.FoldCommand[struct{}, B] {
			if out, ok := f(v); ok {
				return schema.FoldEmitAndStop[struct{}, B](out)
			}
			return schema.FoldContinue[struct{}, B](s)
		},
		func(struct{}) (B, bool) {
			return fallback, true
		})

	return named(op, "map_find", f, fallback)
}

// Exists 由 MapFind 派生：首个命中即产出 true 并停止，完成无命中产出 false。
func Exists[A any](p func(A) bool) Operation[A, bool] {
	op := MapFind(func(v A) (bool, bool) {
		return true, p(v)
	}, false)

	return named(op, "exists", p, nil)
}

// ForAll 由 MapFind 对谓词取反派生：首个反例产出 false 并停止，
// 完成无反例产出 true。
func ForAll[A any](p func(A) bool) Operation[A, bool] {
	op := MapFind(func(v A) (bool, bool) {
		return false, !p(v)
	}, true)

	return named(op, "for_all", p, nil)
}

// Head 只取首个元素。
func Head[A any]() Operation[A, A] {
	op := FoldUntil[struct{}, A, A](struct{}{},
		func(s struct{}, v A) schema.FoldCommand[struct{}, A] {
			return schema.FoldEmitAndStop[struct{}, A](v)
		}, nil)

	return named(op, "head", nil, nil)
}

// Tail 跳过首个元素，之后原样透传。
func Tail[A any]() Operation[A, A] {
	op := FoldUntil[bool, A, A](false,
		func(seen bool, v A) schema.FoldCommand[bool, A] {
			if !seen {
				return schema.FoldContinue[bool, A](true)
			}
			return schema.FoldEmit(v, true)
		}, nil)

	return named(op, "tail", nil, nil)
}

// ====== 弹性缓冲的表实例化 ======

// bufferedValue 至多缓存一个元素的状态。
type bufferedValue[A any] struct {
	value A
	ok    bool
}

// Compress 至多缓存一个值：下游未就绪期间，后续到达经 f 折叠进缓存值，
// 一有机会立即产出。自上次产出以来到达的信息绝不丢弃，只做并发到达的折叠。
func Compress[A any](f func(A, A) A) Operation[A, A] {
	op := ElasticBuffer[bufferedValue[A], A, A](bufferedValue[A]{},
		func(s bufferedValue[A], v A) bufferedValue[A] {
			if !s.ok {
				return bufferedValue[A]{value: v, ok: true}
			}
			return bufferedValue[A]{value: f(s.value, v), ok: true}
		},
		func(s bufferedValue[A]) (A, bufferedValue[A], bool) {
			if !s.ok {
				var zero A
				return zero, s, false
			}
			return s.value, bufferedValue[A]{}, true
		},
		func(bufferedValue[A]) bool {
			return true
		})

	return named(op, "compress", f, nil)
}

// Expand 保留最近的值，下游每次询问都重新供给——即使上游没有新数据；
// 供给后以 produce 外推下一次的供给值。上游产出首个元素之前绝不凭空造数。
func Expand[A any](produce func(A) A) Operation[A, A] {
	op := ElasticBuffer[bufferedValue[A], A, A](bufferedValue[A]{},
		func(s bufferedValue[A], v A) bufferedValue[A] {
			return bufferedValue[A]{value: v, ok: true}
		},
		func(s bufferedValue[A]) (A, bufferedValue[A], bool) {
			if !s.ok {
				var zero A
				return zero, s, false
			}
			return s.value, bufferedValue[A]{value: produce(s.value), ok: true}, true
		},
		func(bufferedValue[A]) bool {
			return true
		})

	return named(op, "expand", produce, nil)
}

// Buffer 至多缓存 n 个元素的先进先出缓冲：
// 缓冲未满才允许向上游请求（canConsume），下游就绪时按到达顺序供给。
func Buffer[A any](n int) Operation[A, A] {
	op := ElasticBuffer[[]A, A, A](nil,
		func(s []A, v A) []A {
			return append(s, v)
		},
		func(s []A) (A, []A, bool) {
			if len(s) == 0 {
				var zero A
				return zero, s, false
			}
			return s[0], s[1:], true
		},
		func(s []A) bool {
			return len(s) < n
		})

	return named(op, "buffer", n, nil)
}
