package compose

/*
 * automaton.go - 两个通用状态机节点
 *
 * 核心组件：
 *   - FoldUntil: 有界折叠状态机（BoundedFold），每个输入至多一个输出，外加继续/停止决策
 *   - ElasticBuffer: 弹性缓冲状态机，解耦生产与消费节奏
 *   - Transform: 用户态转换状态机，消费多发射指令代数，每个输入可产出任意多个元素
 *
 * 设计特点：
 *   - 表驱动: 十余个命名组合子（filter、drop、take、find……见 operators.go）
 *     只是这里两个状态机的表实例化，不携带独立逻辑
 *   - 泛型到擦除的适配: 用户函数保持完整类型，内部包装为 any 形参的闭包，
 *     原始函数另存一份用于结构等价比较
 *   - 全域转移: 每个可达的状态/输入组合都有定义好的指令结果，
 *     执行引擎不会收到未定义的转移
 */

import (
	"fmt"

	"github.com/favbox/flume/internal/generic"
	"github.com/favbox/flume/schema"
)

// FoldUntil 构造有界折叠状态机节点。
// onNext(state, elem) 每步返回一条有界折叠指令：Emit 产出一个并推进状态、
// EmitAndStop 产出最后一个并不再请求上游、Continue 只推进状态、Stop 直接结束。
// 上游完成时调用 onComplete(finalState)，可产出一个尾部元素；onComplete 可为 nil。
func FoldUntil[S, A, B any](seed S, onNext func(S, A) schema.FoldCommand[S, B], onComplete func(S) (B, bool)) Operation[A, B] {
	step := func(state, elem any) schema.FoldCommand[any, any] {
		c := onNext(state.(S), elem.(A))
		switch c.Kind() {
		case schema.FoldCommandEmit:
			return schema.FoldEmit[any, any](c.Value(), c.State())
		case schema.FoldCommandEmitAndStop:
			return schema.FoldEmitAndStop[any, any](c.Value())
		case schema.FoldCommandContinue:
			return schema.FoldContinue[any, any](c.State())
		case schema.FoldCommandStop:
			return schema.FoldStop[any, any]()
		default:
			panic(fmt.Sprintf("不可能的有界折叠指令类型: %d", int8(c.Kind())))
		}
	}

	var done func(any) (any, bool)
	if onComplete != nil {
		done = func(state any) (any, bool) {
			return onComplete(state.(S))
		}
	}

	return Operation[A, B]{node: &opNode{
		kind:    opFoldUntil,
		inType:  generic.TypeOf[A](),
		outType: generic.TypeOf[B](),
		seed:    seed,
		stepFn:  step,
		doneFn:  done,
		userFn:  onNext,
		userFn2: onComplete,
	}}
}

// ElasticBuffer 构造弹性缓冲状态机节点，解耦生产者与消费者的节奏。
// 下游未就绪时，每个被接受的元素经 compress(state, elem) 折叠进状态；
// 下游就绪时，expand(state) 给出可能缺席的输出与后继状态（ok 为 false 表示暂无产出）；
// canConsume(state) 决定是否还允许向上游请求元素。
func ElasticBuffer[S, A, B any](seed S, compress func(S, A) S, expand func(S) (B, S, bool), canConsume func(S) bool) Operation[A, B] {
	return Operation[A, B]{node: &opNode{
		kind:    opBuffer,
		inType:  generic.TypeOf[A](),
		outType: generic.TypeOf[B](),
		seed:    seed,
		compressFn: func(state, elem any) any {
			return compress(state.(S), elem.(A))
		},
		expandFn: func(state any) (any, any, bool) {
			out, next, ok := expand(state.(S))
			return out, next, ok
		},
		consumeFn: func(state any) bool {
			return canConsume(state.(S))
		},
		userFn:  compress,
		userFn2: expand,
	}}
}

// Transform 构造用户态转换状态机节点。
// onNext(state, elem) 返回一条多发射指令：零个（Continue）、一个（Emit）或
// 多个（Commands）输出，Stop 提前结束。上游完成时 onComplete(finalState)
// 可产出一串尾部元素；onComplete 可为 nil。
// 这是多发射指令代数（schema.Command 与 Append）的消费方。
func Transform[S, A, B any](seed S, onNext func(S, A) schema.Command[S, B], onComplete func(S) []B) Operation[A, B] {
	emit := func(state, elem any) schema.Command[any, any] {
		return eraseCommand(onNext(state.(S), elem.(A)))
	}

	var flush func(any) []any
	if onComplete != nil {
		flush = func(state any) []any {
			vs := onComplete(state.(S))
			out := make([]any, len(vs))
			for i, v := range vs {
				out[i] = v
			}
			return out
		}
	}

	return Operation[A, B]{node: &opNode{
		kind:    opTransform,
		inType:  generic.TypeOf[A](),
		outType: generic.TypeOf[B](),
		seed:    seed,
		emitFn:  emit,
		flushFn: flush,
		userFn:  onNext,
		userFn2: onComplete,
	}}
}

// eraseCommand 将带类型的多发射指令重建为擦除形态，供状态机节点携带。
func eraseCommand[S, B any](c schema.Command[S, B]) schema.Command[any, any] {
	switch c.Kind() {
	case schema.CommandEmit:
		return schema.Emit[any, any](c.Value())
	case schema.CommandContinue:
		return schema.Continue[any, any](c.State())
	case schema.CommandStop:
		return schema.Stop[any, any]()
	case schema.CommandMulti:
		list := c.List()
		out := make([]schema.Command[any, any], 0, len(list))
		for _, e := range list {
			out = append(out, eraseCommand(e))
		}
		return schema.Commands(out...)
	default:
		panic(fmt.Sprintf("不可能的多发射指令类型: %d", int8(c.Kind())))
	}
}
