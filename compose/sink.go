package compose

/*
 * sink.go - 汇点联合
 *
 * 核心组件：
 *   - Sink[I]: 类型安全的汇点门面，描述「I 的流在何处被消费」
 *   - sinkNode: 类型擦除的汇点节点（外部推式消费者 / Foreach 终端 / 已映射汇点）
 *
 * 设计特点：
 *   - 对 I 逆变: MapSink 在内层汇点之前施加一个操作，得到接受更宽输入的汇点；
 *     泛型门面将这一类型义务交给编译器
 *   - 终端不变式由 pipeline.go 的汇点迁移重写保证: Pipeline 形成之前，
 *     所有已映射汇点都会被消去
 */

import (
	"fmt"
	"reflect"

	"github.com/favbox/flume/internal/generic"
	"github.com/favbox/flume/schema"
)

// sinkKind 汇点节点的变体标签。
type sinkKind int8

const (
	sinkConsumer sinkKind = iota // 包装外部推式消费者
	sinkForeach                  // 逐元素副作用的终端汇点
	sinkMapped                   // 内层汇点之前施加一个操作
)

// String 返回变体名称。
func (k sinkKind) String() string {
	switch k {
	case sinkConsumer:
		return "consumer_sink"
	case sinkForeach:
		return "foreach_sink"
	case sinkMapped:
		return "mapped_sink"
	default:
		panic(fmt.Sprintf("不可能的汇点节点类型: %d", int8(k)))
	}
}

// sinkNode 类型擦除的汇点节点。
type sinkNode struct {
	kind sinkKind

	elemType reflect.Type // 声明的输入元素类型

	payload   any           // sinkConsumer 的 Consumer，原样保存用于等价比较
	foreachFn func(any)     // sinkForeach 的擦除副作用入口，由执行引擎逐元素调用
	userFn    any           // sinkForeach 构造时捕获的用户函数，用于等价比较

	op    *opNode   // sinkMapped 的前置操作
	inner *sinkNode // sinkMapped 的内层汇点
}

// terminal 报告汇点是否为终端形态（非已映射）。
func (n *sinkNode) terminal() bool {
	return n.kind != sinkMapped
}

// Sink 描述「I 的流在何处被消费」的纯数据值。
type Sink[I any] struct {
	node *sinkNode
}

// FromConsumer 将外部推式消费者提升为汇点。纯边界适配，语义不变。
func FromConsumer[A any](c schema.Consumer[A]) Sink[A] {
	return Sink[A]{node: &sinkNode{
		kind:     sinkConsumer,
		elemType: generic.TypeOf[A](),
		payload:  c,
	}}
}

// Foreach 逐元素副作用的终端汇点，以允许的最大速率消费。
// 这是唯一内建的终端汇点。
func Foreach[A any](f func(A)) Sink[A] {
	return Sink[A]{node: &sinkNode{
		kind:     sinkForeach,
		elemType: generic.TypeOf[A](),
		foreachFn: func(v any) {
			f(v.(A))
		},
		userFn: f,
	}}
}

// MapSink 在内层汇点之前施加操作 op，得到接受 A 的汇点。
// 汇点对输入类型逆变：op 接受多窄的类型，结果汇点就接受多窄的类型。
// 管道收尾时，这里包装的操作会经由汇点迁移重写移到数据源一侧。
func MapSink[A, B any](op Operation[A, B], inner Sink[B]) Sink[A] {
	mustAssignable(op.node.outType, inner.node.elemType, "map_sink")

	return Sink[A]{node: &sinkNode{
		kind:     sinkMapped,
		elemType: op.node.inType,
		op:       op.node,
		inner:    inner.node,
	}}
}

// Equal 报告两个汇点是否结构等价。
func (s Sink[I]) Equal(other Sink[I]) bool {
	return equalSink(s.node, other.node)
}

// Info 返回汇点的结构描述树。
func (s Sink[I]) Info() *NodeInfo {
	return sinkInfo(s.node)
}
