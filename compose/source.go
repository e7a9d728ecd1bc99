package compose

/*
 * source.go - 数据源联合与附加融合
 *
 * 核心组件：
 *   - Source[O]: 类型安全的数据源门面，描述「O 的流从何而来」
 *   - sourceNode: 类型擦除的数据源节点（外部可迭代值 / 外部推式生产者 / 已映射源）
 *   - Via: 将操作附加到数据源，经由 Compose 融合进既有操作
 *   - Exposure[A]: 数据源的生产者视图工件，交给执行引擎的另一种产物
 *
 * 设计特点：
 *   - 融合不变式: 已映射源的再附加会融合进其既有操作字段，
 *     已映射源永不包裹另一个已映射源
 *   - 显式提升: 外部值只能通过 FromIterable / FromProducer / FromSlice 进入代数
 *   - 惰性描述: 构造只记录结构，从不拉取外部值，不产生任何副作用
 */

import (
	"fmt"
	"reflect"

	"github.com/favbox/flume/internal/generic"
	"github.com/favbox/flume/schema"
)

// ====== 数据源节点联合 ======

// srcKind 数据源节点的变体标签。
type srcKind int8

const (
	srcIterable srcKind = iota // 包装外部可迭代值
	srcProducer                // 包装外部推式生产者
	srcMapped                  // 上游数据源 + 一个已融合操作
)

// String 返回变体名称。
func (k srcKind) String() string {
	switch k {
	case srcIterable:
		return "iterable_source"
	case srcProducer:
		return "producer_source"
	case srcMapped:
		return "mapped_source"
	default:
		panic(fmt.Sprintf("不可能的数据源节点类型: %d", int8(k)))
	}
}

// sourceNode 类型擦除的数据源节点。
type sourceNode struct {
	kind srcKind

	elemType reflect.Type // 输出元素类型

	payload any // srcIterable 的 Iterable / srcProducer 的 Producer，原样保存用于等价比较

	// srcIterable 的擦除迭代入口：每次调用返回一个全新的迭代闭包。
	// 执行引擎（以及测试中的参考求值器）经由它拉取外部元素，代数本身从不调用。
	iterator func() func() (any, bool)

	upstream *sourceNode // srcMapped 的上游数据源
	op       *opNode     // srcMapped 的已融合操作
}

// ref 返回底层节点，供擦除层在异构元素间取回数据源结构。
func (n *sourceNode) ref() *sourceNode { return n }

// ====== 数据源门面 ======

// Source 描述「O 的流从何而来」的纯数据值。
// 与 Operation 一样只记录结构，由外部执行引擎解释。
type Source[O any] struct {
	node *sourceNode
}

func (s Source[O]) ref() *sourceNode { return s.node }

// FromIterable 将外部可迭代值提升为数据源。纯边界适配，语义不变。
func FromIterable[A any](it schema.Iterable[A]) Source[A] {
	return Source[A]{node: &sourceNode{
		kind:     srcIterable,
		elemType: generic.TypeOf[A](),
		payload:  it,
		iterator: func() func() (any, bool) {
			iter := it.Iterator()
			return func() (any, bool) {
				return iter.Next()
			}
		},
	}}
}

// FromSlice 将切片提升为数据源。
//
// 示例:
//
//	src := compose.FromSlice([]int{1, 2, 3})
func FromSlice[A any](values []A) Source[A] {
	return FromIterable(schema.IterableOfSlice(values))
}

// FromProducer 将外部推式生产者提升为数据源。
// 生产者保持不透明，订阅、需求信号与取消均由执行引擎驱动。
func FromProducer[A any](p schema.Producer[A]) Source[A] {
	return Source[A]{node: &sourceNode{
		kind:     srcProducer,
		elemType: generic.TypeOf[A](),
		payload:  p,
	}}
}

// Via 将操作附加到数据源，得到新元素类型的数据源。
// 若数据源已是已映射源，则新操作经 Compose 融合进其既有操作字段——
// 已映射源永不包裹另一个已映射源；否则直接包装为全新的已映射源。
func Via[A, B any](s Source[A], op Operation[A, B]) Source[B] {
	return Source[B]{node: attachNode(s.node, op.node)}
}

func attachNode(s *sourceNode, op *opNode) *sourceNode {
	// 附加恒等操作等于什么都不做
	if op.kind == opIdentity {
		return s
	}

	mustAssignable(s.elemType, op.inType, "attach")

	if s.kind == srcMapped {
		return &sourceNode{
			kind:     srcMapped,
			elemType: op.outType,
			upstream: s.upstream,
			op:       composeNodes(s.op, op),
		}
	}

	return &sourceNode{
		kind:     srcMapped,
		elemType: op.outType,
		upstream: s,
		op:       op,
	}
}

// Equal 报告两个数据源是否结构等价。
func (s Source[O]) Equal(other Source[O]) bool {
	return equalSource(s.node, other.node)
}

// Info 返回数据源的结构描述树。
func (s Source[O]) Info() *NodeInfo {
	return sourceInfo(s.node)
}

// ====== 生产者视图工件 ======

// Exposure 是数据源的外部推式生产者视图：除 Pipeline 之外，
// 唯一能交回调用方或执行引擎的可运行工件。本身是惰性数据，
// 由执行引擎在被订阅时驱动所包装的数据源。
type Exposure[A any] struct {
	source *sourceNode
}

// Expose 将数据源包装为生产者视图工件。
func Expose[A any](s Source[A]) Exposure[A] {
	return Exposure[A]{source: s.node}
}

// Info 返回所包装数据源的结构描述树。
func (e Exposure[A]) Info() *NodeInfo {
	return sourceInfo(e.source)
}
