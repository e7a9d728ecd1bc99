package compose

/*
 * operation.go - 操作联合与组合代数
 *
 * 核心组件：
 *   - Operation[I, O]: 类型安全的操作门面，描述「将 I 的流变换为 O 的流」
 *   - opNode: 类型擦除的操作节点，标签联合（kind 枚举 + 载荷字段）
 *   - Compose: 带恒等消去的组合，所有链式路径都经过这一个重写点
 *
 * 设计特点：
 *   - 双层结构: 泛型门面保证编译期类型安全，擦除内核携带 reflect 类型在构造期复验
 *   - 不可变值: 组合永不修改既有节点，每次构造产生全新值
 *   - 恒等消去: 任一操作数为 Identity 时直接返回另一操作数，
 *     因此任意长度的链条内部不会残留 Identity
 *   - 结构等价: 节点按变体标签、元素类型、捕获函数与种子值递归比较
 *
 * 与其他文件关系：
 *   - source.go / sink.go 的融合重写复用 composeNodes
 *   - operators.go / automaton.go 的构造函数产出这里定义的节点
 */

import (
	"fmt"
	"reflect"

	"github.com/favbox/flume/internal/generic"
	"github.com/favbox/flume/schema"
)

// ====== 操作节点联合 ======

// opKind 操作节点的变体标签。
type opKind int8

const (
	opIdentity opKind = iota
	opMap
	opFold
	opFoldUntil
	opBuffer
	opTakeWhile
	opMerge
	opZip
	opSpan
	opTee
	opConcat
	opCompose
	opFlatten
	opFlatMapNested
	opProcessor
	opTransform
)

// String 返回变体名称，用于结构描述与错误信息。
func (k opKind) String() string {
	switch k {
	case opIdentity:
		return "identity"
	case opMap:
		return "map"
	case opFold:
		return "fold"
	case opFoldUntil:
		return "fold_until"
	case opBuffer:
		return "elastic_buffer"
	case opTakeWhile:
		return "take_while"
	case opMerge:
		return "merge"
	case opZip:
		return "zip"
	case opSpan:
		return "span"
	case opTee:
		return "tee"
	case opConcat:
		return "concat"
	case opCompose:
		return "compose"
	case opFlatten:
		return "flatten"
	case opFlatMapNested:
		return "flat_map_nested"
	case opProcessor:
		return "processor"
	case opTransform:
		return "transform"
	default:
		panic(fmt.Sprintf("不可能的操作节点类型: %d", int8(k)))
	}
}

// opNode 类型擦除的操作节点。
// 变体由 kind 区分，载荷按变体取用对应字段；inType/outType 记录元素类型，
// 供构造期复验与结构描述使用。节点一经构造不再修改。
type opNode struct {
	kind opKind

	inType  reflect.Type // 输入元素类型
	outType reflect.Type // 输出元素类型

	name string // 命名算子别名（filter、take 等），仅用于结构描述

	// 按变体取用的载荷字段
	mapFn      func(any) any                                 // opMap
	seed       any                                           // opFold / opFoldUntil / opBuffer / opTransform 的初始状态
	foldFn     func(state, elem any) any                     // opFold
	stepFn     func(state, elem any) schema.FoldCommand[any, any] // opFoldUntil
	doneFn     func(state any) (any, bool)                   // opFoldUntil 完成时的尾部输出，可为 nil
	emitFn     func(state, elem any) schema.Command[any, any] // opTransform
	flushFn    func(state any) []any                         // opTransform 完成时的尾部输出，可为 nil
	compressFn func(state, elem any) any                     // opBuffer
	expandFn   func(state any) (out, next any, ok bool)      // opBuffer
	consumeFn  func(state any) bool                          // opBuffer
	predFn     func(any) bool                                // opTakeWhile / opSpan

	source    *sourceNode   // opMerge / opZip / opConcat 携带的另一数据源
	sink      *sinkNode     // opTee 携带的旁路汇点
	first     *opNode       // opCompose 左操作数
	second    *opNode       // opCompose 右操作数
	inner     *opNode       // opFlatMapNested 携带的嵌套操作
	processor any           // opProcessor 携带的不透明双向处理器

	// 构造时捕获的用户函数/值，结构等价按它们比较而非内部擦除闭包
	userFn  any
	userFn2 any
}

// ====== 操作门面 ======

// Operation 描述「将 I 的流变换为 O 的流」的纯数据值。
// 不执行任何计算，只记录变换结构，由外部执行引擎解释。
// 所有组合子构造全新值，原值永不被修改，可安全地被任意多方并发复用。
type Operation[I, O any] struct {
	node *opNode
}

// Identity 恒等操作，组合的两侧单位元。
// 经过 Compose 的恒等消去，Identity 不会残留在任何组合链内部。
func Identity[A any]() Operation[A, A] {
	t := generic.TypeOf[A]()
	return Operation[A, A]{node: &opNode{kind: opIdentity, inType: t, outType: t}}
}

// Compose 组合两个操作：先 f 后 g。
// 任一操作数为 Identity 时（一层结构检查）直接返回另一操作数，
// 否则产生持有 (f, g) 的组合节点。所有链式构造路径都经过这里，
// 因此每个新环节都会立即与相邻环节化简。
func Compose[A, B, C any](f Operation[A, B], g Operation[B, C]) Operation[A, C] {
	return Operation[A, C]{node: composeNodes(f.node, g.node)}
}

func composeNodes(f, g *opNode) *opNode {
	if f.kind == opIdentity {
		return g
	}
	if g.kind == opIdentity {
		return f
	}

	mustAssignable(f.outType, g.inType, "compose")

	return &opNode{
		kind:    opCompose,
		inType:  f.inType,
		outType: g.outType,
		first:   f,
		second:  g,
	}
}

// Equal 报告两个操作是否结构等价。
// 独立构造的两条内容相同的链条可以互换使用。
func (o Operation[I, O]) Equal(other Operation[I, O]) bool {
	return equalOp(o.node, other.node)
}

// Info 返回操作的结构描述树。
func (o Operation[I, O]) Info() *NodeInfo {
	return opInfo(o.node)
}

// mustAssignable 构造期类型复验。
// 泛型门面已在编译期排除元素类型不匹配，这里守护擦除层内部的重写路径。
func mustAssignable(from, to reflect.Type, site string) {
	if from == nil || to == nil {
		return
	}

	if !from.AssignableTo(to) {
		panic(fmt.Sprintf("%s: 元素类型不匹配: %s 不能赋值给 %s", site, from, to))
	}
}
