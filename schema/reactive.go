package schema

/*
 * reactive.go - 边界能力契约
 *
 * 核心组件：
 *   - Producer / Consumer / Processor: 外部推式生产者、消费者与双向处理器的最小契约
 *   - Subscription: 需求信号协议（request/cancel）
 *   - Iterable / Iterator: 外部可迭代值的最小契约
 *
 * 设计特点：
 *   - 仅定义接口: 本层从不驱动这些契约，只在提升（lift）时原样包装为管道节点
 *   - 显式提升: 外部值通过 compose 包的构造函数显式进入代数，无隐式转换
 *   - 需求信号、订阅生命周期由外部执行引擎解释
 */

// Subscription 是生产者与消费者之间的需求信号通道。
// 消费者通过 Request 声明可接收的元素数量，通过 Cancel 终止订阅。
type Subscription interface {
	// Request 声明消费者还可接收 n 个元素
	Request(n int)
	// Cancel 终止订阅，生产者随后停止发射
	Cancel()
}

// Producer 是外部推式生产者的最小契约。
// 只允许被订阅一次；订阅后按需求信号发射元素序列，
// 以完成或错误收尾，Cancel 之后停止发射。
type Producer[T any] interface {
	Subscribe(consumer Consumer[T])
}

// Consumer 是外部推式消费者的最小契约。
// 通过 OnSubscribe 收到的 Subscription 向上游发出需求信号。
type Consumer[T any] interface {
	OnSubscribe(subscription Subscription)
	OnNext(value T)
	OnError(cause error)
	OnComplete()
}

// Processor 是外部双向处理器的最小契约：同时是消费者与生产者。
// 整体提升为代数中的一个不透明操作节点，节奏不变。
type Processor[I, O any] interface {
	Consumer[I]
	Producer[O]
}

// Iterator 逐个产出元素，ok 为 false 表示序列结束。
type Iterator[T any] interface {
	Next() (value T, ok bool)
}

// Iterable 是外部可迭代值的最小契约，每次 Iterator 调用返回一个全新的迭代器。
type Iterable[T any] interface {
	Iterator() Iterator[T]
}

// ====== 切片迭代 ======

// IterableOfSlice 将切片包装为 Iterable，便于构造数据源与测试。
//
// 示例:
//
//	it := schema.IterableOfSlice([]int{1, 2, 3}).Iterator()
//	for v, ok := it.Next(); ok; v, ok = it.Next() {
//		fmt.Println(v)
//	}
func IterableOfSlice[T any](values []T) Iterable[T] {
	return &sliceIterable[T]{values: values}
}

type sliceIterable[T any] struct {
	values []T
}

func (s *sliceIterable[T]) Iterator() Iterator[T] {
	return &sliceIterator[T]{values: s.values}
}

type sliceIterator[T any] struct {
	values []T
	index  int
}

func (it *sliceIterator[T]) Next() (T, bool) {
	if it.index >= len(it.values) {
		var zero T
		return zero, false
	}

	v := it.values[it.index]
	it.index++
	return v, true
}
