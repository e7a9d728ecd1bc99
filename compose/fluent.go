package compose

/*
 * fluent.go - 流式构造门面
 *
 * 同一套保持元素类型的组合子同时挂在 Source 与 Operation 两个包装上，
 * 两个门面只做结果包装，全部委托给 Via / Compose 这一个底层实现——
 * 算子逻辑绝不在门面间重复。
 *
 * 改变元素类型的组合（Map、Fold、Zip、Span、Flatten……）留在自由函数上：
 * Go 的方法不能引入新的类型形参。
 *
 * 示例:
 *
 *	pipeline := compose.FromSlice([]int{1, 2, 3, 4, 5}).
 *		Filter(func(v int) bool { return v%2 == 1 }).
 *		Take(2).
 *		Foreach(func(v int) { fmt.Println(v) })
 */

// ====== Source 门面 ======

// Filter 保留满足谓词的元素。
func (s Source[A]) Filter(p func(A) bool) Source[A] { return Via(s, Filter(p)) }

// Take 只取前 n 个元素。
func (s Source[A]) Take(n int) Source[A] { return Via(s, Take[A](n)) }

// Drop 跳过前 n 个元素。
func (s Source[A]) Drop(n int) Source[A] { return Via(s, Drop[A](n)) }

// TakeWhile 在谓词保持成立期间透传元素。
func (s Source[A]) TakeWhile(p func(A) bool) Source[A] { return Via(s, TakeWhile(p)) }

// DropWhile 跳过满足谓词的前缀。
func (s Source[A]) DropWhile(p func(A) bool) Source[A] { return Via(s, DropWhile(p)) }

// Find 只产出首个命中谓词的元素。
func (s Source[A]) Find(p func(A) bool) Source[A] { return Via(s, Find(p)) }

// Head 只取首个元素。
func (s Source[A]) Head() Source[A] { return Via(s, Head[A]()) }

// Tail 跳过首个元素。
func (s Source[A]) Tail() Source[A] { return Via(s, Tail[A]()) }

// Concat 当前流完成后继续以 next 的元素延长输出。
func (s Source[A]) Concat(next Source[A]) Source[A] { return Via(s, Concat(next)) }

// Merge 交错本源与 other 的流，跨源顺序不作规定。
func (s Source[A]) Merge(other Source[A]) Source[A] { return Via(s, Merge(other)) }

// Tee 让每个经过的元素同时送达 sink。
func (s Source[A]) Tee(sink Sink[A]) Source[A] { return Via(s, Tee(sink)) }

// Compress 下游未就绪期间以 f 折叠并发到达，至多缓存一个值。
func (s Source[A]) Compress(f func(A, A) A) Source[A] { return Via(s, Compress(f)) }

// Expand 保留最近的值，下游每次询问都重新供给。
func (s Source[A]) Expand(produce func(A) A) Source[A] { return Via(s, Expand(produce)) }

// Buffer 至多缓存 n 个元素的先进先出缓冲。
func (s Source[A]) Buffer(n int) Source[A] { return Via(s, Buffer[A](n)) }

// ====== Operation 门面 ======

// Filter 在本操作之后保留满足谓词的元素。
func (o Operation[I, O]) Filter(p func(O) bool) Operation[I, O] { return Compose(o, Filter(p)) }

// Take 在本操作之后只取前 n 个元素。
func (o Operation[I, O]) Take(n int) Operation[I, O] { return Compose(o, Take[O](n)) }

// Drop 在本操作之后跳过前 n 个元素。
func (o Operation[I, O]) Drop(n int) Operation[I, O] { return Compose(o, Drop[O](n)) }

// TakeWhile 在本操作之后于谓词保持成立期间透传元素。
func (o Operation[I, O]) TakeWhile(p func(O) bool) Operation[I, O] { return Compose(o, TakeWhile(p)) }

// DropWhile 在本操作之后跳过满足谓词的前缀。
func (o Operation[I, O]) DropWhile(p func(O) bool) Operation[I, O] { return Compose(o, DropWhile(p)) }

// Find 在本操作之后只产出首个命中谓词的元素。
func (o Operation[I, O]) Find(p func(O) bool) Operation[I, O] { return Compose(o, Find(p)) }

// Head 在本操作之后只取首个元素。
func (o Operation[I, O]) Head() Operation[I, O] { return Compose(o, Head[O]()) }

// Tail 在本操作之后跳过首个元素。
func (o Operation[I, O]) Tail() Operation[I, O] { return Compose(o, Tail[O]()) }

// Concat 在本操作的输出完成后继续以 next 的元素延长输出。
func (o Operation[I, O]) Concat(next Source[O]) Operation[I, O] { return Compose(o, Concat(next)) }

// Merge 将本操作的输出与 other 的流交错。
func (o Operation[I, O]) Merge(other Source[O]) Operation[I, O] { return Compose(o, Merge(other)) }

// Tee 让本操作输出的每个元素同时送达 sink。
func (o Operation[I, O]) Tee(sink Sink[O]) Operation[I, O] { return Compose(o, Tee(sink)) }

// Compress 在本操作之后以 f 折叠并发到达，至多缓存一个值。
func (o Operation[I, O]) Compress(f func(O, O) O) Operation[I, O] { return Compose(o, Compress(f)) }

// Expand 在本操作之后保留最近的值，下游每次询问都重新供给。
func (o Operation[I, O]) Expand(produce func(O) O) Operation[I, O] { return Compose(o, Expand(produce)) }

// Buffer 在本操作之后加一个至多 n 个元素的先进先出缓冲。
func (o Operation[I, O]) Buffer(n int) Operation[I, O] { return Compose(o, Buffer[O](n)) }
