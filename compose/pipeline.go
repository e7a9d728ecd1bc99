package compose

/*
 * pipeline.go - 管道收尾与汇点迁移重写
 *
 * 核心组件：
 *   - Pipeline[A]: 完整接线的惰性管道 (数据源, 终端汇点)
 *   - To: 用汇点收尾数据源，循环执行汇点迁移重写
 *
 * 设计特点：
 *   - 汇点迁移: 「被变换包裹的汇点」重写为「数据源延长该变换后接终端汇点」，
 *     循环直至汇点为终端形态——所有变换逻辑都迁移到数据源一侧
 *   - 终端不变式: Pipeline 值存在之前，已映射汇点必然已被全部消去
 *   - 收尾同步完成，产物不可变、可被直接丢弃，无需任何清理
 */

// Pipeline 是完整接线的惰性管道：一个数据源配一个终端汇点。
// 类型参数 A 记录收尾时数据源与汇点的接缝元素类型；
// 汇点迁移可能把变换移过接缝，擦除节点上保存着引擎所需的精确元素类型。
type Pipeline[A any] struct {
	source *sourceNode
	sink   *sinkNode
}

// To 用汇点收尾数据源，产出规范形态的管道。
// 只要汇点仍是已映射形态，就把它包装的操作附加到数据源上并展开内层汇点；
// 无论包装层数多少，循环必然终止于终端汇点。
func (s Source[A]) To(sink Sink[A]) Pipeline[A] {
	src, snk := s.node, sink.node

	for snk.kind == sinkMapped {
		src = attachNode(src, snk.op)
		snk = snk.inner
	}

	mustAssignable(src.elemType, snk.elemType, "finish")

	return Pipeline[A]{source: src, sink: snk}
}

// Foreach 用逐元素副作用的终端汇点收尾数据源。
// 等价于 s.To(Foreach(f)) 的便捷写法。
func (s Source[A]) Foreach(f func(A)) Pipeline[A] {
	return s.To(Foreach(f))
}

// Equal 报告两个管道是否结构等价。
func (p Pipeline[A]) Equal(other Pipeline[A]) bool {
	return equalSource(p.source, other.source) && equalSink(p.sink, other.sink)
}

// Info 返回管道的结构描述树。
func (p Pipeline[A]) Info() *PipelineInfo {
	return &PipelineInfo{
		Source: sourceInfo(p.source),
		Sink:   sinkInfo(p.sink),
	}
}
