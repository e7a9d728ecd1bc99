package compose

import "reflect"

// 结构等价：按变体标签、元素类型、构造参数与嵌套节点递归比较。
// 捕获的函数按函数标识比较（同一函数值等价，不同函数值不等价），
// 种子等普通值按深度相等比较。独立构造的两条内容相同的链条因此可互换。

func equalOp(a, b *opNode) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if a.kind != b.kind || a.name != b.name || a.inType != b.inType || a.outType != b.outType {
		return false
	}

	if !samePayload(a.userFn, b.userFn) || !samePayload(a.userFn2, b.userFn2) {
		return false
	}
	if !samePayload(a.seed, b.seed) || !samePayload(a.processor, b.processor) {
		return false
	}

	return equalOp(a.first, b.first) &&
		equalOp(a.second, b.second) &&
		equalOp(a.inner, b.inner) &&
		equalSource(a.source, b.source) &&
		equalSink(a.sink, b.sink)
}

func equalSource(a, b *sourceNode) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if a.kind != b.kind || a.elemType != b.elemType {
		return false
	}

	if !samePayload(a.payload, b.payload) {
		return false
	}

	return equalSource(a.upstream, b.upstream) && equalOp(a.op, b.op)
}

func equalSink(a, b *sinkNode) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if a.kind != b.kind || a.elemType != b.elemType {
		return false
	}

	if !samePayload(a.payload, b.payload) || !samePayload(a.userFn, b.userFn) {
		return false
	}

	return equalOp(a.op, b.op) && equalSink(a.inner, b.inner)
}

// samePayload 比较构造参数：函数与指针按标识，其余按深度相等。
func samePayload(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		// 指针载荷（提升的可迭代值等）按指向内容深度比较，
		// 独立构造的两个内容相同的包装因此等价
		return reflect.DeepEqual(a, b)
	}
}
