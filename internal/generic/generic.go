package generic

import "reflect"

// TypeOf 返回 T 的 reflect.Type。
// 与 reflect.TypeOf 不同，接口类型也能得到正确的类型信息。
//
// 示例:
//
//	TypeOf[int]()     // reflect.TypeOf(int)
//	TypeOf[*int]()    // reflect.TypeOf(*int)
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TypeName 返回类型的可读名称，用于结构描述与错误信息。
// 未命名类型（切片、函数等）返回其完整字符串表示。
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	return t.String()
}
