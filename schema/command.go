package schema

/*
 * command.go - 流算子状态机的指令代数
 *
 * 核心组件：
 *   - FoldCommand[S, T]: 有界折叠状态机的单步指令，每个输入至多产生一个输出
 *   - Command[S, T]: 用户态多发射指令，每个输入可产生零个、一个或多个输出
 *   - Append: 多发射指令的有序拼接，Continue 为单位元，Stop 为吸收元
 *
 * 设计特点：
 *   - 标签联合: kind 枚举 + 载荷字段，switch 穷举匹配，默认分支 panic
 *   - 纯数据: 指令只描述转移结果，由外部执行引擎解释
 *   - 构造期报错: 非法用法（Stop 之后拼接、长度不足的指令列表）在构造调用处立即 panic
 */

import "fmt"

// ====== 有界折叠指令 ======

// FoldCommandKind 有界折叠指令的变体标签。
type FoldCommandKind int8

const (
	// FoldCommandEmit 产出一个元素并推进状态
	FoldCommandEmit FoldCommandKind = iota
	// FoldCommandEmitAndStop 产出最后一个元素，不再请求上游
	FoldCommandEmitAndStop
	// FoldCommandContinue 推进状态，无输出
	FoldCommandContinue
	// FoldCommandStop 结束，无输出
	FoldCommandStop
)

// String 返回变体名称，用于错误信息与结构描述。
func (k FoldCommandKind) String() string {
	switch k {
	case FoldCommandEmit:
		return "emit"
	case FoldCommandEmitAndStop:
		return "emit_and_stop"
	case FoldCommandContinue:
		return "continue"
	case FoldCommandStop:
		return "stop"
	default:
		panic(fmt.Sprintf("不可能的有界折叠指令类型: %d", int8(k)))
	}
}

// FoldCommand 是有界折叠状态机单步转移的结果。
// 每个输入元素至多产生一个输出，同时携带继续/停止的决策。
// 状态类型 S 由状态机的种子决定，输出类型 T 由算子的输出流决定。
//
// 示例:
//
//	// 过滤算子的转移函数：命中谓词则产出，否则继续
//	func(s struct{}, v int) schema.FoldCommand[struct{}, int] {
//		if v > 0 {
//			return schema.FoldEmit(v, s)
//		}
//		return schema.FoldContinue[struct{}, int](s)
//	}
type FoldCommand[S, T any] struct {
	kind  FoldCommandKind
	value T // Emit / EmitAndStop 的输出载荷
	state S // Emit / Continue 的后继状态
}

// FoldEmit 产出 value 并将状态推进为 next。
func FoldEmit[S, T any](value T, next S) FoldCommand[S, T] {
	return FoldCommand[S, T]{kind: FoldCommandEmit, value: value, state: next}
}

// FoldEmitAndStop 产出最后一个 value，之后不再请求上游元素。
func FoldEmitAndStop[S, T any](value T) FoldCommand[S, T] {
	return FoldCommand[S, T]{kind: FoldCommandEmitAndStop, value: value}
}

// FoldContinue 将状态推进为 next，不产出任何元素。
func FoldContinue[S, T any](next S) FoldCommand[S, T] {
	return FoldCommand[S, T]{kind: FoldCommandContinue, state: next}
}

// FoldStop 结束折叠，不产出任何元素。
func FoldStop[S, T any]() FoldCommand[S, T] {
	return FoldCommand[S, T]{kind: FoldCommandStop}
}

// Kind 返回指令的变体标签。
func (c FoldCommand[S, T]) Kind() FoldCommandKind { return c.kind }

// Value 返回输出载荷，仅 Emit / EmitAndStop 变体有意义。
func (c FoldCommand[S, T]) Value() T { return c.value }

// State 返回后继状态，仅 Emit / Continue 变体有意义。
func (c FoldCommand[S, T]) State() S { return c.state }

// ====== 多发射指令 ======

// CommandKind 多发射指令的变体标签。
type CommandKind int8

const (
	// CommandEmit 产出一个元素，状态不变
	CommandEmit CommandKind = iota
	// CommandMulti 有序的指令列表，长度不小于 2
	CommandMulti
	// CommandContinue 推进状态，无输出（Append 的单位元）
	CommandContinue
	// CommandStop 结束（Append 的吸收元，其后不允许再拼接）
	CommandStop
)

// String 返回变体名称。
func (k CommandKind) String() string {
	switch k {
	case CommandEmit:
		return "emit"
	case CommandMulti:
		return "commands"
	case CommandContinue:
		return "continue"
	case CommandStop:
		return "stop"
	default:
		panic(fmt.Sprintf("不可能的多发射指令类型: %d", int8(k)))
	}
}

// Command 是用户态转换状态机单步转移的结果。
// 与 FoldCommand 不同，每个输入元素可以产出零个、一个或多个元素。
// 通过 Append 按序拼接，拼接满足结合律；Continue 是两侧单位元，
// Stop 是吸收元——在 Stop 之后继续拼接属于非法用法，构造处立即 panic。
type Command[S, T any] struct {
	kind  CommandKind
	value T               // Emit 的输出载荷
	state S               // Continue 的后继状态
	cmds  []Command[S, T] // Multi 的有序子指令，只含 Emit 与末位 Stop
}

// Emit 产出 value，状态保持不变。
func Emit[S, T any](value T) Command[S, T] {
	return Command[S, T]{kind: CommandEmit, value: value}
}

// Continue 将状态推进为 next，不产出任何元素。
func Continue[S, T any](next S) Command[S, T] {
	return Command[S, T]{kind: CommandContinue, state: next}
}

// Stop 结束转换流程。
func Stop[S, T any]() Command[S, T] {
	return Command[S, T]{kind: CommandStop}
}

// Commands 由有序指令列表构造多发射指令。
// 列表长度不足 2、包含 Continue、或 Stop 之后仍有指令，均属非法用法，立即 panic。
// 嵌套的 Commands 会被展平，保证列表中只出现 Emit 与末位的 Stop。
func Commands[S, T any](cmds ...Command[S, T]) Command[S, T] {
	flat := make([]Command[S, T], 0, len(cmds))
	for _, c := range cmds {
		flat = append(flat, c.sequence()...)
	}

	if len(flat) < 2 {
		panic(fmt.Sprintf("非法用法: 多发射指令列表长度至少为 2，实际为 %d", len(flat)))
	}

	for i, c := range flat {
		if c.kind == CommandStop && i != len(flat)-1 {
			panic("非法用法: Stop 之后不允许出现任何指令")
		}
	}

	return Command[S, T]{kind: CommandMulti, cmds: flat}
}

// Append 按序拼接两条指令：先执行 a 的发射，再执行 b 的发射。
// 代数律：
//   - 结合律: Append(Append(a, b), c) 与 Append(a, Append(b, c)) 等价
//   - 单位元: 任一操作数为 Continue 时，结果为另一操作数
//   - 吸收元: a 已经以 Stop 结束时再拼接属于非法用法，立即 panic
func Append[S, T any](a, b Command[S, T]) Command[S, T] {
	// 单位元优先：拼接 Continue 等于什么都不做
	if a.kind == CommandContinue {
		return b
	}
	if b.kind == CommandContinue {
		return a
	}

	if a.terminated() {
		panic("非法用法: 不允许在 Stop 之后拼接指令")
	}

	as, bs := a.sequence(), b.sequence()
	seq := make([]Command[S, T], 0, len(as)+len(bs))
	seq = append(seq, as...)
	seq = append(seq, bs...)

	return Command[S, T]{kind: CommandMulti, cmds: seq}
}

// sequence 将指令展开为发射序列。Continue 展开为空序列。
func (c Command[S, T]) sequence() []Command[S, T] {
	switch c.kind {
	case CommandEmit, CommandStop:
		return []Command[S, T]{c}
	case CommandMulti:
		return c.cmds
	case CommandContinue:
		return nil
	default:
		panic(fmt.Sprintf("不可能的多发射指令类型: %d", int8(c.kind)))
	}
}

// terminated 报告指令是否以 Stop 结束。
func (c Command[S, T]) terminated() bool {
	switch c.kind {
	case CommandStop:
		return true
	case CommandMulti:
		return c.cmds[len(c.cmds)-1].kind == CommandStop
	case CommandEmit, CommandContinue:
		return false
	default:
		panic(fmt.Sprintf("不可能的多发射指令类型: %d", int8(c.kind)))
	}
}

// Kind 返回指令的变体标签。
func (c Command[S, T]) Kind() CommandKind { return c.kind }

// Value 返回输出载荷，仅 Emit 变体有意义。
func (c Command[S, T]) Value() T { return c.value }

// State 返回后继状态，仅 Continue 变体有意义。
func (c Command[S, T]) State() S { return c.state }

// List 返回 Multi 变体的有序子指令，其他变体返回 nil。
func (c Command[S, T]) List() []Command[S, T] {
	if c.kind != CommandMulti {
		return nil
	}

	out := make([]Command[S, T], len(c.cmds))
	copy(out, c.cmds)
	return out
}
