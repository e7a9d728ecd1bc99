package compose

/*
 * introspect.go - 结构描述与导出
 *
 * 核心组件：
 *   - NodeInfo: 单个节点（操作/数据源/汇点）的结构描述
 *   - PipelineInfo: 完整管道的结构描述
 *   - Dump: 经 Sonic 导出为 JSON 文本
 *
 * 设计特点：
 *   - 只描述不执行: 描述树记录变体名称、算子别名与元素类型名，
 *     从不触碰捕获的函数或外部值
 *   - 供调试、可视化与监控工具消费
 */

import (
	"github.com/bytedance/sonic"

	"github.com/favbox/flume/internal/generic"
)

// NodeInfo 是单个节点的结构描述。
// Kind 为变体名称，Name 为命名算子别名（filter、take 等，仅表实例化节点携带）。
type NodeInfo struct {
	Kind        string `json:"kind"`
	Name        string `json:"name,omitempty"`
	InputType   string `json:"input_type,omitempty"`
	OutputType  string `json:"output_type,omitempty"`
	ElementType string `json:"element_type,omitempty"`

	First     *NodeInfo `json:"first,omitempty"`     // 组合节点的左操作数
	Second    *NodeInfo `json:"second,omitempty"`    // 组合节点的右操作数
	Inner     *NodeInfo `json:"inner,omitempty"`     // 嵌套操作 / 内层汇点
	Source    *NodeInfo `json:"source,omitempty"`    // 算子携带的另一数据源
	Sink      *NodeInfo `json:"sink,omitempty"`      // 算子携带的旁路汇点
	Upstream  *NodeInfo `json:"upstream,omitempty"`  // 已映射源的上游
	Operation *NodeInfo `json:"operation,omitempty"` // 已映射源的已融合操作
}

// PipelineInfo 是完整管道的结构描述。
type PipelineInfo struct {
	Source *NodeInfo `json:"source"`
	Sink   *NodeInfo `json:"sink"`
}

// Dump 将结构描述导出为缩进的 JSON 文本。
func (i *NodeInfo) Dump() (string, error) {
	b, err := sonic.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Dump 将管道描述导出为缩进的 JSON 文本。
func (p *PipelineInfo) Dump() (string, error) {
	b, err := sonic.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func opInfo(n *opNode) *NodeInfo {
	if n == nil {
		return nil
	}

	return &NodeInfo{
		Kind:       n.kind.String(),
		Name:       n.name,
		InputType:  generic.TypeName(n.inType),
		OutputType: generic.TypeName(n.outType),
		First:      opInfo(n.first),
		Second:     opInfo(n.second),
		Inner:      opInfo(n.inner),
		Source:     sourceInfo(n.source),
		Sink:       sinkInfo(n.sink),
	}
}

func sourceInfo(n *sourceNode) *NodeInfo {
	if n == nil {
		return nil
	}

	return &NodeInfo{
		Kind:        n.kind.String(),
		ElementType: generic.TypeName(n.elemType),
		Upstream:    sourceInfo(n.upstream),
		Operation:   opInfo(n.op),
	}
}

func sinkInfo(n *sinkNode) *NodeInfo {
	if n == nil {
		return nil
	}

	return &NodeInfo{
		Kind:        n.kind.String(),
		ElementType: generic.TypeName(n.elemType),
		Inner:       sinkInfo(n.inner),
		Operation:   opInfo(n.op),
	}
}
