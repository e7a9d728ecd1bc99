/*
 * schema 包 - 指令代数与边界能力契约
 *
 * 概述：
 *   flume 的基础词汇包，定义两层与执行引擎共享的值：
 *     - 指令代数：状态机单步转移的结果（FoldCommand / Command）
 *     - 边界契约：外部生产者、消费者、双向处理器与可迭代值的最小接口
 *
 * 两种指令：
 *   - FoldCommand[S, T]: 有界折叠专用，每个输入至多一个输出
 *     （Emit / EmitAndStop / Continue / Stop）
 *   - Command[S, T]: 用户态多发射，每个输入零个、一个或多个输出
 *     （Emit / Commands / Continue / Stop），Append 有序拼接：
 *     结合律成立，Continue 为单位元，Stop 为吸收元
 *
 * 错误模型：
 *   这里只存在构造期的使用错误（Stop 之后拼接、长度不足的指令列表），
 *   在构造调用处立即 panic；运行期的数据错误属于执行引擎。
 */
package schema
