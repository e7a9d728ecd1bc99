/*
 * compose 包 - 流式管道的构造与融合代数
 *
 * 概述：
 *   flume 的核心代数包，提供类型安全的操作/数据源/汇点三元组，
 *   以及把任意长度的组合子链条坍缩为极简内部形态的重写规则。
 *   本包只构造与重写不可变的管道描述，从不执行、从不做 I/O、
 *   从不管理线程——融合后的 Pipeline 交由外部执行引擎解释。
 *
 * 三元组与产物：
 *   - Operation[I, O]: 把 I 的流变换为 O 的流的纯描述
 *   - Source[O]: O 的流从何而来的纯描述
 *   - Sink[I]: I 的流在何处被消费的纯描述
 *   - Pipeline[A]: 完整接线的 (数据源, 终端汇点) 对，规范形态
 *   - Exposure[A]: 数据源的生产者视图工件
 *
 * 两条重写规则：
 *   1. 恒等消去：Compose 的任一操作数为 Identity 时直接返回另一操作数；
 *      所有链式路径都经过 Compose，链条内部不会残留 Identity
 *   2. 汇点迁移：收尾时「被变换包裹的汇点」重写为「数据源延长该变换后
 *      接终端汇点」，循环直至汇点为终端形态
 *
 * 两个通用状态机：
 *   - FoldUntil（有界折叠）：每个输入至多一个输出，外加继续/停止决策；
 *     filter、drop、take、find、exists、forAll、head、tail 都是它的转移表
 *   - ElasticBuffer（弹性缓冲）：解耦生产与消费节奏；
 *     compress、expand、buffer 都是它的转移表
 *
 * 基本用法：
 *
 *	pipeline := compose.FromSlice([]int{1, 2, 3, 4, 5}).
 *		Filter(func(v int) bool { return v%2 == 1 }).
 *		Take(2).
 *		Foreach(func(v int) { fmt.Println(v) })
 *	// pipeline 交给外部执行引擎
 *
 * 并发安全：
 *   所有值不可变，组合永不修改共享状态，任何数量的调用方可并发构造。
 */
package compose
