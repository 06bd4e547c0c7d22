// Package config 存放各模块的配置项，import 即触发各文件的 init 注册
package config

// Initialize 触发加载 config 包的所有 init 函数
func Initialize() {
}
