package redis

// LocalOrdersKey 本地兜底订单集合的存储键。
// 整个应用只有这一个持久化键：集合序列化后整体写入、整体读出。
func LocalOrdersKey() string {
	return "inventory_console:orders:local"
}
