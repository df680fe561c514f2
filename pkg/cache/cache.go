package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// EntityCache 主数据集合缓存。
//
// 约定：每个实体集合（teachers/subjects/classes/rooms）以集合名为键
// 整体缓存，"取一次直到该集合发生变更"；任何对该集合的
// 创建/更新/删除之后必须调用 Invalidate，失效由变更方驱动，
// 与任何渲染周期无关。
type EntityCache struct {
	c *gocache.Cache
}

// New 创建实体集合缓存。TTL 是兜底过期，正常路径靠显式失效。
func New(ttl, cleanupInterval time.Duration) *EntityCache {
	return &EntityCache{c: gocache.New(ttl, cleanupInterval)}
}

// Get 读取集合快照
func (e *EntityCache) Get(entityType string) (interface{}, bool) {
	return e.c.Get(entityType)
}

// Set 写入集合快照
func (e *EntityCache) Set(entityType string, items interface{}) {
	e.c.SetDefault(entityType, items)
}

// Invalidate 使某个实体集合失效，变更操作提交后调用
func (e *EntityCache) Invalidate(entityType string) {
	e.c.Delete(entityType)
}
