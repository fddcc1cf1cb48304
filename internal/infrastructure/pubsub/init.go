package pubsub

import "github.com/google/wire"

// ProviderSet 暴露 Pub/Sub 订阅构造器供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(NewCatalogSubscriber)
