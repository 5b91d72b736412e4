package metrics

import (
	"github.com/wmchain/wmchaind/infrastructure/logger"
	"github.com/wmchain/wmchaind/util/panics"
)

var log = logger.RegisterSubSystem("METR")
var spawn = panics.GoroutineWrapperFunc(log)
