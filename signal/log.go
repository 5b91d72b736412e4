package signal

import (
	"github.com/wmchain/wmchaind/infrastructure/logger"
	"github.com/wmchain/wmchaind/util/panics"
)

var log = logger.RegisterSubSystem("SIGN")
var spawn = panics.GoroutineWrapperFunc(log)
