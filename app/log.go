package app

import (
	"github.com/wmchain/wmchaind/infrastructure/logger"
	"github.com/wmchain/wmchaind/util/panics"
)

var log = logger.RegisterSubSystem("WMCD")
var spawn = panics.GoroutineWrapperFunc(log)
