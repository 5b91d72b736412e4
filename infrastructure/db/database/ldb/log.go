package ldb

import (
	"github.com/wmchain/wmchaind/infrastructure/logger"
)

var log = logger.RegisterSubSystem("WMDB")
