package mempool

import (
	"github.com/wmchain/wmchaind/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXMP")
