package consensus

import (
	"github.com/wmchain/wmchaind/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CNSS")
