package main

import (
	"fmt"
	"os"

	"github.com/wmchain/wmchaind/app"
)

func main() {
	err := app.StartApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
