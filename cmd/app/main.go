package main

import (
	"github.com/humanbelnik/kinoswap/matchroom/internal/app"
	"github.com/humanbelnik/kinoswap/matchroom/internal/config"
)

func main() {
	app.Go(config.Load())
}
