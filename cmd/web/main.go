package main

import (
	"github.com/fajarjulyana/VideoStreamPro/internal/app"
	"github.com/fajarjulyana/VideoStreamPro/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("Server exited with error", "error", err)
	}
}
