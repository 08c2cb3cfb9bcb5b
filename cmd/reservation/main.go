package main

import (
	"errors"
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/hotel-reservation/reservation/app"
	"github.com/Astemirdum/hotel-reservation/reservation/config"
)

//go:generate swag init -g cmd/reservation/main.go -d ../../ -o ../../reservation/docs --parseDependency

// @title        Hotel reservation API
// @version      1.0
// @description  Reservations of hotel rooms 1-10 over inclusive date ranges.
// @BasePath     /
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.InfoLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("app.Run ", err)
	}
}
