package main

import (
	"context"
	"os/signal"
	"syscall"

	app "github.com/RamonCharlles/Gestao-componentes/internal/app/tracker"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

func main() {
	ctx, quit := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM,
	)
	defer quit()

	a, err := app.New(ctx)
	if err != nil {
		logger.Error(ctx,
			"❌ Failed to create an application",
			logger.ErrorF(err),
		)
		return
	}

	if err := a.Run(ctx); err != nil {
		logger.Error(ctx, "❌ Component tracker error", logger.ErrorF(err))
	}
}
