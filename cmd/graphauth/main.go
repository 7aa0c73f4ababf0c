package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"graphauth/internal/factory"
	"graphauth/internal/util"
)

func main() {
	f, err := factory.NewFactory()
	if err != nil {
		util.Fatal("Failed to initialize factory", util.ErrorField(err))
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newConsole(f.Dispatcher(), f.Config(), os.Stdin, os.Stdout)

	done := make(chan struct{})
	go func() {
		c.run(ctx)
		close(done)
	}()

	waitForShutdown(f, cancel, done)
}

func waitForShutdown(f *factory.Factory, cancel context.CancelFunc, done <-chan struct{}) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-signalChan:
		util.Info("Received shutdown signal", util.String("signal", sig.String()))
		cancel()
	case <-done:
	}

	f.Close()
}
