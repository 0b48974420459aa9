package main

import (
	profiledhttp "github.com/fwojciec/profiled/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := profiledhttp.NewServer(deps.Scraper, deps.Logger,
		profiledhttp.WithMaxConcurrent(c.MaxConcurrent),
		profiledhttp.WithQueueTimeout(c.QueueTimeout),
	)
	server.Addr = c.Addr

	if err := server.Open(); err != nil {
		return err
	}
	deps.Logger.Info("listening", "url", server.URL())

	<-deps.Ctx.Done()

	deps.Logger.Info("shutting down")
	return server.Close()
}
