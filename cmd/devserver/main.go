package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/vende6/ChatWithMe/internal/devserver"
	"github.com/vende6/ChatWithMe/pkg/logger"
)

var (
	port     = flag.Int("port", 8000, "listen port")
	logLevel = flag.String("log-level", "info", "log level")
)

func main() {
	flag.Parse()

	log := logger.NewLogger(*logLevel)
	server := devserver.New(log)

	addr := fmt.Sprintf(":%d", *port)
	log.Infof("Dev chat server listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
