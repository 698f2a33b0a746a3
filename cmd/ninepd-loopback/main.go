package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/ninefs/ninepd/ninepd"
	"github.com/ninefs/ninepd/transport"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5640", "address to listen on")
	network := flag.String("net", "tcp", "network to listen on (tcp, unix)")
	flag.Parse()

	l, err := transport.Listen(*network, *addr)
	if err != nil {
		log.Fatalf("ninepd-loopback: %v", err)
	}
	log.Printf("ninepd-loopback: listening on %s/%s", *network, *addr)

	srv := &ninepd.Server{
		Backend: newLoopback(),
		Logger:  log.Default(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx, l) }()

	select {
	case err := <-errc:
		if err != nil {
			log.Fatalf("ninepd-loopback: serve: %v", err)
		}
	case <-ctx.Done():
		l.Close()
		if err := srv.Shutdown(); err != nil {
			log.Printf("ninepd-loopback: shutdown: %v", err)
		}
	}
}
