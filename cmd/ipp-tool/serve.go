/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * The "server" mode
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/OpenPrinting/ippcodec"
	"github.com/OpenPrinting/ippcodec/client"
	"github.com/OpenPrinting/ippcodec/logger"
	"github.com/OpenPrinting/ippcodec/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// ippResourcePath is the HTTP path of the printer
	ippResourcePath = "/ipp/print"

	// metricsPath is the HTTP path of Prometheus metrics
	metricsPath = "/metrics"
)

// newServeMux creates HTTP handler, serving the printer
// and its metrics
func newServeMux(p server.Printer, log *logger.Logger,
	reg *prometheus.Registry) *http.ServeMux {

	handler := server.NewHandler(p,
		server.WithLogger(log),
		server.WithMetrics(server.NewMetrics(reg)))

	mux := http.NewServeMux()
	mux.Handle(ippResourcePath, handler)
	mux.Handle(metricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return mux
}

// printerURI returns URI the printer is reachable at
func printerURI(conf Configuration) string {
	host := "localhost"
	if !conf.LoopbackOnly {
		if h, err := os.Hostname(); err == nil && h != "" {
			host = h
		}
	}

	hostport := net.JoinHostPort(host, strconv.Itoa(conf.HTTPPort))
	return "ipp://" + hostport + ippResourcePath
}

// runServer runs the dummy printer until SIGINT or SIGTERM
func runServer(log *logger.Logger) error {
	// Load printer description
	desc := DefaultPrinterDescription()
	if Conf.PrinterDescription != "" {
		var err error
		desc, err = LoadPrinterDescription(Conf.PrinterDescription)
		if err != nil {
			return err
		}
	}

	if Conf.PrinterName != "" {
		desc.Name = Conf.PrinterName
	}

	// Create the printer
	uri := printerURI(Conf)
	state := LoadPrinterState(PathStateFile, log)
	printer := NewDummyPrinter(desc, uri, Conf.SpoolDir, state, log)

	// Start HTTP server
	addr := ":" + strconv.Itoa(Conf.HTTPPort)
	if Conf.LoopbackOnly {
		addr = "localhost" + addr
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           newServeMux(printer, log, prometheus.NewRegistry()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info(' ', "===============================")
	log.Info(' ', "ipp-tool server started at %s, pid=%d", uri, os.Getpid())
	defer log.Info(' ', "ipp-tool server finished")

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(listener)
	}()

	// Publish DNS-SD service
	if Conf.DNSSdEnable {
		publisher, err := publishPrinter(ctx, printer, state, log)
		if err != nil {
			log.Error('!', "%s", err)
		} else {
			defer publisher.Unpublish()
		}
	}

	// Wait for termination
	select {
	case err = <-done:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err == nil {
		err = <-done
	}

	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	return err
}

// publishPrinter publishes printer via DNS-SD, with TXT record
// built out of printer's own attributes
func publishPrinter(ctx context.Context, printer *DummyPrinter,
	state *PrinterState, log *logger.Logger) (*DnsSdPublisher, error) {

	rq := client.GetPrinterAttributes{}.Message(printer.uri)
	rsp, err := printer.GetPrinterAttributes(ctx, rq)
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: %s", err)
	}

	attrs, _ := rsp.Groups.Group(ippcodec.TagPrinterGroup)
	name, svc := IppService(attrs, Conf.HTTPPort)

	msg := log.Begin()
	msg.Debug('>', "DNS-SD: %q: %s TXT record", name, svc.Type)
	for _, txt := range svc.Txt {
		msg.Debug(' ', "  %s=%s", txt.Key, txt.Value)
	}
	msg.Commit()

	publisher := NewDnsSdPublisher(log, state, name, svc, Conf.LoopbackOnly)
	return publisher, publisher.Publish()
}
