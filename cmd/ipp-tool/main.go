/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * The main function
 */

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OpenPrinting/ippcodec"
	"github.com/OpenPrinting/ippcodec/client"
	"github.com/OpenPrinting/ippcodec/logger"
	"github.com/gabriel-vasile/mimetype"
)

const usageText = `Usage:
    %s [options] mode [arguments]

Modes are:
    get-attrs URI [attr...] - query printer attributes
    print URI FILE          - print the file
    txt URI                 - print DNS-SD TXT record of the printer
    server                  - run the dummy IPP printer
    usb                     - list IPP-over-USB devices
    check                   - check configuration and exit

Options are
    -trace      - trace IPP and HTTP exchange on console
`

// RunMode represents the program run mode
type RunMode int

// Run modes:
//
//	RunGetAttrs - query printer attributes
//	RunPrint    - print the file
//	RunTxt      - print DNS-SD TXT record of the printer
//	RunServer   - run the dummy IPP printer
//	RunUsb      - list IPP-over-USB devices
//	RunCheck    - check configuration and exit
const (
	RunDefault RunMode = iota
	RunGetAttrs
	RunPrint
	RunTxt
	RunServer
	RunUsb
	RunCheck
)

// String returns RunMode name
func (m RunMode) String() string {
	switch m {
	case RunDefault:
		return "default"
	case RunGetAttrs:
		return "get-attrs"
	case RunPrint:
		return "print"
	case RunTxt:
		return "txt"
	case RunServer:
		return "server"
	case RunUsb:
		return "usb"
	case RunCheck:
		return "check"
	}

	return fmt.Sprintf("unknown (%d)", int(m))
}

// RunParameters represents the program run parameters
type RunParameters struct {
	Mode  RunMode  // Run mode
	Args  []string // Mode arguments
	Trace bool     // Trace exchange on console
}

// usage prints detailed usage and exits
func usage() {
	fmt.Printf(usageText, os.Args[0])
	os.Exit(0)
}

// usageError prints usage error and exits
func usageError(format string, args ...interface{}) {
	if format != "" {
		fmt.Printf(format+"\n", args...)
	}

	fmt.Printf("Try %s -h for more information\n", os.Args[0])
	os.Exit(1)
}

// parseArgv parses program parameters. In a case of usage error,
// it returns the error message
func parseArgv(argv []string) (params RunParameters, err error) {
	modes := map[string]RunMode{
		"get-attrs": RunGetAttrs,
		"print":     RunPrint,
		"txt":       RunTxt,
		"server":    RunServer,
		"usb":       RunUsb,
		"check":     RunCheck,
	}

	for len(argv) > 0 && strings.HasPrefix(argv[0], "-") {
		switch argv[0] {
		case "-trace":
			params.Trace = true
		default:
			return params, fmt.Errorf("Invalid option %s", argv[0])
		}
		argv = argv[1:]
	}

	if len(argv) == 0 {
		return params, fmt.Errorf("Run mode missed")
	}

	mode, ok := modes[argv[0]]
	if !ok {
		return params, fmt.Errorf("Invalid run mode %s", argv[0])
	}

	params.Mode = mode
	params.Args = argv[1:]

	minArgs, maxArgs := 0, 0
	switch params.Mode {
	case RunGetAttrs:
		minArgs, maxArgs = 1, -1
	case RunPrint:
		minArgs, maxArgs = 2, 2
	case RunTxt:
		minArgs, maxArgs = 1, 1
	}

	switch {
	case len(params.Args) < minArgs:
		err = fmt.Errorf("%s: missed arguments", params.Mode)
	case maxArgs >= 0 && len(params.Args) > maxArgs:
		err = fmt.Errorf("%s: too many arguments", params.Mode)
	}

	return params, err
}

// The main function
func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-h", "-help", "--help":
			usage()
		}
	}

	params, err := parseArgv(os.Args[1:])
	if err != nil {
		usageError("%s", err)
	}

	// Load configuration file
	err = ConfLoad()
	if err != nil {
		fatal(err)
	}

	// Setup logging
	consoleLevels := Conf.LogConsole
	if params.Trace {
		consoleLevels = logger.LogAll
	}

	console := logger.NewConsoleLogger(consoleLevels)
	log := console

	if params.Mode == RunServer {
		log = logger.NewFileLogger(PathLogFile, Conf.LogMain,
			Conf.LogMaxFileSize, int(Conf.LogMaxBackupFiles))
		log.Cc(console)
		defer log.Close()
	}

	// Run the mode
	switch params.Mode {
	case RunGetAttrs:
		err = runGetAttrs(log, params.Args[0], params.Args[1:])
	case RunPrint:
		err = runPrint(log, params.Args[0], params.Args[1])
	case RunTxt:
		err = runTxt(log, params.Args[0])
	case RunServer:
		err = runServer(log)
	case RunUsb:
		err = runUsb()
	case RunCheck:
		fmt.Printf("Configuration files: OK\n")
		printConf(os.Stdout, Conf)
		err = runUsb()
	}

	if err != nil {
		log.Close()
		fatal(err)
	}
}

// fatal prints error message and exits
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

// newClient creates IPP client, configured from Conf
func newClient(log *logger.Logger, uri string) (*client.Client, error) {
	return client.New(uri,
		client.WithTimeout(Conf.ClientTimeout),
		client.WithRequestID(Conf.ClientRequestID),
		client.WithLogger(log))
}

// runGetAttrs queries printer attributes and prints them
func runGetAttrs(log *logger.Logger, uri string, names []string) error {
	c, err := newClient(log, uri)
	if err != nil {
		return err
	}

	groups, err := c.Send(context.Background(),
		client.GetPrinterAttributes{Attributes: names})
	if err != nil {
		return err
	}

	attrs, _ := groups.Group(ippcodec.TagPrinterGroup)
	printAttrs(os.Stdout, attrs)

	return nil
}

// runPrint prints the file
func runPrint(log *logger.Logger, uri, path string) error {
	c, err := newClient(log, uri)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	format, err := documentFormat(path)
	if err != nil {
		return err
	}

	groups, err := c.Send(context.Background(), client.PrintJob{
		Payload:        file,
		UserName:       userName(),
		JobName:        filepath.Base(path),
		DocumentFormat: format,
	})
	if err != nil {
		return err
	}

	attrs, _ := groups.Group(ippcodec.TagJobGroup)
	printAttrs(os.Stdout, attrs)

	return nil
}

// runTxt prints DNS-SD TXT record, built out of printer attributes
func runTxt(log *logger.Logger, uri string) error {
	c, err := newClient(log, uri)
	if err != nil {
		return err
	}

	groups, err := c.Send(context.Background(), client.GetPrinterAttributes{})
	if err != nil {
		return err
	}

	port := ippcodec.DefaultPort
	if u, err := url.Parse(c.URL()); err == nil && u.Port() != "" {
		port, _ = strconv.Atoi(u.Port())
	}

	attrs, _ := groups.Group(ippcodec.TagPrinterGroup)
	name, svc := IppService(attrs, port)

	fmt.Printf("%q: %s, port %d\n", name, svc.Type, svc.Port)
	for _, txt := range svc.Txt {
		fmt.Printf("  %s=%s\n", txt.Key, txt.Value)
	}

	return nil
}

// runUsb lists IPP-over-USB devices
func runUsb() error {
	list, err := UsbGetIppOverUsbDeviceDescs()
	if err != nil {
		return fmt.Errorf("Can't read list of USB devices: %s", err)
	}

	if len(list) == 0 {
		fmt.Printf("No IPP over USB devices found\n")
		return nil
	}

	var buf bytes.Buffer
	fmt.Printf("IPP over USB devices:\n")
	fmt.Printf(" Num  Device              Vndr:Prod  Model\n")
	for i, dev := range list {
		buf.Reset()
		fmt.Fprintf(&buf, "%3d. %s  %s:%s  %q",
			i+1, dev.UsbAddr, dev.Vendor, dev.Product, dev.MfgAndProduct)
		fmt.Printf(" %s\n", buf.String())
	}

	return nil
}

// printAttrs prints attributes, one per line
func printAttrs(w io.Writer, attrs ippcodec.Attributes) {
	for _, attr := range attrs {
		vals := attr.Values()
		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = v.String()
		}

		tag := ""
		if attr.Value != nil {
			tag = attr.Value.Tag().String()
		}

		fmt.Fprintf(w, "%s (%s): %s\n", attr.Name, tag, strings.Join(strs, ", "))
	}
}

// printConf prints the configuration
func printConf(w io.Writer, conf Configuration) {
	fmt.Fprintf(w, "  http-port:        %d\n", conf.HTTPPort)
	fmt.Fprintf(w, "  dns-sd:           %t\n", conf.DNSSdEnable)
	fmt.Fprintf(w, "  loopback only:    %t\n", conf.LoopbackOnly)
	fmt.Fprintf(w, "  max-file-size:    %d\n", conf.LogMaxFileSize)
	fmt.Fprintf(w, "  max-backup-files: %d\n", conf.LogMaxBackupFiles)
	fmt.Fprintf(w, "  spool-dir:        %s\n", conf.SpoolDir)
	fmt.Fprintf(w, "  client timeout:   %s\n", conf.ClientTimeout)
}

// documentFormat detects document format of the file by its content
func documentFormat(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}

	format, _, err := mime.ParseMediaType(mtype.String())
	if err != nil {
		format = "application/octet-stream"
	}

	return format, nil
}

// userName returns name of the current user
func userName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
