/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Program configuration
 */

package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/OpenPrinting/ippcodec/logger"
	"gopkg.in/ini.v1"
)

const (
	// ConfFileName defines a name of ipp-tool configuration file
	ConfFileName = "ipp-tool.conf"
)

// Configuration represents a program configuration
type Configuration struct {
	HTTPPort           int             // HTTP port the server listens on
	DNSSdEnable        bool            // Enable DNS-SD advertising
	LoopbackOnly       bool            // Use only loopback interface
	LogMain            logger.LogLevel // Main log LogLevel mask
	LogConsole         logger.LogLevel // Console LogLevel mask
	LogMaxFileSize     int64           // Maximum log file size
	LogMaxBackupFiles  uint            // Count of files preserved during rotation
	PrinterDescription string          // Path to YAML printer description
	PrinterName        string          // Overrides printer-name
	SpoolDir           string          // Where received documents go
	ClientTimeout      time.Duration   // Client request timeout
	ClientRequestID    uint32          // First request ID used by client
}

// Conf contains a global instance of program configuration
var Conf = DefaultConfiguration()

// DefaultConfiguration returns configuration with all
// parameters set to their default values
func DefaultConfiguration() Configuration {
	return Configuration{
		HTTPPort:          631,
		DNSSdEnable:       true,
		LoopbackOnly:      true,
		LogMain:           logger.LogError | logger.LogInfo | logger.LogDebug,
		LogConsole:        logger.LogError | logger.LogInfo,
		LogMaxFileSize:    logger.DefaultMaxFileSize,
		LogMaxBackupFiles: logger.DefaultMaxBackupFiles,
		SpoolDir:          PathSpoolDir,
		ClientTimeout:     30 * time.Second,
		ClientRequestID:   1,
	}
}

// ConfLoad loads the program configuration
func ConfLoad() error {
	// Obtain path to executable directory
	exepath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("conf: %s", err)
	}

	exepath = filepath.Dir(exepath)

	// Build list of configuration files
	files := []string{
		filepath.Join(PathConfDir, ConfFileName),
		filepath.Join(exepath, ConfFileName),
	}

	// Load file by file
	for _, file := range files {
		err = confLoadFile(&Conf, file)
		if err != nil {
			return fmt.Errorf("conf: %s", err)
		}
	}

	return nil
}

// Create "bad value" error
func confBadValue(key *ini.Key, format string, args ...interface{}) error {
	return fmt.Errorf(key.Name()+": "+format, args...)
}

// confLoadFile loads configuration file into conf.
// Missing file is not an error
func confLoadFile(conf *Configuration, path string) error {
	inifile, err := ini.LooseLoad(path)
	if err != nil {
		return err
	}

	for _, section := range inifile.Sections() {
		for _, key := range section.Keys() {
			err = confLoadKey(conf, section.Name(), key)
			if err != nil {
				return fmt.Errorf("%s: %s", path, err)
			}
		}
	}

	return nil
}

// confLoadKey loads a single key of the given section
func confLoadKey(conf *Configuration, section string, key *ini.Key) error {
	switch section {
	case "network":
		switch key.Name() {
		case "http-port":
			return confLoadIPPortKey(&conf.HTTPPort, key)
		case "dns-sd":
			return confLoadBinaryKey(&conf.DNSSdEnable, key, "disable", "enable")
		case "interface":
			return confLoadBinaryKey(&conf.LoopbackOnly, key, "all", "loopback")
		}
	case "logging":
		switch key.Name() {
		case "main-log":
			return confLoadLogLevelKey(&conf.LogMain, key)
		case "console-log":
			return confLoadLogLevelKey(&conf.LogConsole, key)
		case "max-file-size":
			return confLoadSizeKey(&conf.LogMaxFileSize, key)
		case "max-backup-files":
			return confLoadUintKey(&conf.LogMaxBackupFiles, key)
		}
	case "printer":
		switch key.Name() {
		case "description":
			conf.PrinterDescription = key.String()
		case "name":
			conf.PrinterName = key.String()
		case "spool-dir":
			return confLoadPathKey(&conf.SpoolDir, key)
		}
	case "client":
		switch key.Name() {
		case "timeout":
			return confLoadDurationKey(&conf.ClientTimeout, key)
		case "request-id":
			return confLoadRequestIDKey(&conf.ClientRequestID, key)
		}
	}

	return nil
}

// Load IP port key
func confLoadIPPortKey(out *int, key *ini.Key) error {
	port, err := strconv.Atoi(key.String())
	if err != nil {
		return confBadValue(key, "%q: invalid port", key.String())
	}

	if port < 1 || port > 65535 {
		return confBadValue(key, "must be in range 1...65535")
	}

	*out = port
	return nil
}

// Load the binary key
func confLoadBinaryKey(out *bool, key *ini.Key, vFalse, vTrue string) error {
	switch key.String() {
	case vFalse:
		*out = false
		return nil
	case vTrue:
		*out = true
		return nil
	default:
		return confBadValue(key, "must be %s or %s", vFalse, vTrue)
	}
}

// Load LogLevel key
func confLoadLogLevelKey(out *logger.LogLevel, key *ini.Key) error {
	mask, err := logger.ParseLevels(key.String())
	if err != nil {
		return confBadValue(key, "%s", err)
	}

	*out = mask
	return nil
}

// Load size key
func confLoadSizeKey(out *int64, key *ini.Key) error {
	value := key.String()
	units := uint64(1)

	if l := len(value); l > 0 {
		switch value[l-1] {
		case 'k', 'K':
			units = 1024
		case 'm', 'M':
			units = 1024 * 1024
		}

		if units != 1 {
			value = value[:l-1]
		}
	}

	sz, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return confBadValue(key, "%q: invalid size", key.String())
	}

	if sz > uint64(math.MaxInt64/units) {
		return confBadValue(key, "size too large")
	}

	*out = int64(sz * units)
	return nil
}

// Load unsigned integer key
func confLoadUintKey(out *uint, key *ini.Key) error {
	num, err := strconv.ParseUint(key.String(), 10, 0)
	if err != nil {
		return confBadValue(key, "%q: invalid number", key.String())
	}

	*out = uint(num)
	return nil
}

// Load request ID key. Zero is reserved
func confLoadRequestIDKey(out *uint32, key *ini.Key) error {
	num, err := strconv.ParseUint(key.String(), 10, 32)
	if err != nil {
		return confBadValue(key, "%q: invalid request ID", key.String())
	}

	if num == 0 {
		return confBadValue(key, "must not be 0")
	}

	*out = uint32(num)
	return nil
}

// Load duration key, like "30s" or "1m30s"
func confLoadDurationKey(out *time.Duration, key *ini.Key) error {
	d, err := time.ParseDuration(key.String())
	if err != nil || d <= 0 {
		return confBadValue(key, "%q: invalid duration", key.String())
	}

	*out = d
	return nil
}

// Load path key
func confLoadPathKey(out *string, key *ini.Key) error {
	path := strings.TrimSpace(key.String())
	if path == "" {
		return confBadValue(key, "must not be empty")
	}

	*out = filepath.Clean(path)
	return nil
}
