package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	FlagMode        = "mode"
	FlagRoot        = "root"
	FlagLogLevel    = "log-level"
	FlagNoTUI       = "no-tui"
	FlagHost        = "host"
	FlagPort        = "port"
	FlagAddress     = "address"
	FlagOpen        = "open"
	FlagStrictPort  = "strict-port"
	FlagPreviewPort = "preview-port"
	FlagOutDir      = "out-dir"
	FlagDSN         = "dsn"
	FlagConfig      = "config"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags adds the configuration flags to fs.
//
// Flags:
//
//	-m/--mode         client env mode
//	--root            web project root
//	--log-level       zerolog level name
//	--no-tui          disable the dev terminal UI
//	--host            dev and preview server host
//	-p/--port         dev server port
//	--address         dev server address in form host:port
//	--open            open the browser on dev server start
//	--strict-port     fail instead of trying the next free port
//	--preview-port    preview server port
//	--out-dir         build output directory
//	--dsn             build history database DSN, "off" disables it
//	-c/--config       config file path (.json, .yaml, .yml, .toml)
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagMode, "m", "", "Client env mode (development, production, test, ...)")
	fs.String(FlagRoot, "", "Web project root directory")
	fs.String(FlagLogLevel, "", "Log level (trace, debug, info, warn, error)")
	fs.Bool(FlagNoTUI, false, "Disable the interactive dev terminal UI")
	fs.String(FlagHost, "", "Server host")
	fs.IntP(FlagPort, "p", 0, "Dev server port")
	fs.Var(&NetAddress{}, FlagAddress, "Dev server address host:port")
	fs.Bool(FlagOpen, false, "Open the browser on dev server start")
	fs.Bool(FlagStrictPort, false, "Exit if the port is already in use")
	fs.Int(FlagPreviewPort, 0, "Preview server port")
	fs.String(FlagOutDir, "", "Build output directory")
	fs.String(FlagDSN, "", `Build history DSN (sqlite path, postgres:// URL or "off")`)
	fs.StringP(FlagConfig, "c", "", "Config file path")
}

// ParseFlags reads the flags of fs that were set on the command line.
// Flags left at their defaults, or not registered on fs, leave the
// corresponding fields zero.
func ParseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var errs []error

	str := func(name string, dst *string) {
		if changed(fs, name) {
			v, err := fs.GetString(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if changed(fs, name) {
			v, err := fs.GetInt(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	boolPtr := func(name string, dst **bool) {
		if changed(fs, name) {
			v, err := fs.GetBool(name)
			errs = append(errs, err)
			*dst = &v
		}
	}

	str(FlagMode, &cfg.App.Mode)
	str(FlagRoot, &cfg.App.Root)
	str(FlagLogLevel, &cfg.App.LogLevel)
	if changed(fs, FlagNoTUI) {
		v, err := fs.GetBool(FlagNoTUI)
		errs = append(errs, err)
		cfg.App.NoTUI = v
	}
	str(FlagHost, &cfg.Server.Host)
	if changed(fs, FlagAddress) {
		addr := fs.Lookup(FlagAddress).Value.(*NetAddress)
		cfg.Server.Host = addr.Host
		cfg.Server.Port = addr.Port
	}
	num(FlagPort, &cfg.Server.Port)
	boolPtr(FlagOpen, &cfg.Server.Open)
	boolPtr(FlagStrictPort, &cfg.Server.StrictPort)
	num(FlagPreviewPort, &cfg.Preview.Port)
	str(FlagOutDir, &cfg.Build.OutDir)
	str(FlagDSN, &cfg.Storage.DB.DSN)
	str(FlagConfig, &cfg.FilePath)

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}
	return cfg, nil
}

func changed(fs *pflag.FlagSet, name string) bool {
	return fs.Lookup(name) != nil && fs.Changed(name)
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
