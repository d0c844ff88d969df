package main

import (
	"io"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"ricemap/internal/config"
)

const logHeader = "${time_rfc3339} ${level} ${prefix} ${short_file}:${line}"

// setupLogging points the package logger and echo's logger at stdout,
// colored only when stdout is a terminal.
func setupLogging(e *echo.Echo, cfg config.Config) {
	level := log.INFO
	if cfg.Debug {
		level = log.DEBUG
	}

	var out io.Writer = os.Stdout
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if color {
		out = colorable.NewColorableStdout()
	}

	log.SetPrefix("ricemap")
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetHeader(logHeader)
	if color {
		log.EnableColor()
	} else {
		log.DisableColor()
	}

	e.Logger.SetOutput(out)
	e.Logger.SetLevel(level)
	e.Logger.SetHeader(logHeader)
	if l, ok := e.Logger.(*log.Logger); ok && !color {
		l.DisableColor()
	}
}
