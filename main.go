package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"

	"github.com/blaubaer/intro-gate/pkg/app"
	"github.com/blaubaer/intro-gate/pkg/common"
	"github.com/blaubaer/intro-gate/pkg/session"
)

func main() {
	consumer.Default = consumer.NewWriter(os.Stderr)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.AllowMultiLineMessage = &bv
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	a := app.NewApp()

	cmd := kingpin.New("intro-gate", "Loops an intro until someone starts talking, then starts the application.").
		Action(func(*kingpin.ParseContext) error {
			if err := a.Initialize(); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go func() {
				c := make(chan os.Signal, 1)
				signal.Notify(c, os.Interrupt, syscall.SIGTERM)
				defer signal.Stop(c)
				select {
				case <-c:
					log.Info("Terminated. Skipping intro...")
					cancel()
				case <-ctx.Done():
				}
			}()

			err := a.Run(ctx)
			if mErr, ok := common.AsError[*session.MissingMediaError](err); ok {
				log.With("missing", mErr.Missing).
					Error("Required media is missing. Nothing was started.")
				os.Exit(1)
			}
			if dErr, ok := common.AsError[*session.DuplicateMediaError](err); ok {
				log.With("names", dErr.Names).
					Error("Media names have to be unique. Nothing was started.")
				os.Exit(1)
			}
			return err
		})
	a.SetupConfiguration(cmd)

	cmd.Flag("log.level", "").
		SetValue(lv.Level)
	cmd.Flag("log.format", "").
		Default("text").
		SetValue(lv.Consumer.Formatter)
	cmd.Flag("log.color", "").
		Default("auto").
		SetValue(lv.Consumer.Formatter.ColorMode)

	kingpin.MustParse(cmd.Parse(os.Args[1:]))
}
