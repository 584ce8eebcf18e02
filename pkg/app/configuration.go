package app

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blaubaer/intro-gate/pkg/common"
	"github.com/blaubaer/intro-gate/pkg/console"
	"github.com/blaubaer/intro-gate/pkg/session"
)

func NewConfiguration() Configuration {
	return Configuration{
		session.NewConfiguration(),
		console.NewConfiguration(),
	}
}

type Configuration struct {
	Session session.Configuration `yaml:",inline"`
	Console console.Configuration `yaml:"console,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	this.Session.SetupConfiguration(using)
	this.Console.SetupConfiguration(using)
}

func (this *Configuration) loadFrom(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(this); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (this *Configuration) loadFromFile(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.loadFrom(f); err != nil {
		return fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}

	return nil
}

func (this *Configuration) saveTo(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(this); err != nil {
		return err
	}
	return enc.Close()
}
