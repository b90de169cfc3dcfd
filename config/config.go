package config

import (
	"reflect"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var (
	levelType    = reflect.TypeOf(zapcore.DebugLevel)
	parseFuncMap = map[reflect.Type]env.ParserFunc{
		levelType: levelParser,
	}
)

// Config contains the Site Factory client configs
type Config struct {
	URL       string        `env:"SFREST_URL,required"`
	User      string        `env:"SFREST_USER,required"`
	APIKey    string        `env:"SFREST_API_KEY,required"`
	Timeout   time.Duration `env:"SFREST_TIMEOUT" envDefault:"30s"`
	LogLevel  zapcore.Level `env:"LOGLEVEL" envDefault:"info"`
	LogFormat string        `env:"LOGFORMAT" envDefault:"console"`
}

func LoadConfig() (*Config, error) {
	c := Config{}
	if err := env.ParseWithFuncs(&c, parseFuncMap); err != nil {
		return &c, errors.WithStack(err)
	}

	return &c, nil
}

func levelParser(v string) (interface{}, error) {
	var level zapcore.Level
	err := (&level).UnmarshalText([]byte(v))
	if err != nil {
		return nil, errors.Errorf("%s is not an zapcore.Level", v)
	}
	return level, nil
}
