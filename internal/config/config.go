package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Game holds everything a match session needs at creation; the values are
// fixed for the lifetime of a match.
type Game struct {
	MinPlayers            int           `yaml:"min-players" env-default:"2"`
	MaxPlayers            int           `yaml:"max-players" env-default:"8"`
	PredictionWindow      time.Duration `yaml:"prediction-window" env-default:"30s"`
	Timers                Timers        `yaml:"timers"`
	BannedLetterThreshold float64       `yaml:"banned-letter-threshold" env-default:"50"`
	BlitzProbability      float64       `yaml:"blitz-probability" env-default:"0.15"`
	BlitzTurns            int           `yaml:"blitz-turns" env-default:"3"`
	MinAnswerLength       int           `yaml:"min-answer-length" env-default:"0"`
	MaxAnswerLength       int           `yaml:"max-answer-length" env-default:"0"`
}

type Timers struct {
	Initial           time.Duration `yaml:"initial" env-default:"10s"`
	DecrementPerRound time.Duration `yaml:"decrement-per-round" env-default:"500ms"`
	Blitz             time.Duration `yaml:"blitz" env-default:"3s"`
	Minimum           time.Duration `yaml:"minimum" env-default:"3s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
