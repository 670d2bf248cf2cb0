package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/amoeba-bot/internal/apperror"
)

const DefaultURL = "ws://online-amoeba.herokuapp.com/game/{game_id}/{join_code}"

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	JoinCode     string        `yaml:"join-code" env:"AMOEBA_JOIN_CODE" env-description:"invite code to the match, <code>:<game id>"`
	URL          string        `yaml:"url" env:"AMOEBA_URL" env-default:"ws://online-amoeba.herokuapp.com/game/{game_id}/{join_code}" env-description:"websocket url template"`
	Agent        string        `yaml:"agent" env:"AMOEBA_AGENT" env-default:"weighted" env-description:"agent that selects the moves"`
	PingInterval time.Duration `yaml:"ping-interval" env:"AMOEBA_PING_INTERVAL" env-default:"0s" env-description:"heartbeat period, 0 disables it"`
	HTTPPort     string        `yaml:"http-port" env:"HTTP_PORT" env-description:"status endpoint port, empty disables it"`
	Redis        Redis         `yaml:"redis"`
}

type Redis struct {
	Host    string `yaml:"host" env:"REDIS_HOST" env-description:"match feed redis host, empty disables the feed"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-description:"pub/sub channel, amoeba:match:<game id> by default"`
}

// Load - reads the config file or the environment, then applies command line flags.
func Load(args []string, output io.Writer) (*Config, error) {
	config := &Config{}

	flags := flag.NewFlagSet("amoeba-bot", flag.ContinueOnError)
	flags.SetOutput(output)

	path := flags.String("config", "", "path to a yaml config file")
	joinCode := flags.String("join_code", "", "invite code to the match")
	url := flags.String("url", "", "url for the websocket")
	agentName := flags.String("agent", "", "type of the agent to use")

	flags.Usage = cleanenv.FUsage(output, config, nil, flags.Usage)

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := read(*path, config); err != nil {
		return nil, err
	}

	if *joinCode != "" {
		config.JoinCode = *joinCode
	}
	if *url != "" {
		config.URL = *url
	}
	if *agentName != "" {
		config.Agent = *agentName
	}

	if config.JoinCode == "" {
		return nil, apperror.ErrJoinCodeRequired
	}

	if _, _, err := ParseJoinCode(config.JoinCode); err != nil {
		return nil, err
	}

	return config, nil
}

func read(path string, config *Config) error {
	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return fmt.Errorf("unable to read environment: %w", err)
		}
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		return fmt.Errorf("unable to stat config file: %w", err)
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return fmt.Errorf("unable to load config file: %w", err)
	}

	return nil
}

// ParseJoinCode - splits "<join code>:<game id>".
func ParseJoinCode(value string) (string, string, error) {
	joinCode, gameID, ok := strings.Cut(value, ":")
	if !ok || joinCode == "" || gameID == "" || strings.Contains(gameID, ":") {
		return "", "", fmt.Errorf("%w: %q", apperror.ErrInvalidJoinCode, value)
	}

	return joinCode, gameID, nil
}

func (that *Config) GameID() string {
	_, gameID, err := ParseJoinCode(that.JoinCode)
	if err != nil {
		return ""
	}
	return gameID
}

// MatchURL - fills the url template with the game id and the join code.
func (that *Config) MatchURL() (string, error) {
	joinCode, gameID, err := ParseJoinCode(that.JoinCode)
	if err != nil {
		return "", err
	}

	replacer := strings.NewReplacer("{game_id}", gameID, "{join_code}", joinCode)

	return replacer.Replace(that.URL), nil
}

func (that *Redis) Enabled() bool {
	return that.Host != ""
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// ChannelFor - the configured channel or the per game default.
func (that *Redis) ChannelFor(gameID string) string {
	if that.Channel != "" {
		return that.Channel
	}
	return "amoeba:match:" + gameID
}
