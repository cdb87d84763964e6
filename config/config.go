package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	LiveTransportWebsocket = "websocket"
	LiveTransportKafka     = "kafka"
	LiveTransportNone      = "none"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"     default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"studio"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		Notification struct {
			TTLSeconds int `envconfig:"TTL_SECONDS" default:"3"`
			Capacity   int `envconfig:"CAPACITY"    default:"20"`
		} `envconfig:"NOTIFICATION"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	Backend struct {
		BaseURL        string `envconfig:"BASE_URL"        default:"https://deploy-ai-image-gen-server.onrender.com"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS"`
	} `envconfig:"BACKEND"`

	Gallery struct {
		PageSize int `envconfig:"PAGE_SIZE" default:"12"`
	} `envconfig:"GALLERY"`

	Live struct {
		Transport        string `envconfig:"TRANSPORT"         default:"websocket"`
		Event            string `envconfig:"EVENT"             default:"new-image"`
		SocketPath       string `envconfig:"SOCKET_PATH"       default:"/socket.io/"`
		ReconnectSeconds int    `envconfig:"RECONNECT_SECONDS" default:"5"`
		PingSeconds      int    `envconfig:"PING_SECONDS"      default:"30"`
	} `envconfig:"LIVE"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"studio"`
		Topic         string   `envconfig:"TOPIC"          default:"gallery-images"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

// LiveUpdatesEnabled reports whether a real-time source is configured.
func (c *Config) LiveUpdatesEnabled() bool {
	switch strings.ToLower(c.Live.Transport) {
	case LiveTransportWebsocket, LiveTransportKafka:
		return true
	default:
		return false
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
