package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		RouteStatsInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	// Solver параметры VROOM. TimeLimit уходит солверу, HTTPTimeout - клиентский.
	Solver struct {
		URL          string
		TimeLimit    time.Duration
		VehicleSpeed float64
		ServiceTime  time.Duration
		HTTPTimeout  time.Duration
	}

	Geocoder struct {
		URL     string
		APIKey  string
		Country string
		Timeout time.Duration
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
		TTL      time.Duration
	}

	Mail struct {
		Host     string
		Port     int
		User     string
		Password string
		From     string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DeliveryOutcome DeliveryOutcome
	}

	DeliveryOutcome struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Solver   Solver
		Geocoder Geocoder
		Redis    Redis
		Mail     Mail
		Kafka    Kafka
	}
)

// Load конфиг HTTP сервиса.
func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadWorker конфиг kafka воркера: солвер, геокодер, redis и почта ему не нужны.
func LoadWorker() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateWorkerConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	routeStatsInterval, err := osGetEnvDuration("BACKGROUND_ROUTE_STATS_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	deliveryOutcomeTimeout, err := osGetEnvDuration("KAFKA_HANDLER_DELIVERY_OUTCOME_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	solverTimeLimit, err := osGetEnvDuration("SOLVER_TIME_LIMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	solverVehicleSpeed, err := osGetFloat("SOLVER_VEHICLE_SPEED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	solverServiceTime, err := osGetEnvDuration("SOLVER_SERVICE_TIME")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	solverHTTPTimeout, err := osGetEnvDuration("SOLVER_HTTP_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	geocoderTimeout, err := osGetEnvDuration("GEOCODER_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisTTL, err := osGetEnvDuration("GEOCODE_CACHE_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	smtpPort, err := osGetInt("SMTP_PORT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			RouteStatsInterval: routeStatsInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Solver: Solver{
			URL:          os.Getenv("SOLVER_URL"),
			TimeLimit:    solverTimeLimit,
			VehicleSpeed: solverVehicleSpeed,
			ServiceTime:  solverServiceTime,
			HTTPTimeout:  solverHTTPTimeout,
		},
		Geocoder: Geocoder{
			URL:     os.Getenv("GEOCODER_URL"),
			APIKey:  os.Getenv("GEOCODER_API_KEY"),
			Country: os.Getenv("GEOCODER_COUNTRY"),
			Timeout: geocoderTimeout,
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			TTL:      redisTTL,
		},
		Mail: Mail{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				DeliveryOutcome: DeliveryOutcome{
					ProcessTimeout: deliveryOutcomeTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}
	if err := validateMail(&cfg.Mail); err != nil {
		return err
	}

	if cfg.Tasks.RouteStatsInterval == time.Duration(0) {
		return errors.New("BACKGROUND_ROUTE_STATS_INTERVAL is required")
	}

	if cfg.Solver.URL == "" {
		return errors.New("SOLVER_URL is required")
	}
	if cfg.Solver.TimeLimit == time.Duration(0) {
		return errors.New("SOLVER_TIME_LIMIT is required")
	}
	if cfg.Solver.VehicleSpeed <= 0 {
		return errors.New("SOLVER_VEHICLE_SPEED must be positive")
	}
	if cfg.Solver.HTTPTimeout == time.Duration(0) {
		return errors.New("SOLVER_HTTP_TIMEOUT is required")
	}
	// Генерация маршрутов ждёт солвер внутри HTTP запроса, таймаут middleware должен это покрывать.
	if cfg.Server.RequestTimeout < cfg.Solver.HTTPTimeout {
		return fmt.Errorf("MIDDLEWARE_REQUEST_TIMEOUT (%s) must not be shorter than SOLVER_HTTP_TIMEOUT (%s)",
			cfg.Server.RequestTimeout, cfg.Solver.HTTPTimeout)
	}

	if cfg.Geocoder.URL == "" {
		return errors.New("GEOCODER_URL is required")
	}
	if cfg.Geocoder.Timeout == time.Duration(0) {
		return errors.New("GEOCODER_TIMEOUT is required")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	if cfg.Redis.TTL == time.Duration(0) {
		return errors.New("GEOCODE_CACHE_TTL is required")
	}

	return nil
}

func validateWorkerConfig(cfg *Config) error {
	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if cfg.Kafka.Handlers.DeliveryOutcome.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_DELIVERY_OUTCOME_PROCESS_TIMEOUT is required")
	}

	return nil
}

func validateDatabase(cfg *Database) error {
	if cfg.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func validateMail(cfg *Mail) error {
	if cfg.Host == "" {
		return errors.New("SMTP_HOST is required")
	}
	if cfg.Port == 0 {
		return errors.New("SMTP_PORT is required")
	}
	if cfg.From == "" {
		return errors.New("SMTP_FROM is required")
	}
	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
