package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Lingvo           Lingvo           `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	WeeklyReportSync WeeklyReportSync `mapstructure:",squash"`
	EventCleanup     EventCleanup     `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Lingvo struct {
	URL            string `mapstructure:"lingvo_url"`
	APIKey         string `mapstructure:"lingvo_api_key"`
	Model          string `mapstructure:"lingvo_model"`
	TimeoutSeconds int    `mapstructure:"lingvo_timeout_seconds"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type WeeklyReportSync struct {
	CronSchedule string `mapstructure:"weekly_report_sync_cron"`
	Enabled      bool   `mapstructure:"weekly_report_sync_enabled"`
	TopLimit     int    `mapstructure:"weekly_report_top_limit"`
}

type EventCleanup struct {
	CronSchedule  string `mapstructure:"event_cleanup_cron"`
	Enabled       bool   `mapstructure:"event_cleanup_enabled"`
	RetentionDays int    `mapstructure:"event_retention_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/wellness")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("LINGVO_URL", "https://api.lingvo.dev/v1")
	viper.SetDefault("LINGVO_API_KEY", "your_api_key") // ONLY LOCAL
	viper.SetDefault("LINGVO_MODEL", "lingvo-mini")
	viper.SetDefault("LINGVO_TIMEOUT_SECONDS", 30)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults para o envio semanal de relatórios
	viper.SetDefault("WEEKLY_REPORT_SYNC_CRON", "0 7 * * 1") // Toda segunda-feira às 7h da manhã
	viper.SetDefault("WEEKLY_REPORT_SYNC_ENABLED", false)    // Habilitar envio semanal
	viper.SetDefault("WEEKLY_REPORT_TOP_LIMIT", 5)           // Tamanho dos rankings do relatório

	// Defaults para a limpeza do log de eventos
	viper.SetDefault("EVENT_CLEANUP_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("EVENT_CLEANUP_ENABLED", false)    // Habilitar limpeza do log
	viper.SetDefault("EVENT_RETENTION_DAYS", 180)       // Janela de retenção dos eventos

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
