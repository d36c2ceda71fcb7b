package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wellness-reporting-api/infrastructure/database/postgres"
	"github.com/vfg2006/wellness-reporting-api/infrastructure/integrator/lingvo"
	"github.com/vfg2006/wellness-reporting-api/infrastructure/integrator/lingvo/lingvoclient"
	"github.com/vfg2006/wellness-reporting-api/infrastructure/repository"
	"github.com/vfg2006/wellness-reporting-api/internal/api"
	"github.com/vfg2006/wellness-reporting-api/internal/config"
	"github.com/vfg2006/wellness-reporting-api/internal/scheduler"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/authenticating"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/localizing"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	eventRepo := repository.NewEventRepository(pgConn)

	authenticator := authenticating.NewService(cfg)

	lingvoClient := lingvoclient.NewClient(cfg)
	lingvoIntegrator := lingvo.New(cfg, lingvoClient)

	// Serviço de tradução com cache em memória de pares (texto, idioma)
	localizingService := localizing.NewService(lingvoIntegrator, localizing.NewCache())

	reportingService := reporting.NewService(cfg.WeeklyReportSync.TopLimit)

	// Inicializa os agendadores de envio semanal e limpeza do log
	weeklyReportSyncService := scheduler.NewWeeklyReportSyncService(
		eventRepo,
		reportingService,
		cfg,
	)

	eventCleanupService := scheduler.NewEventCleanupService(
		eventRepo,
		cfg,
	)

	// Inicia os agendadores em background
	if err := weeklyReportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios semanais")
	} else {
		logrus.Info("Agendador de relatórios semanais iniciado com sucesso")
	}

	if err := eventCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de eventos")
	} else {
		logrus.Info("Agendador de limpeza de eventos iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		localizingService,
		eventRepo,
		authenticator,
		weeklyReportSyncService, // Serviço de envio semanal de relatórios
		eventCleanupService,     // Serviço de limpeza do log de eventos
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
