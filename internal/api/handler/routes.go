package handler

import (
	"net/http"

	"github.com/vfg2006/wellness-reporting-api/infrastructure/repository"
	"github.com/vfg2006/wellness-reporting-api/internal/api/handler/router"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/localizing"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Events(repo repository.EventRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/events",
			Method:  http.MethodPost,
			Handler: CreateEvent(repo),
		},
	}
}

func Reports(service reporting.Reporter, repo repository.EventRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/weekly",
			Method:  http.MethodGet,
			Handler: GetWeeklyReport(service, repo),
		},
		{
			Path:    "/v1/reports/send",
			Method:  http.MethodPost,
			Handler: SendWeeklyReport(),
		},
	}
}

func Translate(service localizing.Localizer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/translate",
			Method:  http.MethodPost,
			Handler: TranslateJSON(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
