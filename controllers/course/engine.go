package controllers

import (
	"edumentor/config"
	"edumentor/progress"
)

// engineOptions maps the application configuration onto the engine policy
func engineOptions() progress.Options {
	return progress.Options{
		AllowCancelledEnrollment: config.AppConfig.EnrollmentAllowCancelled,
		SkipEmptyModules:         config.AppConfig.ProgressSkipEmptyModules,
	}
}
