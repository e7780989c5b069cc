package initializers

import (
	"context"

	"col-dashboard-backend/config"
	"col-dashboard-backend/fiberlog"
	"col-dashboard-backend/lib/compare"
	xlsexport "col-dashboard-backend/lib/export/xls"
	"col-dashboard-backend/lib/session"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	if config.Conf.Dataset.FromS3 != nil && *config.Conf.Dataset.FromS3 {
		InitS3()
	}
	InitDataset()
	session.NewHandler(ctx)
	xlsexport.NewHandler()
	compare.NewHandler()
}
