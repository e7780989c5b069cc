package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Dataset struct {
		FilePath string `default:"./static_data/Col_Sal_Cities_Global.xlsx" env:"DATASET_FILE_PATH"`
		Sheet    string `default:"City_global" env:"DATASET_SHEET"`
		ColYear  int    `default:"2024" env:"DATASET_COL_YEAR"`
		FromS3   *bool  `default:"false" env:"DATASET_FROM_S3"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"col-dashboard" env:"S3_BUCKET_NAME"`
		ObjectName      string `default:"Col_Sal_Cities_Global.xlsx" env:"S3_OBJECT_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Dashboard struct {
		// тексты страницы — конфигурация, а не код, чтобы варианты дашборда отличались только копирайтом
		Title           string `default:"Global Cost of Living vs Salary Analysis" env:"DASHBOARD_TITLE"`
		CountriesPrompt string `default:"Select Countries to Display Cities From" env:"DASHBOARD_COUNTRIES_PROMPT"`
		ReferencePrompt string `default:"Select Reference City" env:"DASHBOARD_REFERENCE_PROMPT"`
		EmptyPrompt     string `default:"Please select at least one country to proceed." env:"DASHBOARD_EMPTY_PROMPT"`
	}
	Session struct {
		TTLMinutes int `default:"60" env:"SESSION_TTL_MINUTES"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
