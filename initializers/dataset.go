package initializers

import (
	"col-dashboard-backend/lib/dataset"

	log "github.com/sirupsen/logrus"
)

// InitDataset загружает набор данных один раз на старте.
// Без набора дашборд бессмыслен, поэтому ошибка загрузки фатальна.
func InitDataset() {
	if err := dataset.NewHandler(); err != nil {
		log.WithError(err).Fatal("набор данных не загружен, сервис остановлен")
	}
}
