package wsmodels

import (
	dashboardapimodels "col-dashboard-backend/models/api/dashboard"
)

// ClientMessage — событие изменения выборки от фронта.
type ClientMessage struct {
	Selection dashboardapimodels.SelectionData `json:"selection"`
}

// ServerMessage — пересчитанный график (или ошибка) в ответ на событие.
type ServerMessage struct {
	Status  string                       `json:"status"`
	Message string                       `json:"message,omitempty"`
	Plot    *dashboardapimodels.PlotView `json:"plot,omitempty"`
}
