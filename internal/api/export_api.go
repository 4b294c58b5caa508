package api

import (
	"net/http"

	"roombook/internal/metrics"
	"roombook/internal/report"
)

// handleExportReservations streams the live reservation list as an
// xlsx workbook.
// GET /reservations/export
func (s *Server) handleExportReservations(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_export")

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="reservations.xlsx"`)

	if err := report.WriteReservations(w, s.engine.List(), s.rooms, s.users); err != nil {
		s.log.Error().Err(err).Msg("reservation export failed")
	}
}
