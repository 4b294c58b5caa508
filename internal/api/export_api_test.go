package api

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleExportReservations(t *testing.T) {
	ts := newTestServer(t)
	ts.rooms.Create("Room 101", "classroom", 40, "")
	mustCreateUser(t, ts, "Ann", "ann@example.com")

	w := ts.do(t, http.MethodPost, "/reservations", reservationBody(nil))
	require.Equal(t, http.StatusCreated, w.Code)

	resp := ts.do(t, http.MethodGet, "/reservations/export", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "reservations.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one reservation")
	assert.Contains(t, rows[1], "Room 101")
	assert.Contains(t, rows[1], "Ann")
}
