package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/schedule"
)

// lunes 2 de junio de 2025.
var monday = time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

func TestNextDeliveryDate_MismoDiaCaeEnSieteDias(t *testing.T) {
	got, err := schedule.NextDeliveryDate("monday", monday)
	require.NoError(t, err)

	assert.Equal(t, time.Monday, got.Weekday())
	assert.Equal(t, monday.AddDate(0, 0, 7).Day(), got.Day(),
		"si hoy es el día de reparto, la entrega es la semana siguiente")
}

func TestNextDeliveryDate_DiaPosteriorMismaSemana(t *testing.T) {
	got, err := schedule.NextDeliveryDate("Wednesday", monday)
	require.NoError(t, err)

	assert.Equal(t, time.Wednesday, got.Weekday())
	assert.Equal(t, monday.AddDate(0, 0, 2).Day(), got.Day(),
		"miércoles visto desde lunes son 2 días")
}

func TestNextDeliveryDate_DiaAnteriorPasaASemanaSiguiente(t *testing.T) {
	// domingo visto desde lunes: delta -1 → +7 = 6 días
	got, err := schedule.NextDeliveryDate("sunday", monday)
	require.NoError(t, err)

	assert.Equal(t, time.Sunday, got.Weekday())
	assert.Equal(t, monday.AddDate(0, 0, 6).Day(), got.Day())
}

func TestNextDeliveryDate_SiempreEntreUnoYSieteDias(t *testing.T) {
	days := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	for _, day := range days {
		for offset := 0; offset < 7; offset++ {
			today := monday.AddDate(0, 0, offset)
			got, err := schedule.NextDeliveryDate(day, today)
			require.NoError(t, err)

			diff := int(got.Sub(today).Hours() / 24)
			assert.GreaterOrEqual(t, diff, 1, "%s desde %s", day, today.Weekday())
			assert.LessOrEqual(t, diff, 7, "%s desde %s", day, today.Weekday())
		}
	}
}

func TestNextDeliveryDate_InsensibleAMayusculas(t *testing.T) {
	a, err := schedule.NextDeliveryDate("FRIDAY", monday)
	require.NoError(t, err)
	b, err := schedule.NextDeliveryDate("friday", monday)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestNextDeliveryDate_NombreInvalido(t *testing.T) {
	_, err := schedule.NextDeliveryDate("bogusday", monday)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = schedule.NextDeliveryDate("", monday)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
