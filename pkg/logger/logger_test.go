package logger

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout redirige os.Stdout mientras corre fn y devuelve lo escrito.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

// Un nivel inválido cae en info: debug se descarta, info sale.
func TestNew_NivelInvalidoCaeEnInfo(t *testing.T) {
	out := captureStdout(t, func() {
		l := New(Config{Env: "production", Level: "bogus"})
		l.Debug().Msg("no debería salir")
		l.Info().Msg("sí sale")
	})

	assert.NotContains(t, out, "no debería salir")
	assert.Contains(t, out, "sí sale")
}

// Component fija el campo component en cada línea del sublogger.
func TestComponent_AgregaCampo(t *testing.T) {
	out := captureStdout(t, func() {
		l := New(Config{Env: "production", Level: "info"})
		l.Component("scheduler").Info().Msg("corrida semanal")
	})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.Equal(t, "scheduler", line["component"])
	assert.Equal(t, "corrida semanal", line["message"])
}
