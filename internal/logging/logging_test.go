package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l := New("debug", "json")
	require.Equal(t, logrus.DebugLevel, l.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = New("loud", "")
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
